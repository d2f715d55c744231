package controls

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/atom/internal/scene"
)

var _ = Describe("Orbit", func() {
	var (
		cam *scene.PerspectiveCamera
		o   *Orbit
	)

	BeforeEach(func() {
		cam = scene.NewPerspectiveCamera(90, 1, 0.1, 100)
		cam.Position = scene.Vec3{X: 0, Y: 0, Z: 2}
		o = NewOrbit(cam)
	})

	It("holds still without input", func() {
		Expect(o.Update()).To(BeFalse())
		Expect(cam.Position.Z).To(BeNumerically("~", 2, 1e-12))
	})

	It("rotates a quarter turn for a quarter-height drag without damping", func() {
		// 2π * (h/4) / h = π/2, theta decreases
		o.Apply(Input{DragX: 150, ViewportHeight: 600})
		Expect(o.Update()).To(BeTrue())
		Expect(cam.Position.X).To(BeNumerically("~", -2, 1e-9))
		Expect(cam.Position.Z).To(BeNumerically("~", 0, 1e-9))

		Expect(o.Update()).To(BeFalse())
	})

	It("keeps the camera on its sphere", func() {
		o.Apply(Input{DragX: 40, DragY: -25, ViewportHeight: 600})
		o.Update()
		Expect(cam.Position.Length()).To(BeNumerically("~", 2, 1e-9))
	})

	Context("with damping", func() {
		BeforeEach(func() {
			o.EnableDamping = true
		})

		It("applies only the damping factor per update", func() {
			o.Apply(Input{DragX: 150, ViewportHeight: 600})
			o.Update()
			theta := math.Atan2(cam.Position.X, cam.Position.Z)
			Expect(theta).To(BeNumerically("~", -math.Pi/2*DefaultDampingFactor, 1e-9))
		})

		It("keeps moving after input stops and converges", func() {
			o.Apply(Input{DragX: 150, ViewportHeight: 600})
			for i := 0; i < 1000; i++ {
				o.Update()
			}
			Expect(cam.Position.X).To(BeNumerically("~", -2, 1e-6))
			Expect(cam.Position.Z).To(BeNumerically("~", 0, 1e-6))
		})
	})

	It("clamps the polar angle away from the poles", func() {
		o.Apply(Input{DragY: 10000, ViewportHeight: 600})
		o.Update()
		Expect(cam.Position.Y).To(BeNumerically("~", 2, 1e-6))
		Expect(math.Hypot(cam.Position.X, cam.Position.Z)).To(BeNumerically(">", 0))
	})

	It("dollies in on a positive wheel and respects the distance bounds", func() {
		o.Apply(Input{Wheel: 1})
		o.Update()
		Expect(cam.Position.Z).To(BeNumerically("~", 2*0.95, 1e-9))

		for i := 0; i < 200; i++ {
			o.Apply(Input{Wheel: 1})
			o.Update()
		}
		Expect(cam.Position.Length()).To(BeNumerically("~", o.MinDistance, 1e-9))

		for i := 0; i < 500; i++ {
			o.Apply(Input{Wheel: -1})
			o.Update()
		}
		Expect(cam.Position.Length()).To(BeNumerically("~", o.MaxDistance, 1e-9))
	})
})
