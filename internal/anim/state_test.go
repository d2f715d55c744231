package anim

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/viewport"
)

func newState() *State {
	s := scene.Assemble(scene.DefaultSpec(), 800, 600)
	return NewState(s, DefaultParams(), viewport.Size{Width: 800, Height: 600})
}

func run(s *State, frames int, elapsed func(int) float64) {
	for i := 0; i < frames; i++ {
		Step(s, elapsed(i))
	}
}

func zero(int) float64 { return 0 }

var _ = Describe("Step", func() {
	var s *State

	BeforeEach(func() {
		s = newState()
	})

	It("starts with the electron at (1.5, 0, 0)", func() {
		Expect(s.Orbit.Theta).To(BeZero())
		Expect(s.Scene.Electron.Position).To(Equal(scene.Vec3{X: 1.5}))
		Expect(s.Orbit.DTheta).To(Equal(2 * math.Pi / 100))
	})

	DescribeTable("orbit angle and position after f ticks",
		func(f int) {
			run(s, f, zero)
			theta := float64(f) * 2 * math.Pi / 100
			Expect(s.Orbit.Theta).To(BeNumerically("~", theta, 1e-9))

			p := s.Scene.Electron.Position
			Expect(p.X).To(BeNumerically("~", 1.5*math.Cos(theta), 1e-9))
			Expect(p.Y).To(BeZero())
			Expect(p.Z).To(BeNumerically("~", 1.5*math.Sin(theta), 1e-9))
		},
		Entry("one tick", 1),
		Entry("quarter", 25),
		Entry("half", 50),
		Entry("full", 100),
		Entry("many", 1234),
	)

	It("reaches (0, 0, 1.5) at tick 25", func() {
		run(s, 25, zero)
		p := s.Scene.Electron.Position
		Expect(p.X).To(BeNumerically("~", 0, 1e-9))
		Expect(p.Z).To(BeNumerically("~", 1.5, 1e-9))
	})

	It("completes an orbit in exactly 100 ticks", func() {
		run(s, 100, zero)
		Expect(s.Orbit.Theta).To(BeNumerically("~", 2*math.Pi, 1e-9))
		p := s.Scene.Electron.Position
		Expect(p.X).To(BeNumerically("~", 1.5, 1e-9))
		Expect(p.Z).To(BeNumerically("~", 0, 1e-9))

		run(s, 99, zero)
		Expect(math.Mod(s.Orbit.Theta, 2*math.Pi)).NotTo(BeNumerically("~", 0, 1e-6))
	})

	It("spins the proton from elapsed time only", func() {
		Step(s, 4)
		Expect(s.Scene.Proton.RotationY).To(Equal(2.0))

		run(s, 500, func(int) float64 { return 4 })
		Expect(s.Scene.Proton.RotationY).To(Equal(2.0))

		Step(s, 10)
		Expect(s.Scene.Proton.RotationY).To(Equal(5.0))
	})

	It("advances uTime by one per tick regardless of elapsed time", func() {
		run(s, 7, func(i int) float64 { return float64(i) * 123.4 })
		Expect(s.Scene.Proton.Material.Uniforms.Time).To(Equal(7.0))
		Expect(s.Scene.Electron.Material.Uniforms.Time).To(Equal(7.0))
		Expect(s.Frame).To(Equal(7))
	})

	It("leaves the other uniforms alone", func() {
		before := s.Scene.Proton.Material.Uniforms
		run(s, 3, zero)
		after := s.Scene.Proton.Material.Uniforms
		after.Time = before.Time
		Expect(after).To(Equal(before))
	})
})

var _ = Describe("OrbitAt", func() {
	It("matches the incremental orbit", func() {
		s := newState()
		run(s, 60, zero)
		closed := OrbitAt(DefaultParams(), 60)
		Expect(closed.Theta).To(BeNumerically("~", s.Orbit.Theta, 1e-9))
		Expect(closed.Position().X).To(BeNumerically("~", s.Scene.Electron.Position.X, 1e-9))
	})

	It("honours a custom step count", func() {
		p := Params{OrbitRadius: 2, OrbitSteps: 4, SpinRate: 0}
		o := OrbitAt(p, 1)
		Expect(o.Theta).To(Equal(math.Pi / 2))
		Expect(o.Position().Z).To(BeNumerically("~", 2, 1e-12))
	})
})
