package viewport

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/atom/internal/logging"
	"github.com/san-kum/atom/internal/scene"
)

type fakeSurface struct {
	calls  []string
	width  int
	height int
	ratio  float64
}

func (f *fakeSurface) SetSize(w, h int) {
	f.calls = append(f.calls, "size")
	f.width, f.height = w, h
}

func (f *fakeSurface) SetPixelRatio(r float64) {
	f.calls = append(f.calls, "ratio")
	f.ratio = r
}

var _ = Describe("Manager", func() {
	var (
		size    Size
		camera  *scene.PerspectiveCamera
		surface *fakeSurface
		m       *Manager
	)

	BeforeEach(func() {
		size = Size{Width: 800, Height: 600}
		camera = scene.NewPerspectiveCamera(90, size.Aspect(), 0.1, 100)
		surface = &fakeSurface{}
		m = NewManager(&size, camera, surface, logging.Discard())
	})

	It("sets the camera aspect to exactly W/H", func() {
		m.Handle(ResizeEvent{Width: 1920, Height: 1080, DevicePixelRatio: 1})
		Expect(camera.Aspect).To(Equal(1920.0 / 1080.0))
		Expect(size).To(Equal(Size{Width: 1920, Height: 1080}))
	})

	It("refreshes the projection matrix", func() {
		m.Handle(ResizeEvent{Width: 1000, Height: 500, DevicePixelRatio: 1})
		// fov 90 gives f = 1, so m[0] = 1/aspect
		Expect(camera.ProjectionMatrix()[0]).To(BeNumerically("~", 0.5, 1e-12))
	})

	It("resizes the surface before clamping the ratio", func() {
		m.Handle(ResizeEvent{Width: 640, Height: 480, DevicePixelRatio: 3})
		Expect(surface.calls).To(Equal([]string{"size", "ratio"}))
		Expect(surface.width).To(Equal(640))
		Expect(surface.height).To(Equal(480))
		Expect(surface.ratio).To(Equal(2.0))
	})

	It("processes every event in order", func() {
		m.Handle(ResizeEvent{Width: 100, Height: 100, DevicePixelRatio: 1})
		m.Handle(ResizeEvent{Width: 300, Height: 100, DevicePixelRatio: 1.5})
		Expect(surface.calls).To(HaveLen(4))
		Expect(camera.Aspect).To(Equal(3.0))
		Expect(surface.ratio).To(Equal(1.5))
	})

	It("keeps the previous aspect for a zero height", func() {
		before := camera.Aspect
		m.Handle(ResizeEvent{Width: 100, Height: 0, DevicePixelRatio: 1})
		Expect(camera.Aspect).To(Equal(before))
		Expect(size.Height).To(BeZero())
		Expect(surface.height).To(BeZero())
	})
})

var _ = DescribeTable("PixelRatio",
	func(reported, want float64) {
		Expect(PixelRatio(reported)).To(Equal(want))
	},
	Entry("high dpi is clamped", 3.0, 2.0),
	Entry("fractional passes through", 1.5, 1.5),
	Entry("exactly the bound", 2.0, 2.0),
	Entry("standard", 1.0, 1.0),
	Entry("unknown", 0.0, 1.0),
	Entry("nan", math.NaN(), 1.0),
)
