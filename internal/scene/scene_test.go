package scene

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/atom/internal/shaders"
)

var _ = Describe("CreateSphere", func() {
	It("copies the uniform set for every body", func() {
		spec := ShaderMaterial(Uniforms{NoiseScaleGreen: 2})
		a := CreateSphere(0.2, 64, spec, 0xF2F2F2)
		b := CreateSphere(0.2, 64, spec, 0xF2F2F2)

		a.Material.Uniforms.Time++
		Expect(b.Material.Uniforms.Time).To(Equal(0.0))
		Expect(a.Material).NotTo(BeIdenticalTo(b.Material))
	})

	It("binds the embedded shader programs", func() {
		b := CreateSphere(1, 3, ShaderMaterial(Uniforms{}), 0)
		Expect(b.Material.VertexShader).To(Equal(shaders.Vertex()))
		Expect(b.Material.FragmentShader).To(Equal(shaders.Fragment()))
	})
})

var _ = Describe("presets", func() {
	It("builds the proton at the origin", func() {
		p := NewProton(DefaultProton())
		Expect(p.Name).To(Equal("proton"))
		Expect(p.Geometry).To(Equal(SphereGeometry{Radius: 0.2, Resolution: 64}))
		Expect(p.Color).To(Equal(Color(0xF2F2F2)))
		Expect(p.Position).To(Equal(Vec3{}))
		Expect(p.Material.Uniforms.NoiseScaleRed).To(BeZero())
		Expect(p.Material.Uniforms.NoiseScaleGreen).To(Equal(2.0))
		Expect(p.Material.Uniforms.NoiseScaleBlue).To(Equal(2.0))
		Expect(p.Material.Uniforms.DisplacementScale).To(Equal(0.06))
	})

	It("builds the electron offset on x with flat color", func() {
		e := NewElectron(DefaultElectron())
		Expect(e.Geometry).To(Equal(SphereGeometry{Radius: 0.01, Resolution: 8}))
		Expect(e.Color).To(Equal(Color(0xF21D1D)))
		Expect(e.Position).To(Equal(Vec3{X: 1.5}))

		u := e.Material.Uniforms
		Expect([]float64{u.NoiseScaleRed, u.NoiseScaleGreen, u.NoiseScaleBlue}).To(Equal([]float64{0, 0, 0}))
		Expect(u.TimeScaleVert).To(Equal(0.1))
		Expect(u.NoiseScaleVert).To(Equal(0.8))
		Expect(u.DisplacementScale).To(Equal(0.006))
	})
})

var _ = Describe("Uniforms", func() {
	It("visits uniforms in binding order", func() {
		u := Uniforms{Time: 3, NoiseScaleBlue: 2}
		var names []string
		values := map[string]float64{}
		u.Each(func(name string, v float64) {
			names = append(names, name)
			values[name] = v
		})
		Expect(names).To(Equal(shaders.Names()))
		Expect(values[shaders.Time]).To(Equal(3.0))
		Expect(values[shaders.NoiseScaleBlue]).To(Equal(2.0))
	})
})

var _ = Describe("SphereGeometry", func() {
	It("lays out (N+1)^2 vertices on the radius", func() {
		g := SphereGeometry{Radius: 0.2, Resolution: 8}
		verts := g.Vertices()
		Expect(verts).To(HaveLen(81))
		for _, v := range verts {
			Expect(v.Length()).To(BeNumerically("~", 0.2, 1e-12))
		}
		Expect(verts[0].Y).To(BeNumerically("~", 0.2, 1e-12))
		Expect(verts[len(verts)-1].Y).To(BeNumerically("~", -0.2, 1e-12))
	})
})

var _ = Describe("Assemble", func() {
	var s *Scene

	BeforeEach(func() {
		s = Assemble(DefaultSpec(), 1600, 900)
	})

	It("adds nodes in construction order", func() {
		names := []string{}
		for _, n := range s.Children() {
			names = append(names, n.NodeName())
		}
		Expect(names).To(Equal([]string{"proton", "electron", "light", "camera"}))
		Expect(s.Bodies()).To(Equal([]*Body{s.Proton, s.Electron}))
	})

	It("places the light", func() {
		Expect(s.Light.Position).To(Equal(Vec3{2, 3, 4}))
		Expect(s.Light.Color).To(Equal(Color(0x91AAF2)))
		Expect(s.Light.Intensity).To(Equal(1.0))
	})

	It("configures the camera from the viewport", func() {
		c := s.Camera
		Expect(c.Fov).To(Equal(90.0))
		Expect(c.Near).To(Equal(0.1))
		Expect(c.Far).To(Equal(100.0))
		Expect(c.Aspect).To(Equal(1600.0 / 900.0))
		Expect(c.Position).To(Equal(Vec3{0, 0, 2}))
	})

	It("falls back to a square aspect for an empty viewport", func() {
		Expect(Assemble(DefaultSpec(), 0, 0).Camera.Aspect).To(Equal(1.0))
	})
})

var _ = Describe("PerspectiveCamera", func() {
	var c *PerspectiveCamera

	BeforeEach(func() {
		c = NewPerspectiveCamera(90, 2, 0.1, 100)
		c.Position = Vec3{0, 0, 2}
	})

	It("projects the target to the screen center", func() {
		ndc, ok := c.Project(Vec3{})
		Expect(ok).To(BeTrue())
		Expect(ndc.X).To(BeNumerically("~", 0, 1e-12))
		Expect(ndc.Y).To(BeNumerically("~", 0, 1e-12))
	})

	It("maps the edge of a 90 degree frustum to ndc 1", func() {
		// at distance 2 the half height is 2, the half width 4
		ndc, ok := c.Project(Vec3{0, 2, 0})
		Expect(ok).To(BeTrue())
		Expect(ndc.Y).To(BeNumerically("~", 1, 1e-9))

		ndc, _ = c.Project(Vec3{4, 0, 0})
		Expect(ndc.X).To(BeNumerically("~", 1, 1e-9))
	})

	It("rejects points behind the camera", func() {
		_, ok := c.Project(Vec3{0, 0, 5})
		Expect(ok).To(BeFalse())
	})

	It("only changes projection on UpdateProjectionMatrix", func() {
		before := c.ProjectionMatrix()
		c.Aspect = 1
		Expect(c.ProjectionMatrix()).To(Equal(before))
		c.UpdateProjectionMatrix()
		Expect(c.ProjectionMatrix()[0]).To(BeNumerically("~", 1, 1e-12))
	})
})

var _ = Describe("Vec3", func() {
	It("rotates about y", func() {
		v := Vec3{1, 0, 0}.RotateY(math.Pi / 2)
		Expect(v.X).To(BeNumerically("~", 0, 1e-12))
		Expect(v.Z).To(BeNumerically("~", -1, 1e-12))
	})
})

var _ = Describe("Color", func() {
	DescribeTable("ParseColor",
		func(in string, want Color) {
			c, err := ParseColor(in)
			Expect(err).NotTo(HaveOccurred())
			Expect(c).To(Equal(want))
		},
		Entry("css hex", "#F21D1D", Color(0xF21D1D)),
		Entry("go hex", "0x91aaf2", Color(0x91AAF2)),
		Entry("decimal", "255", Color(0xFF)),
	)

	It("rejects out of range values", func() {
		_, err := ParseColor("#1000000")
		Expect(err).To(HaveOccurred())
	})

	It("round trips through yaml as a hex string", func() {
		out, err := yaml.Marshal(struct {
			C Color `yaml:"c"`
		}{0xF2F2F2})
		Expect(err).NotTo(HaveOccurred())
		Expect(string(out)).To(ContainSubstring("#F2F2F2"))

		var in struct {
			C Color `yaml:"c"`
		}
		Expect(yaml.Unmarshal(out, &in)).To(Succeed())
		Expect(in.C).To(Equal(Color(0xF2F2F2)))
	})

	It("splits channels", func() {
		r, g, b := Color(0x91AAF2).RGB()
		Expect([]uint8{r, g, b}).To(Equal([]uint8{0x91, 0xAA, 0xF2}))
	})
})
