// Package scene holds the retained scene graph of the atom: two shader-backed
// bodies, a point light and a perspective camera. It knows nothing about the
// GPU; hosts read it each frame and draw.
package scene

type Node interface {
	NodeName() string
}

type LightSpec struct {
	Color     Color   `yaml:"color"`
	Intensity float64 `yaml:"intensity"`
	Position  Vec3    `yaml:"position"`
}

type CameraSpec struct {
	Fov      float64 `yaml:"fov"`
	Near     float64 `yaml:"near"`
	Far      float64 `yaml:"far"`
	Position Vec3    `yaml:"position"`
}

// Spec is everything Assemble needs.
type Spec struct {
	Proton   BodySpec   `yaml:"proton"`
	Electron BodySpec   `yaml:"electron"`
	Light    LightSpec  `yaml:"light"`
	Camera   CameraSpec `yaml:"camera"`
}

func DefaultSpec() Spec {
	return Spec{
		Proton:   DefaultProton(),
		Electron: DefaultElectron(),
		Light: LightSpec{
			Color:     0x91AAF2,
			Intensity: 1,
			Position:  Vec3{2, 3, 4},
		},
		Camera: CameraSpec{
			Fov:      90,
			Near:     0.1,
			Far:      100,
			Position: Vec3{0, 0, 2},
		},
	}
}

type Scene struct {
	Proton   *Body
	Electron *Body
	Light    *PointLight
	Camera   *PerspectiveCamera

	children []Node
}

func New() *Scene { return &Scene{} }

func (s *Scene) Add(n Node) { s.children = append(s.children, n) }

func (s *Scene) Children() []Node { return s.children }

// Bodies returns the bodies in the order they were added.
func (s *Scene) Bodies() []*Body {
	out := make([]*Body, 0, 2)
	for _, n := range s.children {
		if b, ok := n.(*Body); ok {
			out = append(out, b)
		}
	}
	return out
}

// Assemble builds the scene in the fixed order root, proton, electron, light,
// camera. width and height give the initial aspect ratio.
func Assemble(spec Spec, width, height int) *Scene {
	s := New()

	s.Proton = NewProton(spec.Proton)
	s.Electron = NewElectron(spec.Electron)
	s.Add(s.Proton)
	s.Add(s.Electron)

	s.Light = &PointLight{
		Color:     spec.Light.Color,
		Intensity: spec.Light.Intensity,
		Position:  spec.Light.Position,
	}
	s.Add(s.Light)

	aspect := 1.0
	if height > 0 {
		aspect = float64(width) / float64(height)
	}
	s.Camera = NewPerspectiveCamera(spec.Camera.Fov, aspect, spec.Camera.Near, spec.Camera.Far)
	s.Camera.Position = spec.Camera.Position
	s.Add(s.Camera)

	return s
}
