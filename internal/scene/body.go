package scene

// Body is a renderable sphere: shape, shader material, base color, transform.
type Body struct {
	Name      string
	Geometry  SphereGeometry
	Material  *Material
	Color     Color
	Position  Vec3
	RotationY float64
}

func (b *Body) NodeName() string { return b.Name }

// CreateSphere builds a body at the origin. Inputs are trusted: callers pass
// preset literals or a validated config.
func CreateSphere(radius float64, resolution int, material MaterialSpec, color Color) *Body {
	return &Body{
		Geometry: SphereGeometry{Radius: radius, Resolution: resolution},
		Material: NewMaterial(material),
		Color:    color,
	}
}

// BodySpec is the named configuration of one body preset.
type BodySpec struct {
	Radius     float64  `yaml:"radius"`
	Resolution int      `yaml:"resolution"`
	Color      Color    `yaml:"color"`
	Position   Vec3     `yaml:"position"`
	Uniforms   Uniforms `yaml:"uniforms"`
}

func NewBody(name string, spec BodySpec) *Body {
	b := CreateSphere(spec.Radius, spec.Resolution, ShaderMaterial(spec.Uniforms), spec.Color)
	b.Name = name
	b.Position = spec.Position
	return b
}

const (
	ProtonName   = "proton"
	ElectronName = "electron"
)

// DefaultProton is large, slow and strongly green/blue modulated.
func DefaultProton() BodySpec {
	return BodySpec{
		Radius:     0.2,
		Resolution: 64,
		Color:      0xF2F2F2,
		Uniforms: Uniforms{
			TimeScaleVert:     0.01,
			NoiseScaleVert:    1,
			DisplacementScale: 0.06,
			TimeScaleFrag:     0.01,
			NoiseScaleRed:     0,
			NoiseScaleGreen:   2,
			NoiseScaleBlue:    2,
		},
	}
}

// DefaultElectron is tiny and flat red with fast, shallow vertex noise.
func DefaultElectron() BodySpec {
	return BodySpec{
		Radius:     0.01,
		Resolution: 8,
		Color:      0xF21D1D,
		Position:   Vec3{X: 1.5},
		Uniforms: Uniforms{
			TimeScaleVert:     0.1,
			NoiseScaleVert:    0.8,
			DisplacementScale: 0.006,
			TimeScaleFrag:     0.01,
		},
	}
}

func NewProton(spec BodySpec) *Body   { return NewBody(ProtonName, spec) }
func NewElectron(spec BodySpec) *Body { return NewBody(ElectronName, spec) }
