package scene

import "github.com/san-kum/atom/internal/shaders"

// Uniforms is the mutable uniform set of one body's shader program.
type Uniforms struct {
	Time              float64 `yaml:"-"`
	TimeScaleVert     float64 `yaml:"time_scale_vert"`
	NoiseScaleVert    float64 `yaml:"noise_scale_vert"`
	DisplacementScale float64 `yaml:"displacement_scale"`
	TimeScaleFrag     float64 `yaml:"time_scale_frag"`
	NoiseScaleRed     float64 `yaml:"noise_scale_red"`
	NoiseScaleGreen   float64 `yaml:"noise_scale_green"`
	NoiseScaleBlue    float64 `yaml:"noise_scale_blue"`
}

// Each visits every uniform in shaders.Names order.
func (u *Uniforms) Each(fn func(name string, value float64)) {
	fn(shaders.Time, u.Time)
	fn(shaders.TimeScaleVert, u.TimeScaleVert)
	fn(shaders.NoiseScaleVert, u.NoiseScaleVert)
	fn(shaders.DisplacementScale, u.DisplacementScale)
	fn(shaders.TimeScaleFrag, u.TimeScaleFrag)
	fn(shaders.NoiseScaleRed, u.NoiseScaleRed)
	fn(shaders.NoiseScaleGreen, u.NoiseScaleGreen)
	fn(shaders.NoiseScaleBlue, u.NoiseScaleBlue)
}

// MaterialSpec supplies the shader program pair and the initial uniforms.
type MaterialSpec struct {
	VertexShader   string
	FragmentShader string
	Uniforms       Uniforms
}

// Material is an instance of a MaterialSpec owned by exactly one body.
type Material struct {
	VertexShader   string
	FragmentShader string
	Uniforms       Uniforms
}

// NewMaterial copies spec so that bodies never share a uniform set.
func NewMaterial(spec MaterialSpec) *Material {
	return &Material{
		VertexShader:   spec.VertexShader,
		FragmentShader: spec.FragmentShader,
		Uniforms:       spec.Uniforms,
	}
}

// ShaderMaterial returns a spec bound to the embedded atom programs.
func ShaderMaterial(u Uniforms) MaterialSpec {
	return MaterialSpec{
		VertexShader:   shaders.Vertex(),
		FragmentShader: shaders.Fragment(),
		Uniforms:       u,
	}
}
