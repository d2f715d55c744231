// Package shaders holds the GLSL programs shared by both atom bodies.
//
// The sources are embedded and assembled at call time: a version header, the
// simplex noise library, then the program body. Both programs read the same
// uniform set; the names below are the only contract with the host.
package shaders

import (
	_ "embed"
	"strings"
)

const version = "#version 330\n"

// Uniform names.
const (
	Time              = "uTime"
	TimeScaleVert     = "uTimeScaleVert"
	NoiseScaleVert    = "uNoiseScaleVert"
	DisplacementScale = "uDisplacementScale"
	TimeScaleFrag     = "uTimeScaleFrag"
	NoiseScaleRed     = "uNoiseScaleRed"
	NoiseScaleGreen   = "uNoiseScaleGreen"
	NoiseScaleBlue    = "uNoiseScaleBlue"
)

var (
	//go:embed noise.glsl
	noiseSrc string
	//go:embed atom.vert
	vertexSrc string
	//go:embed atom.frag
	fragmentSrc string
)

// VertexUniforms are read by the vertex program.
var VertexUniforms = []string{Time, TimeScaleVert, NoiseScaleVert, DisplacementScale}

// FragmentUniforms are read by the fragment program.
var FragmentUniforms = []string{Time, TimeScaleFrag, NoiseScaleRed, NoiseScaleGreen, NoiseScaleBlue}

// Names lists every uniform once, in binding order.
func Names() []string {
	return []string{
		Time, TimeScaleVert, NoiseScaleVert, DisplacementScale,
		TimeScaleFrag, NoiseScaleRed, NoiseScaleGreen, NoiseScaleBlue,
	}
}

func Vertex() string   { return assemble(vertexSrc) }
func Fragment() string { return assemble(fragmentSrc) }

func assemble(body string) string {
	var b strings.Builder
	b.Grow(len(version) + len(noiseSrc) + len(body) + 1)
	b.WriteString(version)
	b.WriteString(noiseSrc)
	b.WriteString("\n")
	b.WriteString(body)
	return b.String()
}
