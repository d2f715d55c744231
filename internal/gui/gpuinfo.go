package gui

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.3-core/gl"
)

type GPUInfo struct {
	Vendor   string
	Renderer string
	Version  string
	GLSL     string
}

// ProbeGPU loads the GL entry points for the current context and reads its
// identification strings. A window must already be open.
func ProbeGPU() (GPUInfo, error) {
	if err := gl.Init(); err != nil {
		return GPUInfo{}, fmt.Errorf("init opengl: %w", err)
	}
	return GPUInfo{
		Vendor:   gl.GoStr(gl.GetString(gl.VENDOR)),
		Renderer: gl.GoStr(gl.GetString(gl.RENDERER)),
		Version:  gl.GoStr(gl.GetString(gl.VERSION)),
		GLSL:     gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}, nil
}

// CheckProgram compiles and links a program once and throws it away. raylib
// falls back to its default shader on failure; this surfaces the driver's
// info log instead. ProbeGPU must have succeeded first.
func CheckProgram(vertex, fragment string) error {
	vs, err := compileShader(vertex, gl.VERTEX_SHADER)
	if err != nil {
		return fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vs)

	fs, err := compileShader(fragment, gl.FRAGMENT_SHADER)
	if err != nil {
		return fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fs)

	program := gl.CreateProgram()
	defer gl.DeleteProgram(program)
	gl.AttachShader(program, vs)
	gl.AttachShader(program, fs)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return fmt.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile: %s", strings.TrimRight(log, "\x00"))
	}
	return shader, nil
}
