package gui

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/shaders"
)

var (
	ColBg   = rl.NewColor(0, 0, 0, 255)
	ColText = rl.NewColor(140, 140, 140, 255)
)

var errWindowClosed = errors.New("window closed")

// bodyGPU is the GPU side of one body: its own shader program, uniform
// locations and sphere model.
type bodyGPU struct {
	body   *scene.Body
	shader rl.Shader
	locs   map[string]int32
	model  rl.Model
}

// Renderer draws a scene through the atom shaders into a Surface.
type Renderer struct {
	surface   *Surface
	bodies    []*bodyGPU
	ShowLight bool
	Overlay   func()
	log       *log.Logger
}

// NewRenderer uploads every body of s. It needs an open window.
func NewRenderer(s *scene.Scene, surface *Surface, logger *log.Logger) (*Renderer, error) {
	r := &Renderer{surface: surface, log: logger}
	for _, b := range s.Bodies() {
		g, err := loadBody(b, logger)
		if err != nil {
			r.Close()
			return nil, fmt.Errorf("load %s: %w", b.Name, err)
		}
		r.bodies = append(r.bodies, g)
	}
	return r, nil
}

func loadBody(b *scene.Body, logger *log.Logger) (*bodyGPU, error) {
	sh := rl.LoadShaderFromMemory(b.Material.VertexShader, b.Material.FragmentShader)
	if !rl.IsShaderValid(sh) {
		return nil, errors.New("shader program rejected")
	}

	locs := make(map[string]int32, len(shaders.Names()))
	for _, name := range shaders.Names() {
		loc := rl.GetShaderLocation(sh, name)
		if loc < 0 {
			logger.Debug("uniform not active", "body", b.Name, "uniform", name)
		}
		locs[name] = loc
	}

	mesh := genSphere(sphereArgs(b.Geometry))
	model := rl.LoadModelFromMesh(mesh)
	model.Materials.Shader = sh

	logger.Debug("body uploaded", "body", b.Name, "vertices", mesh.VertexCount, "radius", b.Geometry.Radius)
	return &bodyGPU{body: b, shader: sh, locs: locs, model: model}, nil
}

var genSphere = rl.GenMeshSphere

// sphereArgs maps a sphere geometry onto GenMeshSphere's radius, rings and
// slices.
func sphereArgs(g scene.SphereGeometry) (float32, int, int) {
	return float32(g.Radius), g.Resolution, g.Resolution
}

// uniformValues keys the body's uniforms by shader name.
func uniformValues(b *scene.Body) map[string]float32 {
	out := make(map[string]float32, len(shaders.Names()))
	b.Material.Uniforms.Each(func(name string, v float64) {
		out[name] = float32(v)
	})
	return out
}

func (g *bodyGPU) upload() {
	for name, v := range uniformValues(g.body) {
		if loc := g.locs[name]; loc >= 0 {
			rl.SetShaderValue(g.shader, loc, []float32{v}, rl.ShaderUniformFloat)
		}
	}
}

func vec3(v scene.Vec3) rl.Vector3 {
	return rl.NewVector3(float32(v.X), float32(v.Y), float32(v.Z))
}

func color(c scene.Color) rl.Color {
	r, g, b := c.RGB()
	return rl.NewColor(r, g, b, 255)
}

func toCamera3D(c *scene.PerspectiveCamera) rl.Camera3D {
	return rl.Camera3D{
		Position:   vec3(c.Position),
		Target:     vec3(c.Target),
		Up:         vec3(c.Up),
		Fovy:       float32(c.Fov),
		Projection: rl.CameraPerspective,
	}
}

// projection uses the camera's own aspect and planes; BeginMode3D would
// derive the aspect from the render target and use fixed planes.
func projection(c *scene.PerspectiveCamera) rl.Matrix {
	return rl.MatrixPerspective(float32(c.Fov*rl.Deg2rad), float32(c.Aspect), float32(c.Near), float32(c.Far))
}

func (r *Renderer) Render(s *scene.Scene, camera *scene.PerspectiveCamera) error {
	if !rl.IsWindowReady() {
		return errWindowClosed
	}

	if r.surface.Begin() {
		rl.ClearBackground(ColBg)
		rl.BeginMode3D(toCamera3D(camera))
		rl.SetMatrixProjection(projection(camera))

		for _, g := range r.bodies {
			g.upload()
			b := g.body
			rl.DrawModelEx(g.model, vec3(b.Position), rl.NewVector3(0, 1, 0), float32(b.RotationY*rl.Rad2deg), rl.NewVector3(1, 1, 1), color(b.Color))
		}
		if r.ShowLight && s.Light != nil {
			rl.DrawSphereWires(vec3(s.Light.Position), 0.05, 6, 6, color(s.Light.Color))
		}

		rl.EndMode3D()
		r.surface.End()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	r.surface.Present()
	if r.Overlay != nil {
		r.Overlay()
	}
	rl.EndDrawing()
	return nil
}

func (r *Renderer) Close() {
	for _, g := range r.bodies {
		rl.UnloadModel(g.model)
		rl.UnloadShader(g.shader)
	}
	r.bodies = nil
}
