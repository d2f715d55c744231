package anim

import (
	"math"

	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/viewport"
)

const (
	DefaultOrbitRadius = 1.5
	DefaultOrbitSteps  = 100
	DefaultSpinRate    = 0.5
)

// Params are the animation constants.
type Params struct {
	OrbitRadius float64 `yaml:"orbit_radius"`
	OrbitSteps  int     `yaml:"orbit_steps"` // ticks per revolution
	SpinRate    float64 `yaml:"spin_rate"`   // proton radians per second
}

func DefaultParams() Params {
	return Params{
		OrbitRadius: DefaultOrbitRadius,
		OrbitSteps:  DefaultOrbitSteps,
		SpinRate:    DefaultSpinRate,
	}
}

// Orbit is the electron's angular state in the x-z plane.
type Orbit struct {
	Theta  float64
	DTheta float64
	Radius float64
}

func (o Orbit) Position() scene.Vec3 {
	return scene.Vec3{X: o.Radius * math.Cos(o.Theta), Z: o.Radius * math.Sin(o.Theta)}
}

// State is the single mutable context shared by the frame step and the
// resize handler.
type State struct {
	Scene    *scene.Scene
	Orbit    Orbit
	SpinRate float64
	Frame    int
	Elapsed  float64 // clock reading of the last tick
	Viewport viewport.Size
}

func NewState(s *scene.Scene, p Params, size viewport.Size) *State {
	return &State{
		Scene: s,
		Orbit: Orbit{
			DTheta: 2 * math.Pi / float64(p.OrbitSteps),
			Radius: p.OrbitRadius,
		},
		SpinRate: p.SpinRate,
		Viewport: size,
	}
}

// Step advances the scene by one tick. elapsed is wall-clock seconds since
// the loop started and drives only the proton spin; the orbit and the shader
// time advance per tick.
func Step(s *State, elapsed float64) {
	s.Elapsed = elapsed
	s.Scene.Proton.RotationY = s.SpinRate * elapsed

	s.Orbit.Theta += s.Orbit.DTheta
	s.Scene.Electron.Position = s.Orbit.Position()

	s.Scene.Proton.Material.Uniforms.Time++
	s.Scene.Electron.Material.Uniforms.Time++

	s.Frame++
}

// OrbitAt returns the orbit after f ticks in closed form.
func OrbitAt(p Params, f int) Orbit {
	dTheta := 2 * math.Pi / float64(p.OrbitSteps)
	return Orbit{Theta: float64(f) * dTheta, DTheta: dTheta, Radius: p.OrbitRadius}
}
