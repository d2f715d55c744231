// Package controls implements orbit-style camera controls: drag to rotate
// around a target, wheel to dolly, with optional inertia.
package controls

import (
	"math"

	"github.com/san-kum/atom/internal/scene"
)

const (
	DefaultDampingFactor = 0.05
	DefaultRotateSpeed   = 1.0
	DefaultZoomSpeed     = 1.0

	polarEpsilon = 1e-6
)

// Input is one frame of pointer input in host pixels.
type Input struct {
	DragX, DragY   float64
	Wheel          float64 // positive dollies in
	ViewportHeight int
}

type spherical struct {
	radius, phi, theta float64
}

func sphericalFrom(v scene.Vec3) spherical {
	r := v.Length()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(v.X, v.Z),
		phi:    math.Acos(math.Max(-1, math.Min(1, v.Y/r))),
	}
}

func (s spherical) vec() scene.Vec3 {
	sp := math.Sin(s.phi) * s.radius
	return scene.Vec3{X: sp * math.Sin(s.theta), Y: math.Cos(s.phi) * s.radius, Z: sp * math.Cos(s.theta)}
}

type Orbit struct {
	Target        scene.Vec3
	EnableDamping bool
	DampingFactor float64
	RotateSpeed   float64
	ZoomSpeed     float64
	MinDistance   float64
	MaxDistance   float64

	camera *scene.PerspectiveCamera
	delta  spherical
	scale  float64
}

func NewOrbit(camera *scene.PerspectiveCamera) *Orbit {
	return &Orbit{
		Target:        camera.Target,
		DampingFactor: DefaultDampingFactor,
		RotateSpeed:   DefaultRotateSpeed,
		ZoomSpeed:     DefaultZoomSpeed,
		MinDistance:   0.25,
		MaxDistance:   50,
		camera:        camera,
		scale:         1,
	}
}

// Apply accumulates input; the camera moves on the next Update.
func (o *Orbit) Apply(in Input) {
	if in.ViewportHeight > 0 && (in.DragX != 0 || in.DragY != 0) {
		h := float64(in.ViewportHeight)
		o.delta.theta -= 2 * math.Pi * in.DragX / h * o.RotateSpeed
		o.delta.phi -= 2 * math.Pi * in.DragY / h * o.RotateSpeed
	}
	if in.Wheel != 0 {
		zoom := math.Pow(0.95, o.ZoomSpeed)
		if in.Wheel > 0 {
			o.scale *= zoom
		} else {
			o.scale /= zoom
		}
	}
}

// Update moves the camera and reports whether it changed. With damping the
// pending rotation decays geometrically, giving inertia after release.
func (o *Orbit) Update() bool {
	offset := o.camera.Position.Sub(o.Target)
	s := sphericalFrom(offset)

	if o.EnableDamping {
		s.theta += o.delta.theta * o.DampingFactor
		s.phi += o.delta.phi * o.DampingFactor
	} else {
		s.theta += o.delta.theta
		s.phi += o.delta.phi
	}
	s.phi = math.Max(polarEpsilon, math.Min(math.Pi-polarEpsilon, s.phi))
	s.radius = math.Max(o.MinDistance, math.Min(o.MaxDistance, s.radius*o.scale))

	prev := o.camera.Position
	o.camera.Position = o.Target.Add(s.vec())
	o.camera.Target = o.Target

	if o.EnableDamping {
		o.delta.theta *= 1 - o.DampingFactor
		o.delta.phi *= 1 - o.DampingFactor
	} else {
		o.delta = spherical{}
	}
	o.scale = 1

	return o.camera.Position.Sub(prev).Length() > 1e-9
}
