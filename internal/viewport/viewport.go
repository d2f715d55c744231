// Package viewport keeps the camera projection and the render surface in
// step with the host window size.
package viewport

import (
	"math"

	"github.com/charmbracelet/log"

	"github.com/san-kum/atom/internal/scene"
)

// MaxPixelRatio bounds fill-rate cost on high-DPI displays.
const MaxPixelRatio = 2.0

type Size struct {
	Width, Height int
}

// Aspect returns width/height, or 0 when the height is not positive.
func (s Size) Aspect() float64 {
	if s.Height <= 0 {
		return 0
	}
	return float64(s.Width) / float64(s.Height)
}

type ResizeEvent struct {
	Width, Height    int
	DevicePixelRatio float64
}

// Surface is the renderer's output target.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float64)
}

// PixelRatio clamps a reported device pixel ratio to MaxPixelRatio. A
// missing or non-positive report counts as 1.
func PixelRatio(reported float64) float64 {
	if reported <= 0 || math.IsNaN(reported) {
		return 1
	}
	return math.Min(reported, MaxPixelRatio)
}

type Manager struct {
	size    *Size
	camera  *scene.PerspectiveCamera
	surface Surface
	log     *log.Logger
}

// NewManager binds the shared size, the camera and the surface. size is owned
// by the caller's animation state; the manager is its only writer.
func NewManager(size *Size, camera *scene.PerspectiveCamera, surface Surface, logger *log.Logger) *Manager {
	return &Manager{size: size, camera: camera, surface: surface, log: logger}
}

// Handle applies one resize event. Events are never coalesced.
func (m *Manager) Handle(ev ResizeEvent) {
	m.size.Width = ev.Width
	m.size.Height = ev.Height

	if aspect := m.size.Aspect(); aspect > 0 {
		m.camera.Aspect = aspect
		m.camera.UpdateProjectionMatrix()
	}

	ratio := PixelRatio(ev.DevicePixelRatio)
	m.surface.SetSize(ev.Width, ev.Height)
	m.surface.SetPixelRatio(ratio)

	if m.log != nil {
		m.log.Debug("viewport resized", "width", ev.Width, "height", ev.Height, "ratio", ratio)
	}
}
