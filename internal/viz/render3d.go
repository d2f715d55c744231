package viz

import (
	"github.com/san-kum/atom/internal/scene"
)

// maxGridLines caps how many latitude and longitude lines a sphere gets on
// the terminal; a 64-segment proton would otherwise fill solid.
const maxGridLines = 16

// Projector renders a scene as braille wireframes. It is both the loop's
// renderer and the viewport's surface: sizes arrive in dots.
type Projector struct {
	Canvas    *Canvas
	ShowLight bool
	ratio     float64
}

func NewProjector(cols, rows int) *Projector {
	return &Projector{Canvas: NewCanvas(cols, rows), ratio: 1}
}

// SetSize resizes the canvas to hold width x height dots.
func (p *Projector) SetSize(width, height int) {
	cols := (width + 1) / 2
	rows := (height + 3) / 4
	if cols == p.Canvas.Width && rows == p.Canvas.Height {
		return
	}
	p.Canvas = NewCanvas(cols, rows)
}

// SetPixelRatio is recorded only; a braille dot is the smallest addressable
// unit of a terminal.
func (p *Projector) SetPixelRatio(ratio float64) { p.ratio = ratio }

func (p *Projector) PixelRatio() float64 { return p.ratio }

func (p *Projector) Render(s *scene.Scene, camera *scene.PerspectiveCamera) error {
	p.Canvas.Clear()
	if p.Canvas.Width == 0 || p.Canvas.Height == 0 {
		return nil
	}
	for _, b := range s.Bodies() {
		p.drawBody(b, camera)
	}
	if p.ShowLight && s.Light != nil {
		p.drawMarker(s.Light.Position, s.Light.Color, camera)
	}
	return nil
}

type projected struct {
	x, y    int
	visible bool
}

func (p *Projector) toCanvas(world scene.Vec3, camera *scene.PerspectiveCamera) (int, int, bool) {
	ndc, ok := camera.Project(world)
	if !ok {
		return 0, 0, false
	}
	w, h := float64(p.Canvas.SubWidth()), float64(p.Canvas.SubHeight())
	return int((ndc.X + 1) / 2 * w), int((1 - ndc.Y) / 2 * h), true
}

// drawBody draws the sphere's latitude and longitude lines, skipping the
// hemisphere facing away from the camera.
func (p *Projector) drawBody(b *scene.Body, camera *scene.PerspectiveCamera) {
	n := b.Geometry.Resolution
	verts := b.Geometry.Vertices()
	pts := make([]projected, len(verts))
	for i, v := range verts {
		local := v.RotateY(b.RotationY)
		world := local.Add(b.Position)
		if local.Dot(camera.Position.Sub(world)) < 0 {
			continue
		}
		x, y, ok := p.toCanvas(world, camera)
		pts[i] = projected{x, y, ok}
	}

	stride := n / maxGridLines
	if stride < 1 {
		stride = 1
	}

	p.Canvas.SetPen(b.Color)
	at := func(iy, ix int) projected { return pts[iy*(n+1)+ix] }
	for iy := 0; iy <= n; iy++ {
		for ix := 0; ix <= n; ix++ {
			a := at(iy, ix)
			if !a.visible {
				continue
			}
			if iy%stride == 0 && ix < n {
				if c := at(iy, ix+1); c.visible {
					p.Canvas.DrawLine(a.x, a.y, c.x, c.y)
				}
			}
			if ix%stride == 0 && iy < n {
				if c := at(iy+1, ix); c.visible {
					p.Canvas.DrawLine(a.x, a.y, c.x, c.y)
				}
			}
		}
	}
}

func (p *Projector) drawMarker(pos scene.Vec3, col scene.Color, camera *scene.PerspectiveCamera) {
	x, y, ok := p.toCanvas(pos, camera)
	if !ok {
		return
	}
	p.Canvas.SetPen(col)
	p.Canvas.DrawLine(x-2, y, x+2, y)
	p.Canvas.DrawLine(x, y-2, x, y+2)
}
