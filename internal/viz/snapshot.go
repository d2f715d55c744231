package viz

import (
	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/viewport"
)

// Snapshot renders the scene after frames ticks of a fixed-step clock onto a
// cols x rows canvas. Zero frames renders the assembled scene untouched.
func Snapshot(cfg *config.Config, cols, rows, frames int, dt float64, showLight bool) (*Canvas, *anim.State, error) {
	size := viewport.Size{Width: cols * 2, Height: rows * 4}
	s := scene.Assemble(cfg.Scene, size.Width, size.Height)
	state := anim.NewState(s, cfg.Animation, size)

	projector := NewProjector(cols, rows)
	projector.ShowLight = showLight

	if frames <= 0 {
		if err := projector.Render(s, s.Camera); err != nil {
			return nil, nil, err
		}
		return projector.Canvas, state, nil
	}

	loop := anim.NewLoop(state, &anim.StepClock{Dt: dt}, projector, anim.Immediate{}, nil)
	for i := 0; i < frames; i++ {
		if err := loop.Tick(); err != nil {
			return nil, nil, err
		}
	}
	return projector.Canvas, state, nil
}
