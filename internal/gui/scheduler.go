package gui

import (
	"context"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/controls"
	"github.com/san-kum/atom/internal/viewport"
)

// frameScheduler runs between frames. raylib paces frames itself inside
// EndDrawing, so Next only polls: close requests, resizes, then input.
type frameScheduler struct {
	viewport *viewport.Manager
	orbit    *controls.Orbit
	renderer *Renderer
}

func (f *frameScheduler) Next(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.WindowShouldClose() || rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyEscape) {
		return anim.ErrHostClosed
	}
	if rl.IsWindowResized() {
		f.resize()
	}
	if rl.IsKeyPressed(rl.KeyL) {
		f.renderer.ShowLight = !f.renderer.ShowLight
	}

	in := controls.Input{
		Wheel:          float64(rl.GetMouseWheelMove()),
		ViewportHeight: rl.GetScreenHeight(),
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		d := rl.GetMouseDelta()
		in.DragX, in.DragY = float64(d.X), float64(d.Y)
	}
	f.orbit.Apply(in)
	f.orbit.Update()
	return nil
}

func (f *frameScheduler) resize() {
	f.viewport.Handle(viewport.ResizeEvent{
		Width:            rl.GetScreenWidth(),
		Height:           rl.GetScreenHeight(),
		DevicePixelRatio: float64(rl.GetWindowScaleDPI().X),
	})
}
