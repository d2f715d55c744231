package viz

import (
	"bytes"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/scene"
)

func litCells(c *Canvas, col scene.Color, x0, y0, x1, y1 int) int {
	n := 0
	for row := y0; row <= y1 && row < c.Height; row++ {
		for cell := x0; cell <= x1 && cell < c.Width; cell++ {
			if c.Grid[row][cell] != brailleBase && c.Colors[row][cell] == col {
				n++
			}
		}
	}
	return n
}

func TestProjectorDrawsBodies(t *testing.T) {
	canvas, state, err := Snapshot(config.DefaultConfig(), 80, 24, 0, 0.01, false)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if state.Frame != 0 {
		t.Errorf("expected frame 0, got %d", state.Frame)
	}

	// proton at the center of the canvas
	if litCells(canvas, 0xF2F2F2, 36, 9, 43, 14) == 0 {
		t.Error("proton not drawn near the center")
	}
	// electron at x=1.5 projects to about 0.45 in NDC, column 58
	if litCells(canvas, 0xF21D1D, 56, 11, 59, 12) == 0 {
		t.Error("electron not drawn at its start position")
	}
}

func TestProjectorFollowsOrbit(t *testing.T) {
	// after 75 ticks the electron sits at (0, 0, -1.5), behind the proton
	canvas, state, err := Snapshot(config.DefaultConfig(), 80, 24, 75, 0.01, false)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if state.Frame != 75 {
		t.Errorf("expected frame 75, got %d", state.Frame)
	}
	if litCells(canvas, 0xF21D1D, 56, 0, 79, 23) != 0 {
		t.Error("electron still drawn on the right side")
	}
}

func TestProjectorSetSize(t *testing.T) {
	p := NewProjector(10, 10)
	p.SetSize(161, 97)
	if p.Canvas.Width != 81 || p.Canvas.Height != 25 {
		t.Errorf("expected 81x25 cells, got %dx%d", p.Canvas.Width, p.Canvas.Height)
	}

	same := p.Canvas
	p.SetSize(162, 100)
	if p.Canvas != same {
		t.Error("canvas reallocated for an equal cell size")
	}

	p.SetPixelRatio(2)
	if p.PixelRatio() != 2 {
		t.Errorf("expected ratio 2, got %f", p.PixelRatio())
	}
}

func TestProjectorEmptyCanvas(t *testing.T) {
	p := NewProjector(0, 0)
	s := scene.Assemble(scene.DefaultSpec(), 1, 1)
	if err := p.Render(s, s.Camera); err != nil {
		t.Errorf("render on empty canvas failed: %v", err)
	}
}

func TestProjectorLightMarker(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Scene.Light.Position = scene.Vec3{X: 0, Y: 1, Z: 0}
	canvas, _, err := Snapshot(cfg, 80, 24, 0, 0.01, true)
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if litCells(canvas, 0x91AAF2, 0, 0, 79, 23) == 0 {
		t.Error("light marker not drawn")
	}
}

func TestGIFRecorder(t *testing.T) {
	rec := NewGIFRecorder(50)
	path := filepath.Join(t.TempDir(), "out.gif")

	if err := rec.Save(path); err == nil {
		t.Error("expected error for empty recording")
	}

	canvas, _, _ := Snapshot(config.DefaultConfig(), 20, 8, 0, 0.01, false)
	rec.Capture(canvas)
	rec.Capture(canvas)
	if rec.Len() != 2 {
		t.Fatalf("expected 2 frames, got %d", rec.Len())
	}
	if err := rec.Save(path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 2 || g.Delay[0] != 2 {
		t.Errorf("unexpected gif: %d frames, delay %d", len(g.Image), g.Delay[0])
	}
	if b := g.Image[0].Bounds(); b.Dx() != 20*charW || b.Dy() != 8*charH {
		t.Errorf("unexpected bounds %v", b)
	}
}

func TestGIFRecorderAcrossResize(t *testing.T) {
	rec := NewGIFRecorder(30)
	path := filepath.Join(t.TempDir(), "resized.gif")

	small, _, _ := Snapshot(config.DefaultConfig(), 10, 5, 0, 0.01, false)
	large, _, _ := Snapshot(config.DefaultConfig(), 40, 20, 0, 0.01, false)
	rec.Capture(small)
	rec.Capture(large)
	rec.Capture(small)

	if err := rec.Save(path); err != nil {
		t.Fatalf("save after resize: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(g.Image) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(g.Image))
	}
	if g.Config.Width != 40*charW || g.Config.Height != 20*charH {
		t.Errorf("expected %dx%d screen, got %dx%d", 40*charW, 20*charH, g.Config.Width, g.Config.Height)
	}
}
