package gui

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Surface is the offscreen render target. Its buffer is the window size
// times the pixel ratio and is presented scaled to the window.
type Surface struct {
	width, height int
	ratio         float64

	target rl.RenderTexture2D
	loaded bool
	dirty  bool
}

func NewSurface() *Surface {
	return &Surface{ratio: 1, dirty: true}
}

func (s *Surface) SetSize(width, height int) {
	if width != s.width || height != s.height {
		s.width, s.height = width, height
		s.dirty = true
	}
}

func (s *Surface) SetPixelRatio(ratio float64) {
	if ratio != s.ratio {
		s.ratio = ratio
		s.dirty = true
	}
}

// BufferSize is the backing texture size in device pixels.
func (s *Surface) BufferSize() (int, int) {
	return int(math.Round(float64(s.width) * s.ratio)), int(math.Round(float64(s.height) * s.ratio))
}

// Begin redirects drawing into the surface. It reports false, drawing
// nothing, while the window has no area.
func (s *Surface) Begin() bool {
	bw, bh := s.BufferSize()
	if bw <= 0 || bh <= 0 {
		return false
	}
	if s.dirty || !s.loaded {
		s.unload()
		s.target = rl.LoadRenderTexture(int32(bw), int32(bh))
		rl.SetTextureFilter(s.target.Texture, rl.FilterBilinear)
		s.loaded = true
		s.dirty = false
	}
	rl.BeginTextureMode(s.target)
	return true
}

func (s *Surface) End() { rl.EndTextureMode() }

// Present draws the surface over the whole window. Render textures are
// stored upside down, hence the negative source height.
func (s *Surface) Present() {
	if !s.loaded {
		return
	}
	tex := s.target.Texture
	src := rl.NewRectangle(0, 0, float32(tex.Width), -float32(tex.Height))
	dst := rl.NewRectangle(0, 0, float32(s.width), float32(s.height))
	rl.DrawTexturePro(tex, src, dst, rl.NewVector2(0, 0), 0, rl.White)
}

func (s *Surface) unload() {
	if s.loaded {
		rl.UnloadRenderTexture(s.target)
		s.loaded = false
	}
}

func (s *Surface) Close() { s.unload() }
