package viz

import (
	"errors"
	"image"
	"image/color"
	"image/gif"
	"os"

	"github.com/san-kum/atom/internal/scene"
)

const (
	charW = 8
	charH = 16

	// maxGIFFrames bounds memory for long recordings; older frames are dropped.
	maxGIFFrames = 600
)

var errNoFrames = errors.New("no frames recorded")

// GIFRecorder collects canvas frames and writes them as an animated GIF.
type GIFRecorder struct {
	frames []*image.Paletted
	delay  int
}

func NewGIFRecorder(fps int) *GIFRecorder {
	delay := 2
	if fps > 0 {
		delay = max(1, 100/fps)
	}
	return &GIFRecorder{delay: delay}
}

func (r *GIFRecorder) Len() int { return len(r.frames) }

func (r *GIFRecorder) Capture(c *Canvas) {
	r.frames = append(r.frames, CanvasImage(c))
	if len(r.frames) > maxGIFFrames {
		r.frames = r.frames[1:]
	}
}

func (r *GIFRecorder) Save(path string) error {
	if len(r.frames) == 0 {
		return errNoFrames
	}
	// the terminal may be resized mid-recording; the logical screen covers
	// the largest frame and each frame clears to the background.
	out := gif.GIF{LoopCount: 0}
	var w, h int
	for _, frame := range r.frames {
		b := frame.Bounds()
		w, h = max(w, b.Dx()), max(h, b.Dy())
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, r.delay)
		out.Disposal = append(out.Disposal, gif.DisposalBackground)
	}
	out.Config = image.Config{ColorModel: r.frames[0].Palette, Width: w, Height: h}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &out)
}

// CanvasImage rasterizes lit dots as charW/2 x charH/4 blocks in their cell
// color. The palette is black plus every color on the canvas.
func CanvasImage(c *Canvas) *image.Paletted {
	palette := color.Palette{color.Black, color.White}
	index := map[scene.Color]uint8{}
	for _, row := range c.Colors {
		for _, col := range row {
			if _, ok := index[col]; ok || col == 0 || len(palette) == 256 {
				continue
			}
			r, g, b := col.RGB()
			index[col] = uint8(len(palette))
			palette = append(palette, color.RGBA{r, g, b, 0xff})
		}
	}

	img := image.NewPaletted(image.Rect(0, 0, c.Width*charW, c.Height*charH), palette)
	dotW, dotH := charW/2, charH/4
	for y := 0; y < c.SubHeight(); y++ {
		for x := 0; x < c.SubWidth(); x++ {
			if !c.Lit(x, y) {
				continue
			}
			idx, ok := index[c.Colors[y/4][x/2]]
			if !ok {
				idx = 1
			}
			for py := 0; py < dotH; py++ {
				for px := 0; px < dotW; px++ {
					img.SetColorIndex(x*dotW+px, y*dotH+py, idx)
				}
			}
		}
	}
	return img
}
