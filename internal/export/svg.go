package export

import (
	"fmt"
	"os"
	"strings"

	"github.com/san-kum/atom/internal/viz"
)

const (
	background   = "#0a0a0a"
	defaultColor = "#00ff00"
)

// CanvasToSVG converts a Braille canvas to SVG, one circle per lit dot in
// its cell's color.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2   // 2 sub-pixels per char
	height := float64(canvas.Height) * scale * 4 // 4 sub-pixels per char

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background))

	dotRadius := scale * 0.4

	// group dots by color so each fill is written once
	groups := map[string]*strings.Builder{}
	order := []string{}
	for y := 0; y < canvas.SubHeight(); y++ {
		for x := 0; x < canvas.SubWidth(); x++ {
			if !canvas.Lit(x, y) {
				continue
			}

			fill := defaultColor
			if c := canvas.Colors[y/4][x/2]; c != 0 {
				fill = c.String()
			}
			g, ok := groups[fill]
			if !ok {
				g = &strings.Builder{}
				groups[fill] = g
				order = append(order, fill)
			}

			cx := float64(x)*scale + scale/2
			cy := float64(y)*scale + scale/2
			fmt.Fprintf(g, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n", cx, cy, dotRadius)
		}
	}

	for _, fill := range order {
		sb.WriteString(fmt.Sprintf("<g fill=\"%s\">\n", fill))
		sb.WriteString(groups[fill].String())
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

type Point struct{ X, Y float64 }

// TrajectoryToSVG draws points as one polyline scaled to width x height with
// 10% padding. Fewer than two points yields "".
func TrajectoryToSVG(points []Point, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX = min(minX, p.X)
		maxX = max(maxX, p.X)
		minY = min(minY, p.Y)
		maxY = max(maxY, p.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, background, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

func WriteFile(path, svg string) error {
	if svg == "" {
		return fmt.Errorf("nothing to write to %s", path)
	}
	return os.WriteFile(path, []byte(svg), 0644)
}
