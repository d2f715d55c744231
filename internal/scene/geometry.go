package scene

import "math"

// SphereGeometry is a UV sphere with Resolution width and height segments.
type SphereGeometry struct {
	Radius     float64
	Resolution int
}

// VertexCount is (N+1)^2: seams and poles carry duplicated vertices.
func (g SphereGeometry) VertexCount() int {
	return (g.Resolution + 1) * (g.Resolution + 1)
}

// Vertices returns positions in object space, row by row from the north pole.
func (g SphereGeometry) Vertices() []Vec3 {
	n := g.Resolution
	out := make([]Vec3, 0, g.VertexCount())
	for iy := 0; iy <= n; iy++ {
		v := float64(iy) / float64(n)
		for ix := 0; ix <= n; ix++ {
			u := float64(ix) / float64(n)
			out = append(out, Vec3{
				X: -g.Radius * math.Cos(u*2*math.Pi) * math.Sin(v*math.Pi),
				Y: g.Radius * math.Cos(v*math.Pi),
				Z: g.Radius * math.Sin(u*2*math.Pi) * math.Sin(v*math.Pi),
			})
		}
	}
	return out
}
