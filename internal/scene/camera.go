package scene

import "math"

// Mat4 is a column-major 4x4 matrix, the layout OpenGL expects.
type Mat4 [16]float64

func Identity() Mat4 {
	return Mat4{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}
}

func (m Mat4) Mul(o Mat4) Mat4 {
	var r Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[k*4+row] * o[col*4+k]
			}
			r[col*4+row] = s
		}
	}
	return r
}

// Transform applies m to the point p and returns clip coordinates.
func (m Mat4) Transform(p Vec3) (x, y, z, w float64) {
	x = m[0]*p.X + m[4]*p.Y + m[8]*p.Z + m[12]
	y = m[1]*p.X + m[5]*p.Y + m[9]*p.Z + m[13]
	z = m[2]*p.X + m[6]*p.Y + m[10]*p.Z + m[14]
	w = m[3]*p.X + m[7]*p.Y + m[11]*p.Z + m[15]
	return
}

// PerspectiveCamera mirrors a retained-scene perspective camera: callers
// mutate the fields then call UpdateProjectionMatrix.
type PerspectiveCamera struct {
	Fov    float64 // vertical, degrees
	Aspect float64
	Near   float64
	Far    float64

	Position Vec3
	Target   Vec3
	Up       Vec3

	projection Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		Fov:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

func (c *PerspectiveCamera) NodeName() string { return "camera" }

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	f := 1 / math.Tan(c.Fov*math.Pi/360)
	nf := 1 / (c.Near - c.Far)
	c.projection = Mat4{
		f / c.Aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, (c.Far + c.Near) * nf, -1,
		0, 0, 2 * c.Far * c.Near * nf, 0,
	}
}

func (c *PerspectiveCamera) ProjectionMatrix() Mat4 { return c.projection }

func (c *PerspectiveCamera) ViewMatrix() Mat4 {
	z := c.Position.Sub(c.Target).Normalize()
	x := c.Up.Cross(z).Normalize()
	y := z.Cross(x)
	return Mat4{
		x.X, y.X, z.X, 0,
		x.Y, y.Y, z.Y, 0,
		x.Z, y.Z, z.Z, 0,
		-x.Dot(c.Position), -y.Dot(c.Position), -z.Dot(c.Position), 1,
	}
}

// Project maps a world point to normalized device coordinates. ok is false
// when the point is behind the camera or outside the near/far range.
func (c *PerspectiveCamera) Project(p Vec3) (ndc Vec3, ok bool) {
	x, y, z, w := c.projection.Mul(c.ViewMatrix()).Transform(p)
	if w <= 0 {
		return Vec3{}, false
	}
	ndc = Vec3{x / w, y / w, z / w}
	return ndc, ndc.Z >= -1 && ndc.Z <= 1
}
