package scene

type PointLight struct {
	Color     Color
	Intensity float64
	Position  Vec3
}

func (l *PointLight) NodeName() string { return "light" }
