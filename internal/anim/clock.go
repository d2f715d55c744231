package anim

import "time"

// Clock reports seconds elapsed since the loop started.
type Clock interface {
	Elapsed() float64
}

type WallClock struct {
	start time.Time
	now   func() time.Time
}

func NewWallClock() *WallClock {
	return &WallClock{start: time.Now(), now: time.Now}
}

func (c *WallClock) Elapsed() float64 { return c.now().Sub(c.start).Seconds() }

// StepClock advances a fixed Dt on every read. Loops read the clock once per
// tick, so tick n sees n*Dt.
type StepClock struct {
	Dt float64
	n  int
}

func (c *StepClock) Elapsed() float64 {
	t := float64(c.n) * c.Dt
	c.n++
	return t
}

// FuncClock adapts a host time source, e.g. a window's seconds counter.
type FuncClock func() float64

func (f FuncClock) Elapsed() float64 { return f() }

// Since rebases a host clock so the first read is zero.
func Since(src func() float64) FuncClock {
	start := src()
	return func() float64 { return src() - start }
}
