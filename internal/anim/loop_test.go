package anim

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/atom/internal/logging"
	"github.com/san-kum/atom/internal/scene"
)

type recorder struct {
	frames []int
	thetas []float64
}

func (r *recorder) OnTick(s *State) {
	r.frames = append(r.frames, s.Frame)
	r.thetas = append(r.thetas, s.Orbit.Theta)
}

var _ = Describe("Loop", func() {
	var (
		s        *State
		rendered int
	)

	BeforeEach(func() {
		s = newState()
		rendered = 0
	})

	countRender := RenderFunc(func(*scene.Scene, *scene.PerspectiveCamera) error {
		rendered++
		return nil
	})

	It("steps before rendering on every tick", func() {
		var seen []float64
		r := RenderFunc(func(sc *scene.Scene, cam *scene.PerspectiveCamera) error {
			Expect(cam).To(BeIdenticalTo(sc.Camera))
			seen = append(seen, sc.Proton.Material.Uniforms.Time)
			return nil
		})
		l := NewLoop(s, &StepClock{Dt: 0.5}, r, Limit(Immediate{}, 3), logging.Discard())

		Expect(l.Run(context.Background())).To(Succeed())
		Expect(seen).To(Equal([]float64{1, 2, 3}))
		Expect(s.Scene.Proton.RotationY).To(Equal(0.5 * 1.0))
	})

	It("stops cleanly when the host closes", func() {
		l := NewLoop(s, &StepClock{}, countRender, Limit(Immediate{}, 100), logging.Discard())
		Expect(l.Run(context.Background())).To(Succeed())
		Expect(rendered).To(Equal(100))
		Expect(s.Orbit.Position().X).To(BeNumerically("~", 1.5, 1e-9))
	})

	It("returns the context error once cancelled", func() {
		ctx, cancel := context.WithCancel(context.Background())
		r := RenderFunc(func(*scene.Scene, *scene.PerspectiveCamera) error {
			rendered++
			if rendered == 5 {
				cancel()
			}
			return nil
		})
		l := NewLoop(s, &StepClock{}, r, Immediate{}, nil)
		Expect(l.Run(ctx)).To(MatchError(context.Canceled))
		Expect(rendered).To(Equal(5))
	})

	It("does not reschedule after a render failure", func() {
		boom := errors.New("device lost")
		r := RenderFunc(func(*scene.Scene, *scene.PerspectiveCamera) error {
			rendered++
			if rendered == 2 {
				return boom
			}
			return nil
		})
		l := NewLoop(s, &StepClock{}, r, Immediate{}, logging.Discard())
		err := l.Run(context.Background())
		Expect(err).To(MatchError(boom))
		Expect(err.Error()).To(ContainSubstring("render frame 2"))
		Expect(rendered).To(Equal(2))
	})

	It("notifies observers after the step", func() {
		rec := &recorder{}
		l := NewLoop(s, &StepClock{}, countRender, Limit(Immediate{}, 3), logging.Discard())
		l.AddObserver(rec)
		Expect(l.Run(context.Background())).To(Succeed())
		Expect(rec.frames).To(Equal([]int{1, 2, 3}))
		Expect(rec.thetas[0]).To(Equal(s.Orbit.DTheta))
	})
})

var _ = Describe("clocks", func() {
	It("StepClock returns n*Dt on the nth read", func() {
		c := &StepClock{Dt: 0.25}
		Expect([]float64{c.Elapsed(), c.Elapsed(), c.Elapsed()}).To(Equal([]float64{0, 0.25, 0.5}))
	})

	It("Since rebases a host clock", func() {
		now := 10.0
		c := Since(func() float64 { return now })
		Expect(c.Elapsed()).To(BeZero())
		now = 12.5
		Expect(c.Elapsed()).To(Equal(2.5))
	})
})
