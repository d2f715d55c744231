// Package sim runs the animation headless: no window, a fixed-step clock and
// an observer recording every tick.
package sim

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/storage"
	"github.com/san-kum/atom/internal/viewport"
)

type Config struct {
	Frames int
	Dt     float64
}

type Result struct {
	Name    string
	Frames  []storage.Frame
	Summary map[string]float64
	State   *anim.State
}

type Simulator struct {
	cfg       *config.Config
	renderer  anim.Renderer
	observers []anim.Observer
	log       *log.Logger
}

var discard = anim.RenderFunc(func(*scene.Scene, *scene.PerspectiveCamera) error { return nil })

func New(cfg *config.Config, logger *log.Logger) *Simulator {
	return &Simulator{
		cfg:       cfg,
		renderer:  discard,
		observers: make([]anim.Observer, 0),
		log:       logger,
	}
}

// SetRenderer replaces the default renderer, which draws nothing.
func (s *Simulator) SetRenderer(r anim.Renderer) { s.renderer = r }

func (s *Simulator) AddObserver(o anim.Observer) { s.observers = append(s.observers, o) }

// Run assembles a fresh scene and ticks it rc.Frames times.
func (s *Simulator) Run(ctx context.Context, rc Config) (*Result, error) {
	return s.run(ctx, rc, &anim.StepClock{Dt: rc.Dt}, anim.Immediate{})
}

// RunPaced is Run on the wall clock, one tick per scheduler slot.
func (s *Simulator) RunPaced(ctx context.Context, rc Config, scheduler anim.Scheduler) (*Result, error) {
	return s.run(ctx, rc, anim.NewWallClock(), scheduler)
}

func (s *Simulator) run(ctx context.Context, rc Config, clock anim.Clock, scheduler anim.Scheduler) (*Result, error) {
	if err := s.validateConfig(rc); err != nil {
		return nil, err
	}

	size := viewport.Size{Width: s.cfg.Window.Width, Height: s.cfg.Window.Height}
	state := anim.NewState(scene.Assemble(s.cfg.Scene, size.Width, size.Height), s.cfg.Animation, size)
	rec := storage.NewRecorder(rc.Frames)

	loop := anim.NewLoop(state, clock, s.renderer, anim.Limit(scheduler, rc.Frames), s.log)
	loop.AddObserver(rec)
	for _, o := range s.observers {
		loop.AddObserver(o)
	}

	if err := loop.Run(ctx); err != nil {
		return &Result{Frames: rec.Frames, State: state}, err
	}

	return &Result{
		Frames:  rec.Frames,
		Summary: storage.Summarize(rec.Frames),
		State:   state,
	}, nil
}

func (s *Simulator) validateConfig(rc Config) error {
	if rc.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", rc.Dt)
	}
	if rc.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", rc.Frames)
	}
	return nil
}
