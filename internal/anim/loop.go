// Package anim drives the atom: a pure per-tick state step followed by a
// render call, paced by a host scheduler.
package anim

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/san-kum/atom/internal/scene"
)

// ErrHostClosed is returned by a Scheduler once the host stops producing
// frames. Run treats it as a clean stop.
var ErrHostClosed = errors.New("host closed")

type Renderer interface {
	Render(s *scene.Scene, camera *scene.PerspectiveCamera) error
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(s *scene.Scene, camera *scene.PerspectiveCamera) error

func (f RenderFunc) Render(s *scene.Scene, camera *scene.PerspectiveCamera) error {
	return f(s, camera)
}

// Scheduler yields until the host is ready for the next frame.
type Scheduler interface {
	Next(ctx context.Context) error
}

type Observer interface {
	OnTick(s *State)
}

type Loop struct {
	state     *State
	clock     Clock
	renderer  Renderer
	scheduler Scheduler
	observers []Observer
	log       *log.Logger
}

func NewLoop(state *State, clock Clock, renderer Renderer, scheduler Scheduler, logger *log.Logger) *Loop {
	return &Loop{
		state:     state,
		clock:     clock,
		renderer:  renderer,
		scheduler: scheduler,
		observers: make([]Observer, 0),
		log:       logger,
	}
}

func (l *Loop) AddObserver(o Observer) { l.observers = append(l.observers, o) }

func (l *Loop) State() *State { return l.state }

// Tick runs one frame: read the clock, step, notify observers, render.
func (l *Loop) Tick() error {
	Step(l.state, l.clock.Elapsed())
	for _, o := range l.observers {
		o.OnTick(l.state)
	}
	if err := l.renderer.Render(l.state.Scene, l.state.Scene.Camera); err != nil {
		return fmt.Errorf("render frame %d: %w", l.state.Frame, err)
	}
	return nil
}

// Run ticks until ctx is cancelled, the host closes, or a frame fails. A
// failed frame is not retried and nothing is rescheduled after it.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err := l.Tick(); err != nil {
			return err
		}

		if err := l.scheduler.Next(ctx); err != nil {
			if errors.Is(err, ErrHostClosed) {
				l.debug("host closed", "frames", l.state.Frame)
				return nil
			}
			return err
		}
	}
}

func (l *Loop) debug(msg string, kv ...interface{}) {
	if l.log != nil {
		l.log.Debug(msg, kv...)
	}
}

// Immediate never waits; used for headless traces.
type Immediate struct{}

func (Immediate) Next(ctx context.Context) error { return ctx.Err() }

// TickerScheduler paces frames at a fixed rate.
type TickerScheduler struct {
	ticker *time.Ticker
}

func NewTickerScheduler(fps int) *TickerScheduler {
	return &TickerScheduler{ticker: time.NewTicker(time.Second / time.Duration(fps))}
}

func (t *TickerScheduler) Next(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.ticker.C:
		return nil
	}
}

func (t *TickerScheduler) Stop() { t.ticker.Stop() }

type limited struct {
	next   Scheduler
	frames int
	seen   int
}

// Limit reports ErrHostClosed after frames ticks have been rendered.
func Limit(s Scheduler, frames int) Scheduler {
	return &limited{next: s, frames: frames}
}

func (l *limited) Next(ctx context.Context) error {
	l.seen++
	if l.seen >= l.frames {
		return ErrHostClosed
	}
	return l.next.Next(ctx)
}
