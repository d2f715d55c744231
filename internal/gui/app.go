// Package gui is the windowed GPU host for the atom scene, built on raylib.
package gui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/controls"
	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/shaders"
	"github.com/san-kum/atom/internal/viewport"
)

var ErrNoDisplay = errors.New("could not open a window")

type Options struct {
	ShowLight bool
	ShowHUD   bool
}

type App struct {
	cfg      *config.Config
	log      *log.Logger
	state    *anim.State
	loop     *anim.Loop
	surface  *Surface
	renderer *Renderer
	viewport *viewport.Manager
	orbit    *controls.Orbit
	gpu      GPUInfo
}

// initWindow opens a resizable, high-DPI window and sets the frame rate.
func initWindow(w config.WindowConfig) error {
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w.Width), int32(w.Height), w.Title)
	if !rl.IsWindowReady() {
		return ErrNoDisplay
	}
	rl.SetTargetFPS(int32(w.FPS))
	rl.SetExitKey(0)
	return nil
}

// NewApp opens the window, assembles the scene and acquires every GPU
// resource. Any failure closes what was opened.
func NewApp(cfg *config.Config, opts Options, logger *log.Logger) (*App, error) {
	if err := initWindow(cfg.Window); err != nil {
		return nil, err
	}

	a := &App{cfg: cfg, log: logger}
	if info, err := ProbeGPU(); err != nil {
		logger.Warn("gpu probe failed, skipping shader pre-check", "err", err)
	} else {
		a.gpu = info
		logger.Info("gpu", "renderer", info.Renderer, "version", info.Version, "glsl", info.GLSL)
		if err := CheckProgram(shaders.Vertex(), shaders.Fragment()); err != nil {
			rl.CloseWindow()
			return nil, fmt.Errorf("atom shaders: %w", err)
		}
	}

	size := viewport.Size{Width: rl.GetScreenWidth(), Height: rl.GetScreenHeight()}
	s := scene.Assemble(cfg.Scene, size.Width, size.Height)
	a.state = anim.NewState(s, cfg.Animation, size)

	a.orbit = controls.NewOrbit(s.Camera)
	a.orbit.EnableDamping = cfg.Controls.Damping
	a.orbit.DampingFactor = cfg.Controls.DampingFactor

	a.surface = NewSurface()
	renderer, err := NewRenderer(s, a.surface, logger)
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}
	renderer.ShowLight = opts.ShowLight
	if opts.ShowHUD {
		renderer.Overlay = a.drawHUD
	}
	a.renderer = renderer

	a.viewport = viewport.NewManager(&a.state.Viewport, s.Camera, a.surface, logger)
	scheduler := &frameScheduler{viewport: a.viewport, orbit: a.orbit, renderer: renderer}
	scheduler.resize()

	clock := anim.Since(rl.GetTime)
	a.loop = anim.NewLoop(a.state, clock, renderer, scheduler, logger)
	return a, nil
}

func (a *App) State() *anim.State { return a.state }

// Run drives the animation loop until the window closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.log.Debug("loop started", "fps", a.cfg.Window.FPS)
	err := a.loop.Run(ctx)
	a.log.Debug("loop stopped", "frames", a.state.Frame, "err", err)
	return err
}

func (a *App) drawHUD() {
	s := a.state
	rl.DrawText("atom", 20, 20, 20, rl.RayWhite)
	rl.DrawText(hudStatus(s, int(rl.GetFPS())), 20, 46, 10, ColText)
	if a.gpu.Renderer != "" {
		rl.DrawText(a.gpu.Renderer, 20, 60, 10, ColText)
	}
	rl.DrawText("[DRAG] ORBIT  [WHEEL] ZOOM  [L] LIGHT  [Q] QUIT", 20, int32(rl.GetScreenHeight())-24, 10, ColText)
}

func hudStatus(s *anim.State, fps int) string {
	return fmt.Sprintf("frame %d  t %.1fs  %d FPS", s.Frame, s.Elapsed, fps)
}

// Close releases GPU resources then the window.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.surface != nil {
		a.surface.Close()
	}
	rl.CloseWindow()
}

// Run opens the window and blocks until it is closed.
func Run(ctx context.Context, cfg *config.Config, opts Options, logger *log.Logger) error {
	app, err := NewApp(cfg, opts, logger)
	if err != nil {
		return err
	}
	defer app.Close()
	return app.Run(ctx)
}
