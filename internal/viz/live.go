package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/controls"
	"github.com/san-kum/atom/internal/scene"
	"github.com/san-kum/atom/internal/viewport"
)

const (
	width           = 80
	height          = 24
	statsWidth      = 38
	graphHeight     = 4
	historyCapacity = 300

	// dragStep is how far one arrow key press drags, in dots.
	dragStep = 6.0
)

type TickMsg time.Time

// Model is the terminal host: it owns the animation loop and paces it with
// tea ticks instead of a frame scheduler.
type Model struct {
	cfg       *config.Config
	preset    string
	loop      *anim.Loop
	state     *anim.State
	projector *Projector
	viewport  *viewport.Manager
	orbit     *controls.Orbit
	log       *log.Logger

	width, height int
	running       bool
	showHelp      bool
	history       []float64
	recorder      *GIFRecorder
	status        string
	err           error
}

func NewModel(cfg *config.Config, preset string, logger *log.Logger) Model {
	size := viewport.Size{Width: width * 2, Height: height * 4}
	s := scene.Assemble(cfg.Scene, size.Width, size.Height)
	state := anim.NewState(s, cfg.Animation, size)

	projector := NewProjector(width, height)
	projector.ShowLight = true

	orbit := controls.NewOrbit(s.Camera)
	orbit.EnableDamping = cfg.Controls.Damping
	orbit.DampingFactor = cfg.Controls.DampingFactor

	return Model{
		cfg:       cfg,
		preset:    preset,
		loop:      anim.NewLoop(state, anim.NewWallClock(), projector, anim.Immediate{}, logger),
		state:     state,
		projector: projector,
		viewport:  viewport.NewManager(&state.Viewport, s.Camera, projector, logger),
		orbit:     orbit,
		log:       logger,
		width:     width,
		height:    height,
		running:   true,
		history:   make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.Window.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Err reports the frame error that stopped the model, if any.
func (m Model) Err() error { return m.err }

func (m Model) State() *anim.State { return m.state }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		cols := max(1, msg.Width-statsWidth-4)
		rows := max(1, msg.Height-2)
		m.viewport.Handle(viewport.ResizeEvent{Width: cols * 2, Height: rows * 4, DevicePixelRatio: 1})
	case tea.KeyMsg:
		return m.handleKey(msg)
	case TickMsg:
		if m.running {
			m.orbit.Update()
			if err := m.loop.Tick(); err != nil {
				m.err = err
				return m, tea.Quit
			}
			m.history = append(m.history, m.state.Scene.Electron.Position.X)
			if len(m.history) > historyCapacity {
				m.history = m.history[1:]
			}
			if m.recorder != nil {
				m.recorder.Capture(m.projector.Canvas)
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	in := controls.Input{ViewportHeight: m.state.Viewport.Height}
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ", "space", "p":
		m.running = !m.running
	case "left", "h":
		in.DragX = -dragStep
	case "right", "l":
		in.DragX = dragStep
	case "up", "k":
		in.DragY = -dragStep
	case "down", "j":
		in.DragY = dragStep
	case "+", "=":
		in.Wheel = 1
	case "-", "_":
		in.Wheel = -1
	case "L":
		m.projector.ShowLight = !m.projector.ShowLight
	case "g":
		m.toggleRecording()
	case "?":
		m.showHelp = !m.showHelp
	}
	m.orbit.Apply(in)
	if !m.running {
		// keep the camera responsive while paused
		m.orbit.Update()
		m.projector.Render(m.state.Scene, m.state.Scene.Camera)
	}
	return m, nil
}

func (m *Model) toggleRecording() {
	if m.recorder == nil {
		m.recorder = NewGIFRecorder(m.cfg.Window.FPS)
		m.status = "recording"
		return
	}
	path := fmt.Sprintf("atom_%d.gif", time.Now().Unix())
	if err := m.recorder.Save(path); err != nil {
		m.status = "gif failed"
		if m.log != nil {
			m.log.Error("save gif", "path", path, "err", err)
		}
	} else {
		m.status = "saved " + path
	}
	m.recorder = nil
}

func (m Model) View() string {
	canvasView := canvasStyle.Render(m.projector.Canvas.Render())

	s := m.state
	var b strings.Builder
	b.WriteString(headerStyle.Render("ATOM · "+strings.ToUpper(m.preset)) + "\n")

	status := "RUNNING"
	if !m.running {
		status = "PAUSED"
	}
	if m.recorder != nil {
		status += " " + recordingStyle.Render("● REC")
	}
	b.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history,
			asciigraph.Height(graphHeight),
			asciigraph.Width(statsWidth-10),
			asciigraph.LowerBound(-s.Orbit.Radius),
			asciigraph.UpperBound(s.Orbit.Radius),
			asciigraph.Caption("electron x"))
		b.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	e := s.Scene.Electron.Position
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Frame", fmt.Sprintf("%d", s.Frame))
	row("Time", fmt.Sprintf("%.2fs", s.Elapsed))
	row("Theta", fmt.Sprintf("%.1f°", math.Mod(s.Orbit.Theta, 2*math.Pi)*180/math.Pi))
	row("Electron", fmt.Sprintf("%.2f %.2f %.2f", e.X, e.Y, e.Z))
	row("Spin", fmt.Sprintf("%.2f rad", s.Scene.Proton.RotationY))
	row("uTime", fmt.Sprintf("%.0f", s.Scene.Proton.Material.Uniforms.Time))
	row("Camera", fmt.Sprintf("%.2f", s.Scene.Camera.Position.Sub(m.orbit.Target).Length()))
	row("Viewport", fmt.Sprintf("%dx%d", s.Viewport.Width, s.Viewport.Height))
	if m.status != "" {
		b.WriteString("\n" + subtleStyle.Render(m.status) + "\n")
	}

	b.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause Q:Quit ?:Help\n←↑↓→:Orbit +/-:Zoom"))
	statsView := statsStyle.Render(b.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  Arrows   - Orbit camera (hjkl)      ║
║  + / -    - Zoom in / out            ║
║  L        - Toggle light marker      ║
║  G        - Toggle GIF recording     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// Run starts the terminal host and blocks until the user quits.
func Run(cfg *config.Config, preset string, logger *log.Logger) error {
	p := tea.NewProgram(NewModel(cfg, preset, logger), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
