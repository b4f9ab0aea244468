package viz

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/scene"
	"github.com/san-kum/particlenet/internal/surface"
)

const (
	historyCapacity = 120
	DefaultScale    = 4.0
)

type TickMsg time.Time

// ReloadMsg carries a configuration that replaces the running one.
type ReloadMsg struct {
	Config *config.Config
	Err    error
}

// Model hosts one scene in the terminal. The scene is built on the first
// WindowSizeMsg so particles spawn over the real canvas.
type Model struct {
	cfg      *config.Config
	scale    float64
	scene    *scene.Scene
	canvas   *Canvas
	sched    *loop.ManualScheduler
	reloads  <-chan ReloadMsg
	theme    Theme
	styles   styles
	cols     int
	rows     int
	paused   bool
	showHelp bool
	links    []float64
	status   string
	err      error
}

// NewModel prepares a terminal host. reloads may be nil; otherwise each value
// received rebuilds the scene.
func NewModel(cfg *config.Config, scale float64, reloads <-chan ReloadMsg) Model {
	if scale <= 0 {
		scale = DefaultScale
	}
	return Model{
		cfg:     cfg,
		scale:   scale,
		sched:   loop.NewManualScheduler(),
		reloads: reloads,
		theme:   ThemeNetwork,
		styles:  stylesFor(ThemeNetwork),
		links:   make([]float64, 0, historyCapacity),
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func waitReload(ch <-chan ReloadMsg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), waitReload(m.reloads))
}

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.stop()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.rebuild()
		case "t":
			m.theme = NextTheme(m.theme)
			m.styles = stylesFor(m.theme)
		case "s":
			m.snapshot()
		case "?":
			m.showHelp = !m.showHelp
		}

	case tea.WindowSizeMsg:
		m.cols = max(msg.Width-panelWidth, 4)
		m.rows = max(msg.Height-1, 2)
		if m.scene == nil {
			m.rebuild()
		} else {
			w, h := m.logicalSize()
			m.scene.Manager.OnResize(w, h)
		}

	case tea.MouseMsg:
		if m.scene != nil && msg.Action == tea.MouseActionMotion {
			// centre of the cell, in logical pixels
			x := (float64(msg.X)*2 + 1) * m.scale
			y := (float64(msg.Y)*4 + 2) * m.scale
			m.scene.Tracker.Move(x, y)
		}

	case ReloadMsg:
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			prev := m.cfg
			m.cfg = msg.Config
			m.err = nil
			if m.rebuild() {
				m.status = "config reloaded"
			} else {
				m.cfg = prev
			}
		}
		return m, waitReload(m.reloads)

	case TickMsg:
		if !m.paused && m.scene != nil {
			m.sched.RunPending()
			m.record(m.scene.Loop.Last())
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) logicalSize() (int, int) {
	return int(float64(m.cols*2) * m.scale), int(float64(m.rows*4) * m.scale)
}

func (m *Model) stop() {
	if m.scene != nil {
		m.scene.Loop.Stop()
	}
}

// rebuild replaces the scene, keeping the canvas and scheduler. On failure
// the current scene keeps running and rebuild reports false.
func (m *Model) rebuild() bool {
	if m.cols == 0 {
		return false
	}
	if m.canvas == nil {
		m.canvas = NewCanvas(m.cols, m.rows)
		m.canvas.Scale = m.scale
	}
	w, h := m.logicalSize()
	sc, err := scene.New(m.cfg, m.canvas, surface.FixedViewport{W: w, H: h}, m.sched)
	if err != nil {
		m.err = err
		return false
	}
	m.stop()
	m.scene = sc
	m.links = m.links[:0]
	sc.Loop.Start()
	return true
}

func (m *Model) record(s loop.FrameStats) {
	if s.Frame == 0 {
		return
	}
	if len(m.links) == historyCapacity {
		copy(m.links, m.links[1:])
		m.links = m.links[:historyCapacity-1]
	}
	m.links = append(m.links, float64(s.Links))
}

func (m *Model) snapshot() {
	if m.canvas == nil {
		return
	}
	name := fmt.Sprintf("particlenet_%d.svg", time.Now().Unix())
	svg := m.canvas.SVG(4, string(m.theme.Particle))
	if err := os.WriteFile(name, []byte(svg), 0644); err != nil {
		m.err = err
		return
	}
	m.status = "saved " + name
}

// View renders the canvas and the stats panel.
func (m Model) View() string {
	if m.scene == nil {
		if m.err != nil {
			return "error: " + m.err.Error() + "\n"
		}
		return "starting...\n"
	}
	canvasView := m.canvas.Render(m.styles.bright, m.styles.dim)
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.styles.panel.Render(m.statsView()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

func (m Model) statsView() string {
	st := m.styles
	last := m.scene.Loop.Last()

	var s strings.Builder
	s.WriteString(st.header.Render("PARTICLE NETWORK") + "\n")
	if m.paused {
		s.WriteString(st.paused.Render("PAUSED") + "\n\n")
	} else {
		s.WriteString(st.running.Render("RUNNING") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	w, h := m.scene.Manager.Size()
	row("Particles", fmt.Sprintf("%d", m.scene.Field.Len()))
	row("Links", fmt.Sprintf("%d", last.Links))
	row("Repelled", fmt.Sprintf("%d", last.Repelled))
	row("Drift", fmt.Sprintf("%.2f px", last.Displacement))
	row("Frame", fmt.Sprintf("%d", last.Frame))
	row("Frame time", last.Elapsed.Round(time.Microsecond).String())
	row("Surface", fmt.Sprintf("%dx%d", w, h))
	row("Pointer", fmt.Sprintf("%.0f,%.0f", last.Pointer.X, last.Pointer.Y))
	row("Strategy", m.scene.Renderer.Strategy().Name())
	row("Theme", m.theme.Name)

	if len(m.links) > 1 {
		chart := asciigraph.Plot(m.links, asciigraph.Height(5), asciigraph.Width(panelWidth-12), asciigraph.Caption("links"))
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + st.paused.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		s.WriteString("\n" + st.label.Width(0).Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Pause R:Respawn Q:Quit\nT:Theme  S:SVG     ?:Help"))
	return s.String()
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Respawn particles        ║
║  T        - Cycle themes             ║
║  S        - Save SVG snapshot        ║
║  Mouse    - Push particles away      ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
`
