package viz

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/particlenet/internal/config"
)

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Particles = 40
	cfg.Seed = 5
	return cfg
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestModelBuildsSceneOnFirstResize(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	if !strings.Contains(m.View(), "starting") {
		t.Error("expected placeholder before the first WindowSizeMsg")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.scene == nil {
		t.Fatal("scene not built")
	}
	if m.cols != 100-panelWidth || m.rows != 29 {
		t.Errorf("unexpected canvas %dx%d", m.cols, m.rows)
	}
	w, h := m.scene.Manager.Size()
	if w != m.cols*2*4 || h != m.rows*4*4 {
		t.Errorf("surface is %dx%d", w, h)
	}
	for _, p := range m.scene.Field.Particles() {
		if p.Pos.X > float64(w) || p.Pos.Y > float64(h) {
			t.Fatalf("particle spawned off canvas at %+v", p.Pos)
		}
	}
}

func TestModelTicksAdvanceLoop(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	for i := 0; i < 3; i++ {
		m = update(t, m, TickMsg(time.Now()))
	}
	if m.scene.Loop.Frame() != 3 || len(m.links) != 3 {
		t.Errorf("expected 3 frames, got %d (history %d)", m.scene.Loop.Frame(), len(m.links))
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m = update(t, m, TickMsg(time.Now()))
	if !m.paused || m.scene.Loop.Frame() != 3 {
		t.Errorf("paused model should not advance, frame %d", m.scene.Loop.Frame())
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("view should show paused status")
	}
}

func TestModelMouseMovesPointer(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, tea.MouseMsg{X: 10, Y: 5, Action: tea.MouseActionMotion})

	p := m.scene.Tracker.Position()
	if p.X != 84 || p.Y != 88 {
		t.Errorf("expected pointer at (84, 88), got %+v", p)
	}
}

func TestModelResizeKeepsScene(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	sc := m.scene

	m = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})
	if m.scene != sc {
		t.Error("resize should not rebuild the scene")
	}
	if w, _ := sc.Manager.Size(); w != (60-panelWidth)*2*4 {
		t.Errorf("manager width %d", w)
	}
}

func TestModelReload(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	cfg := testConfig()
	cfg.Particles = 7
	m = update(t, m, ReloadMsg{Config: cfg})
	if m.scene.Field.Len() != 7 {
		t.Errorf("expected rebuilt scene with 7 particles, got %d", m.scene.Field.Len())
	}

	m = update(t, m, ReloadMsg{Err: errors.New("bad yaml")})
	if m.err == nil || m.scene.Field.Len() != 7 {
		t.Error("a failed reload should keep the running scene and report the error")
	}
}

func TestModelInvalidReloadKeepsAnimating(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	m = update(t, m, TickMsg(time.Now()))
	sc := m.scene

	bad := testConfig()
	bad.Particles = 0
	m = update(t, m, ReloadMsg{Config: bad})
	if !errors.Is(m.err, config.ErrInvalid) {
		t.Fatalf("expected invalid config error, got %v", m.err)
	}
	if m.scene != sc || !sc.Loop.Running() {
		t.Fatal("the running scene should survive a rejected config")
	}
	if m.cfg.Particles != 40 {
		t.Errorf("rejected config should not replace the active one, particles = %d", m.cfg.Particles)
	}

	m = update(t, m, TickMsg(time.Now()))
	if sc.Loop.Frame() != 2 {
		t.Errorf("expected the old scene to keep ticking, frame %d", sc.Loop.Frame())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if m.scene == sc || m.scene.Field.Len() != 40 {
		t.Error("respawn should rebuild from the last good config")
	}
}

func TestModelQuitStopsLoop(t *testing.T) {
	m := NewModel(testConfig(), 4, nil)
	m = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).scene.Loop.Running() {
		t.Error("loop still running after quit")
	}
}

func TestThemesCycle(t *testing.T) {
	th := ThemeNetwork
	for range Themes {
		th = NextTheme(th)
	}
	if th.Name != ThemeNetwork.Name {
		t.Errorf("cycling through every theme should come back, got %s", th.Name)
	}
	if GetTheme("missing").Name != "network" {
		t.Error("unknown theme should fall back to network")
	}
}
