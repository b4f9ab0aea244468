package surface

import "github.com/san-kum/particlenet/internal/geom"

// Manager owns a surface's dimensions and keeps them equal to the viewport.
type Manager struct {
	surface  Surface
	viewport Viewport
	w, h     int
	resizes  int
}

// NewManager sizes s to the viewport immediately.
func NewManager(v Viewport, s Surface) *Manager {
	m := &Manager{surface: s, viewport: v}
	m.Sync()
	return m
}

// Sync re-reads the viewport and applies its size.
func (m *Manager) Sync() {
	w, h := m.viewport.Size()
	m.OnResize(w, h)
}

// OnResize applies new dimensions synchronously. Resizing clears the surface;
// the next frame repaints everything.
func (m *Manager) OnResize(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	m.w, m.h = w, h
	m.surface.Resize(w, h)
	m.resizes++
}

func (m *Manager) Bounds() geom.Bounds {
	return geom.Bounds{W: float64(m.w), H: float64(m.h)}
}

func (m *Manager) Size() (int, int) { return m.w, m.h }

func (m *Manager) Surface() Surface { return m.surface }

// Resizes counts how many times dimensions were applied, including the
// initial sizing.
func (m *Manager) Resizes() int { return m.resizes }
