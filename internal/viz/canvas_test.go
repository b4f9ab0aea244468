package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlenet/internal/surface"
)

func TestCanvasSetAndClear(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("expected dot 1, got %U", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("expected dot 8, got %U", c.Grid[0][1])
	}

	c.Set(-1, 0)
	c.Set(100, 100)

	c.Unset(0, 0)
	if c.Grid[0][0] != 0x2800 {
		t.Errorf("expected empty cell after Unset, got %U", c.Grid[0][0])
	}

	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Errorf("canvas not cleared: %q", c.String())
	}
}

func TestCanvasScaledSize(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Scale = 4
	c.Resize(800, 600)

	// 800/4 = 200 dots = 100 cells; 600/4 = 150 dots = 38 rows (rounded up)
	if c.Width != 100 || c.Height != 38 {
		t.Fatalf("expected 100x38 cells, got %dx%d", c.Width, c.Height)
	}
	if w, h := c.Size(); w != 800 || h != 608 {
		t.Errorf("expected logical size 800x608, got %dx%d", w, h)
	}
}

func TestCanvasFillCircle(t *testing.T) {
	c := NewCanvas(10, 5)
	c.Scale = 2

	// radius below one dot marks just the centre dot
	c.FillCircle(4, 4, 1, surface.Accent)
	if c.Grid[0][1] != 0x2800|rune(pixelMap[2][0]) {
		t.Errorf("expected single dot, got %U", c.Grid[0][1])
	}

	c.Clear()
	c.FillCircle(10, 10, 4, surface.Accent)
	dots := 0
	for _, row := range c.Grid {
		for _, r := range row {
			for b := r - 0x2800; b != 0; b &= b - 1 {
				dots++
			}
		}
	}
	// radius 2 dots covers the 13 dots of a lattice disc
	if dots != 13 {
		t.Errorf("expected 13 dots, got %d", dots)
	}
}

func TestCanvasStrokeAlphaThreshold(t *testing.T) {
	c := NewCanvas(10, 2)
	c.StrokeLine(0, 0, 19, 0, surface.Stroke{Alpha: 0.05, Width: 1})
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("faint link should be hidden")
	}

	c.StrokeLine(0, 0, 19, 0, surface.Stroke{Alpha: 0.3, Width: 1})
	if c.level[0][0] != levelDim {
		t.Errorf("expected dim cell, got %d", c.level[0][0])
	}
	c.StrokeLine(0, 0, 3, 0, surface.Stroke{Alpha: 0.9, Width: 1})
	if c.level[0][0] != levelBright || c.level[0][5] != levelDim {
		t.Errorf("unexpected levels %v", c.level[0])
	}
}

func TestCanvasRenderKeepsText(t *testing.T) {
	c := NewCanvas(6, 2)
	c.DrawLine(0, 0, 11, 7)
	plain := lipgloss.NewStyle()
	if got := c.Render(plain, plain); got != c.String() {
		t.Errorf("unstyled Render should equal String:\n%q\n%q", got, c.String())
	}
}

func TestCanvasSVG(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)

	svg := c.SVG(4, "#00ff9d")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("expected 2 dots, got %d", n)
	}
	if !strings.Contains(svg, `width="16" height="16"`) {
		t.Errorf("unexpected header in %q", svg[:120])
	}
	if !strings.Contains(svg, `fill="#00ff9d"`) {
		t.Error("missing fill color")
	}
}
