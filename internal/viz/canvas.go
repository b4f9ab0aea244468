package viz

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/particlenet/internal/surface"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	levelNone uint8 = iota
	levelDim
	levelBright
)

// Canvas is a braille canvas that also implements surface.Surface. Surface
// coordinates are logical pixels; each braille dot covers Scale x Scale of
// them.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
	Scale         float64
	// MinAlpha hides links fainter than this; the terminal has no blending.
	MinAlpha float64
	// BrightAlpha is the stroke alpha from which a cell uses the bright style.
	BrightAlpha float64

	level [][]uint8
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{Scale: 1, MinAlpha: 0.15, BrightAlpha: 0.6}
	c.allocate(w, h)
	return c
}

func (c *Canvas) allocate(w, h int) {
	c.Width, c.Height = max(w, 0), max(h, 0)
	c.Grid = make([][]rune, c.Height)
	c.level = make([][]uint8, c.Height)
	for i := range c.Grid {
		c.Grid[i] = make([]rune, c.Width)
		c.level[i] = make([]uint8, c.Width)
	}
	c.Clear()
}

// Set sets a pixel at (x, y) where x,y are in "sub-pixel" coordinates.
// The canvas size in sub-pixels is (Width*2) x (Height*4).
func (c *Canvas) Set(x, y int) {
	c.mark(x, y, levelBright)
}

func (c *Canvas) mark(x, y int, lvl uint8) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
	if lvl > c.level[row][col] {
		c.level[row][col] = lvl
	}
}

// Unset clears a pixel
func (c *Canvas) Unset(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	mask := ^rune(pixelMap[y%4][x%2])
	c.Grid[row][col] &= mask
	if c.Grid[row][col] < 0x2800 {
		c.Grid[row][col] = 0x2800
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
			c.level[i][j] = levelNone
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	c.line(x0, y0, x1, y1, levelBright)
}

func (c *Canvas) line(x0, y0, x1, y1 int, lvl uint8) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.mark(x0, y0, lvl)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

// Size reports the canvas in logical pixels.
func (c *Canvas) Size() (int, int) {
	return int(float64(c.Width*2) * c.Scale), int(float64(c.Height*4) * c.Scale)
}

// Resize reallocates the grid to cover w x h logical pixels.
func (c *Canvas) Resize(w, h int) {
	dotsW := math.Ceil(float64(w) / c.Scale)
	dotsH := math.Ceil(float64(h) / c.Scale)
	c.allocate(int(math.Ceil(dotsW/2)), int(math.Ceil(dotsH/4)))
}

func (c *Canvas) dot(v float64) int {
	return int(math.Floor(v / c.Scale))
}

func (c *Canvas) FillCircle(x, y, r float64, _ surface.Color) {
	cx, cy := c.dot(x), c.dot(y)
	rd := r / c.Scale
	if rd < 1 {
		c.mark(cx, cy, levelBright)
		return
	}
	ri := int(math.Ceil(rd))
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if float64(dx*dx+dy*dy) <= rd*rd {
				c.mark(cx+dx, cy+dy, levelBright)
			}
		}
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1 float64, s surface.Stroke) {
	if s.Alpha < c.MinAlpha {
		return
	}
	lvl := levelDim
	if s.Alpha >= c.BrightAlpha {
		lvl = levelBright
	}
	c.line(c.dot(x0), c.dot(y0), c.dot(x1), c.dot(y1), lvl)
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Render is String with each run of cells styled by its brightest mark.
func (c *Canvas) Render(bright, dim lipgloss.Style) string {
	var b strings.Builder
	for i, row := range c.Grid {
		start := 0
		for j := 1; j <= len(row); j++ {
			if j < len(row) && c.level[i][j] == c.level[i][start] {
				continue
			}
			run := string(row[start:j])
			switch c.level[i][start] {
			case levelBright:
				b.WriteString(bright.Render(run))
			case levelDim:
				b.WriteString(dim.Render(run))
			default:
				b.WriteString(run)
			}
			start = j
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
