package surface

import (
	"errors"
	"fmt"
	"strconv"
)

// ErrBadColor is returned when a color string is not of the form #rrggbb.
var ErrBadColor = errors.New("surface: color must be #rrggbb")

// Color is an opaque RGB color; transparency is carried by Stroke.Alpha.
type Color struct {
	R, G, B uint8
}

// Accent is the default particle and link color.
var Accent = Color{R: 0x00, G: 0xff, B: 0x9d}

// Background is the default clear color.
var Background = Color{R: 0x0a, G: 0x0a, B: 0x0a}

// ParseHex parses "#rrggbb".
func ParseHex(s string) (Color, error) {
	if len(s) != 7 || s[0] != '#' {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Stroke describes how a line is drawn. Alpha is in [0, 1].
type Stroke struct {
	Color Color
	Alpha float64
	Width float64
}

// Surface is a 2-D raster drawing target.
type Surface interface {
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeLine(x0, y0, x1, y1 float64, s Stroke)
	Size() (w, h int)
	// Resize changes the pixel dimensions; prior contents are discarded.
	Resize(w, h int)
}

// Viewport reports the currently available drawing area.
type Viewport interface {
	Size() (w, h int)
}

// FixedViewport is a Viewport of constant size.
type FixedViewport struct {
	W, H int
}

func (v FixedViewport) Size() (int, int) { return v.W, v.H }

// ViewportFunc adapts a function to the Viewport interface.
type ViewportFunc func() (int, int)

func (f ViewportFunc) Size() (int, int) { return f() }
