// Package raster renders frames into an in-memory RGBA image using
// golang.org/x/image/vector, for headless recording.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/san-kum/particlenet/internal/surface"
)

// Surface is a surface.Surface backed by an *image.RGBA.
type Surface struct {
	img *image.RGBA
	bg  color.RGBA
	z   *vector.Rasterizer
}

func New(w, h int, bg surface.Color) *Surface {
	s := &Surface{
		bg: color.RGBA{R: bg.R, G: bg.G, B: bg.B, A: 0xff},
		z:  vector.NewRasterizer(0, 0),
	}
	s.Resize(w, h)
	return s
}

func (s *Surface) Image() *image.RGBA { return s.img }

func (s *Surface) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

func (s *Surface) Resize(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	s.Clear()
}

func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.bg), image.Point{}, draw.Src)
}

func (s *Surface) FillCircle(x, y, r float64, c surface.Color) {
	if r <= 0 || s.img.Bounds().Empty() {
		return
	}
	s.begin()
	// enough segments that a 3px disc still looks round
	n := max(12, int(math.Ceil(r*6)))
	s.z.MoveTo(float32(x+r), float32(y))
	for i := 1; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s.z.LineTo(float32(x+r*math.Cos(a)), float32(y+r*math.Sin(a)))
	}
	s.z.ClosePath()
	s.paint(c, 1)
}

func (s *Surface) StrokeLine(x0, y0, x1, y1 float64, st surface.Stroke) {
	if st.Alpha <= 0 || st.Width <= 0 || s.img.Bounds().Empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	// quad of the stroke width around the segment
	nx, ny := -dy/l*st.Width/2, dx/l*st.Width/2

	s.begin()
	s.z.MoveTo(float32(x0+nx), float32(y0+ny))
	s.z.LineTo(float32(x1+nx), float32(y1+ny))
	s.z.LineTo(float32(x1-nx), float32(y1-ny))
	s.z.LineTo(float32(x0-nx), float32(y0-ny))
	s.z.ClosePath()
	s.paint(st.Color, st.Alpha)
}

func (s *Surface) begin() {
	b := s.img.Bounds()
	s.z.Reset(b.Dx(), b.Dy())
}

func (s *Surface) paint(c surface.Color, alpha float64) {
	a := uint8(math.Round(math.Min(math.Max(alpha, 0), 1) * 255))
	src := image.NewUniform(color.NRGBA{R: c.R, G: c.G, B: c.B, A: a})
	s.z.DrawOp = draw.Over
	s.z.Draw(s.img, s.img.Bounds(), src, image.Point{})
}
