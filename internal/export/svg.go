package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/particlenet/internal/surface"
)

// SVG is a surface.Surface that keeps the current frame as SVG elements.
type SVG struct {
	w, h int
	bg   surface.Color
	body strings.Builder
}

func NewSVG(w, h int, bg surface.Color) *SVG {
	return &SVG{w: w, h: h, bg: bg}
}

func (s *SVG) Clear() { s.body.Reset() }

func (s *SVG) Size() (int, int) { return s.w, s.h }

func (s *SVG) Resize(w, h int) {
	s.w, s.h = max(w, 0), max(h, 0)
	s.body.Reset()
}

func (s *SVG) FillCircle(x, y, r float64, c surface.Color) {
	fmt.Fprintf(&s.body, `<circle cx="%.2f" cy="%.2f" r="%.2f" fill="%s"/>`+"\n", x, y, r, c.Hex())
}

func (s *SVG) StrokeLine(x0, y0, x1, y1 float64, st surface.Stroke) {
	fmt.Fprintf(&s.body,
		`<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-opacity="%.3f" stroke-width="%g"/>`+"\n",
		x0, y0, x1, y1, st.Color.Hex(), st.Alpha, st.Width)
}

// String returns the frame as a standalone SVG document.
func (s *SVG) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, s.w, s.h, s.w, s.h, s.bg.Hex()))
	sb.WriteString(s.body.String())
	sb.WriteString("</svg>\n")
	return sb.String()
}

func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, s.String())
	return int64(n), err
}
