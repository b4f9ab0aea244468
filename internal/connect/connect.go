// Package connect draws the "network" edges between nearby particles.
//
// Two particles are linked when their distance is below the connection
// distance; the link's opacity falls linearly from 1 at distance zero to 0 at
// the threshold. [Naive] checks every unordered pair; [Grid] buckets
// particles into cells one connection distance wide so only neighbouring
// cells are compared. Both produce the same link set.
package connect

import (
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/surface"
)

const (
	DefaultDistance = 120.0
	DefaultWidth    = 1.0
)

// Link is one drawn edge between particles I < J.
type Link struct {
	I, J  int
	Dist  float64
	Alpha float64
}

// Opacity is 1 - dist/limit, or 0 once dist reaches limit.
func Opacity(dist, limit float64) float64 {
	if dist >= limit {
		return 0
	}
	return 1 - dist/limit
}

// Strategy finds every pair of particles closer than limit.
type Strategy interface {
	Name() string
	// Pairs appends links to dst and returns the extended slice.
	Pairs(ps []field.Particle, limit float64, dst []Link) []Link
}

// Renderer strokes the links a Strategy finds.
type Renderer struct {
	strategy Strategy
	distance float64
	color    surface.Color
	width    float64
	links    []Link
}

func NewRenderer(s Strategy, distance float64, c surface.Color, width float64) *Renderer {
	return &Renderer{strategy: s, distance: distance, color: c, width: width}
}

// Default uses the naive strategy with the stock distance, color and width.
func Default() *Renderer {
	return NewRenderer(Naive{}, DefaultDistance, surface.Accent, DefaultWidth)
}

func (r *Renderer) Strategy() Strategy { return r.strategy }
func (r *Renderer) Distance() float64  { return r.distance }

// Render draws one line per link and returns the number drawn. Particles are
// only read.
func (r *Renderer) Render(ps []field.Particle, s surface.Surface) int {
	r.links = r.strategy.Pairs(ps, r.distance, r.links[:0])
	for _, l := range r.links {
		a, b := &ps[l.I], &ps[l.J]
		s.StrokeLine(a.Pos.X, a.Pos.Y, b.Pos.X, b.Pos.Y, surface.Stroke{
			Color: r.color,
			Alpha: l.Alpha,
			Width: r.width,
		})
	}
	return len(r.links)
}

// Links returns the links found by the last Render.
func (r *Renderer) Links() []Link { return r.links }
