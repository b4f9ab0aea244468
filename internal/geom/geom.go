// Package geom holds the small 2-D value types shared by the simulation,
// its surfaces and its hosts.
package geom

import "math"

// Vec2 is a point or displacement in surface coordinates.
type Vec2 struct {
	X, Y float64
}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2      { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64         { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 { return v.Sub(o).Len() }

// IsFinite reports whether neither component is NaN or Inf.
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Bounds is the drawable area; particles reflect off [0, W] x [0, H].
type Bounds struct {
	W, H float64
}

func (b Bounds) Valid() bool { return b.W > 0 && b.H > 0 }

// Contains reports whether p lies inside the closed rectangle.
func (b Bounds) Contains(p Vec2) bool {
	return p.X >= 0 && p.X <= b.W && p.Y >= 0 && p.Y <= b.H
}
