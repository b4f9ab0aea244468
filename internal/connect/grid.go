package connect

import (
	"math"

	"github.com/san-kum/particlenet/internal/field"
)

type cell struct{ cx, cy int }

// maxCell bounds cell indices so huge finite coordinates convert to int
// safely. Clamping keeps neighbouring cells neighbours, so no pair is lost;
// far-out particles just share edge cells.
const maxCell = 1 << 30

// keep at most this many idle buckets between frames
const idleBuckets = 4096

func cellIndex(v, limit float64) int {
	c := math.Floor(v / limit)
	switch {
	case c > maxCell:
		return maxCell
	case c < -maxCell:
		return -maxCell
	}
	return int(c)
}

// half the neighbourhood; the other half is covered from the other side
var forward = [4]cell{{1, -1}, {1, 0}, {1, 1}, {0, 1}}

// Grid is a uniform spatial hash with cells as wide as the connection
// distance. Buckets are reused between frames.
type Grid struct {
	buckets map[cell][]int
	used    []cell
}

func NewGrid() *Grid {
	return &Grid{buckets: make(map[cell][]int)}
}

func (g *Grid) Name() string { return "grid" }

func (g *Grid) Pairs(ps []field.Particle, limit float64, dst []Link) []Link {
	if limit <= 0 {
		return dst
	}
	g.reset()
	for i := range ps {
		p := ps[i].Pos
		if !p.IsFinite() {
			continue
		}
		k := cell{cellIndex(p.X, limit), cellIndex(p.Y, limit)}
		b, ok := g.buckets[k]
		if !ok || len(b) == 0 {
			g.used = append(g.used, k)
		}
		g.buckets[k] = append(b, i)
	}

	for _, k := range g.used {
		own := g.buckets[k]
		for a := 0; a < len(own); a++ {
			for b := a + 1; b < len(own); b++ {
				dst = link(ps, own[a], own[b], limit, dst)
			}
		}
		for _, off := range forward {
			other := g.buckets[cell{k.cx + off.cx, k.cy + off.cy}]
			for _, i := range own {
				for _, j := range other {
					dst = link(ps, i, j, limit, dst)
				}
			}
		}
	}
	return dst
}

func (g *Grid) reset() {
	if len(g.buckets) > len(g.used)+idleBuckets {
		g.buckets = make(map[cell][]int, len(g.used))
		g.used = g.used[:0]
		return
	}
	for _, k := range g.used {
		g.buckets[k] = g.buckets[k][:0]
	}
	g.used = g.used[:0]
}

func link(ps []field.Particle, i, j int, limit float64, dst []Link) []Link {
	if i > j {
		i, j = j, i
	}
	d := ps[i].Pos.Dist(ps[j].Pos)
	if d >= limit {
		return dst
	}
	return append(dst, Link{I: i, J: j, Dist: d, Alpha: Opacity(d, limit)})
}
