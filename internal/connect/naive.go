package connect

import "github.com/san-kum/particlenet/internal/field"

// Naive compares all n(n-1)/2 pairs.
type Naive struct{}

func (Naive) Name() string { return "naive" }

func (Naive) Pairs(ps []field.Particle, limit float64, dst []Link) []Link {
	for i := 0; i < len(ps); i++ {
		pi := ps[i].Pos
		for j := i + 1; j < len(ps); j++ {
			d := pi.Dist(ps[j].Pos)
			if d < limit {
				dst = append(dst, Link{I: i, J: j, Dist: d, Alpha: Opacity(d, limit)})
			}
		}
	}
	return dst
}
