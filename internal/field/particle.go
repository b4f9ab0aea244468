package field

import "github.com/san-kum/particlenet/internal/geom"

// Particle is one animated node. Pos and Vel change every frame; the rest
// position, radius and mass are fixed at construction.
type Particle struct {
	Pos geom.Vec2
	Vel geom.Vec2

	base   geom.Vec2
	radius float64
	mass   float64
}

// NewParticle creates a particle resting at pos.
func NewParticle(pos, vel geom.Vec2, radius, mass float64) Particle {
	return Particle{Pos: pos, Vel: vel, base: pos, radius: radius, mass: mass}
}

// WithBase returns a copy of p whose rest position is base. Pos is untouched,
// which lets callers start a particle displaced from rest.
func (p Particle) WithBase(base geom.Vec2) Particle {
	p.base = base
	return p
}

func (p *Particle) Base() geom.Vec2 { return p.base }
func (p *Particle) Radius() float64 { return p.radius }
func (p *Particle) Mass() float64   { return p.mass }

// Offset is the particle's displacement from its rest position.
func (p *Particle) Offset() geom.Vec2 { return p.Pos.Sub(p.base) }
