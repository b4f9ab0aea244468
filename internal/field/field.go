package field

import (
	"fmt"
	"math/rand"

	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/surface"
)

const (
	DefaultCount         = 200
	MouseInfluenceRadius = 200.0
	RelaxDivisor         = 10.0
	MaxDrift             = 0.25
	MinRadius            = 1.0
	MaxRadius            = 3.0
	MinMass              = 1.0
	MaxMass              = 31.0
)

// Params tunes particle generation and the per-frame force rules.
type Params struct {
	MouseRadius  float64
	RelaxDivisor float64
	// MaxDrift bounds each velocity component to [-MaxDrift, MaxDrift).
	MaxDrift  float64
	RadiusMin float64
	RadiusMax float64
	MassMin   float64
	MassMax   float64
	Color     surface.Color
}

func DefaultParams() Params {
	return Params{
		MouseRadius:  MouseInfluenceRadius,
		RelaxDivisor: RelaxDivisor,
		MaxDrift:     MaxDrift,
		RadiusMin:    MinRadius,
		RadiusMax:    MaxRadius,
		MassMin:      MinMass,
		MassMax:      MaxMass,
		Color:        surface.Accent,
	}
}

func (p Params) Validate() error {
	switch {
	case p.MouseRadius <= 0:
		return fmt.Errorf("%w: mouse radius %g", ErrInvalidParams, p.MouseRadius)
	case p.RelaxDivisor < 1:
		return fmt.Errorf("%w: relax divisor %g", ErrInvalidParams, p.RelaxDivisor)
	case p.MaxDrift < 0:
		return fmt.Errorf("%w: max drift %g", ErrInvalidParams, p.MaxDrift)
	case p.RadiusMin <= 0 || p.RadiusMax < p.RadiusMin:
		return fmt.Errorf("%w: radius range [%g, %g)", ErrInvalidParams, p.RadiusMin, p.RadiusMax)
	case p.MassMin <= 0 || p.MassMax < p.MassMin:
		return fmt.Errorf("%w: mass range [%g, %g)", ErrInvalidParams, p.MassMin, p.MassMax)
	}
	return nil
}

// Field owns every particle of one simulation instance. The particle count
// never changes after construction.
type Field struct {
	params    Params
	particles []Particle
}

// New scatters n particles uniformly over b, each resting where it spawned.
func New(n int, b geom.Bounds, params Params, rng *rand.Rand) (*Field, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrParticleCount, n)
	}
	if !b.Valid() {
		return nil, fmt.Errorf("%w: got %gx%g", ErrInvalidBounds, b.W, b.H)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ps := make([]Particle, n)
	for i := range ps {
		pos := geom.V(rng.Float64()*b.W, rng.Float64()*b.H)
		vel := geom.V(
			(rng.Float64()-0.5)*2*params.MaxDrift,
			(rng.Float64()-0.5)*2*params.MaxDrift,
		)
		radius := params.RadiusMin + rng.Float64()*(params.RadiusMax-params.RadiusMin)
		mass := params.MassMin + rng.Float64()*(params.MassMax-params.MassMin)
		ps[i] = NewParticle(pos, vel, radius, mass)
	}
	return &Field{params: params, particles: ps}, nil
}

// FromParticles builds a field around an explicit particle set.
func FromParticles(params Params, ps ...Particle) (*Field, error) {
	if len(ps) == 0 {
		return nil, fmt.Errorf("%w: got 0", ErrParticleCount)
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	owned := make([]Particle, len(ps))
	copy(owned, ps)
	return &Field{params: params, particles: owned}, nil
}

func (f *Field) Params() Params { return f.params }
func (f *Field) Len() int       { return len(f.particles) }

// Particles returns the field's backing slice. Callers may advance particles
// through Update but must not append to or reorder it.
func (f *Field) Particles() []Particle { return f.particles }

// Update advances p by one frame given the pointer position and surface
// bounds. It reports whether the pointer repelled p this frame.
func (f *Field) Update(p *Particle, pointer geom.Vec2, b geom.Bounds) bool {
	p.Pos = p.Pos.Add(p.Vel)

	if p.Pos.X < 0 || p.Pos.X > b.W {
		p.Vel.X = -p.Vel.X
	}
	if p.Pos.Y < 0 || p.Pos.Y > b.H {
		p.Vel.Y = -p.Vel.Y
	}

	d := pointer.Sub(p.Pos)
	dist := d.Len()
	if dist < f.params.MouseRadius {
		// pointer dead on the particle: no direction, no push
		if dist == 0 {
			return true
		}
		force := (f.params.MouseRadius - dist) / f.params.MouseRadius
		p.Pos = p.Pos.Sub(d.Scale(force * p.mass / dist))
		return true
	}

	if p.Pos.X != p.base.X {
		p.Pos.X -= (p.Pos.X - p.base.X) / f.params.RelaxDivisor
	}
	if p.Pos.Y != p.base.Y {
		p.Pos.Y -= (p.Pos.Y - p.base.Y) / f.params.RelaxDivisor
	}
	return false
}

// Draw renders p as a filled disc in the field's color.
func (f *Field) Draw(p *Particle, s surface.Surface) {
	s.FillCircle(p.Pos.X, p.Pos.Y, p.radius, f.params.Color)
}

// Step updates and draws every particle in order and returns how many were
// inside the pointer's influence radius.
func (f *Field) Step(pointer geom.Vec2, b geom.Bounds, s surface.Surface) int {
	repelled := 0
	for i := range f.particles {
		p := &f.particles[i]
		if f.Update(p, pointer, b) {
			repelled++
		}
		f.Draw(p, s)
	}
	return repelled
}

// MeanDisplacement is the average distance of particles from rest.
func (f *Field) MeanDisplacement() float64 {
	sum := 0.0
	for i := range f.particles {
		sum += f.particles[i].Offset().Len()
	}
	return sum / float64(len(f.particles))
}

// Validate reports the first particle whose position or velocity is not finite.
func (f *Field) Validate() error {
	for i := range f.particles {
		p := &f.particles[i]
		if !p.Pos.IsFinite() || !p.Vel.IsFinite() {
			return &ParticleError{Index: i, Pos: p.Pos, Wrapped: ErrNonFinite}
		}
	}
	return nil
}
