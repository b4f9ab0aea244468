package field

import (
	"errors"
	"fmt"

	"github.com/san-kum/particlenet/internal/geom"
)

// Domain errors for field construction and validation.
var (
	// ErrParticleCount indicates a non-positive particle count.
	ErrParticleCount = errors.New("field: particle count must be positive")

	// ErrInvalidBounds indicates a surface with no drawable area.
	ErrInvalidBounds = errors.New("field: bounds must have positive width and height")

	// ErrInvalidParams indicates a parameter outside its valid range.
	ErrInvalidParams = errors.New("field: parameter out of valid range")

	// ErrNonFinite indicates a particle position or velocity became NaN or Inf.
	ErrNonFinite = errors.New("field: non-finite particle state")
)

// ParticleError wraps an error with the offending particle.
type ParticleError struct {
	Index   int
	Pos     geom.Vec2
	Wrapped error
}

func (e *ParticleError) Error() string {
	return fmt.Sprintf("particle %d at (%g, %g): %v", e.Index, e.Pos.X, e.Pos.Y, e.Wrapped)
}

func (e *ParticleError) Unwrap() error {
	return e.Wrapped
}
