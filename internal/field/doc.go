// Package field implements the particle simulation behind the animated
// network background.
//
// A [Field] owns a fixed set of [Particle] values. Every frame each particle:
//
//   - drifts by its velocity
//   - reflects its velocity on any axis that left [0, bound]
//   - is pushed away from the pointer when it is within [MouseInfluenceRadius],
//     with a force that falls off linearly and scales with the particle's mass
//   - otherwise relaxes a tenth of the way back toward its rest position
//
// Positions are never clamped: a particle that overshoots a bound is drawn
// outside the surface for a frame until its reversed velocity brings it back.
//
// # Thread Safety
//
// A Field is not safe for concurrent use. Hosts drive it from a single
// goroutine through the animation loop.
package field
