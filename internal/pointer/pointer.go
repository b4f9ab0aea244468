// Package pointer records the latest pointer position fed by a host's input
// events. The simulation reads it once per particle update.
package pointer

import "github.com/san-kum/particlenet/internal/geom"

// Tracker holds the most recent pointer coordinates. It starts at (0, 0)
// and every Move overwrites both components at once.
type Tracker struct {
	pos   geom.Vec2
	moves int
}

func New() *Tracker { return &Tracker{} }

// Move records a pointer event in surface coordinates.
func (t *Tracker) Move(x, y float64) {
	t.pos = geom.V(x, y)
	t.moves++
}

func (t *Tracker) Position() geom.Vec2 { return t.pos }

// Moves returns how many events have been recorded.
func (t *Tracker) Moves() int { return t.moves }
