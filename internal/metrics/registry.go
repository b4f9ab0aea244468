package metrics

import (
	"fmt"
	"sort"

	"github.com/san-kum/particlenet/internal/loop"
)

// Metric accumulates a scalar over frames.
type Metric interface {
	Name() string
	Observe(s loop.FrameStats)
	Value() float64
	Reset()
}

var registry = map[string]func() Metric{
	"connections":      func() Metric { return NewConnections() },
	"peak_connections": func() Metric { return NewPeakConnections() },
	"displacement":     func() Metric { return NewDisplacement() },
	"repelled":         func() Metric { return NewRepelled() },
	"frame_time_ms":    func() Metric { return NewFrameTime() },
}

func New(name string) (Metric, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

// All returns one fresh instance of every metric, ordered by name.
func All() []Metric {
	names := Names()
	out := make([]Metric, 0, len(names))
	for _, n := range names {
		out = append(out, registry[n]())
	}
	return out
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
