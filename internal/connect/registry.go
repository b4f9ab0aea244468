package connect

import (
	"fmt"
	"sort"
)

var strategies = map[string]func() Strategy{
	"naive":    func() Strategy { return Naive{} },
	"grid":     func() Strategy { return NewGrid() },
	"parallel": func() Strategy { return NewParallel(0) },
}

// NewStrategy looks a strategy up by name.
func NewStrategy(name string) (Strategy, error) {
	fn, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown connection strategy: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
