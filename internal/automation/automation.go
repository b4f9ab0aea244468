package automation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

const (
	ActionMove   = "move"
	ActionResize = "resize"
	ActionTick   = "tick"
	ActionSweep  = "sweep"
	ActionOrbit  = "orbit"
)

var ErrBadStep = errors.New("bad scenario step")

// Scenario is a scripted sequence of pointer moves, resizes and frames.
type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one scripted action. Which fields matter depends on Action:
//
//	move    X, Y
//	resize  W, H
//	tick    Ticks
//	sweep   X, Y -> ToX, ToY over Ticks frames
//	orbit   circle of Radius around X, Y over Ticks frames
type Step struct {
	Action string  `yaml:"action"`
	X      float64 `yaml:"x,omitempty"`
	Y      float64 `yaml:"y,omitempty"`
	ToX    float64 `yaml:"to_x,omitempty"`
	ToY    float64 `yaml:"to_y,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
	W      int     `yaml:"w,omitempty"`
	H      int     `yaml:"h,omitempty"`
	Ticks  int     `yaml:"ticks,omitempty"`
}

// Target is what a scenario drives.
type Target interface {
	MovePointer(x, y float64)
	Resize(w, h int)
	Tick() error
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &scenario, nil
}

func (s *Scenario) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	if len(s.Steps) == 0 {
		return fmt.Errorf("%w: scenario %q has no steps", ErrBadStep, s.Name)
	}
	for i, st := range s.Steps {
		switch st.Action {
		case ActionMove:
		case ActionResize:
			if st.W < 0 || st.H < 0 {
				return fmt.Errorf("%w: step %d: negative size %dx%d", ErrBadStep, i+1, st.W, st.H)
			}
		case ActionTick, ActionSweep, ActionOrbit:
			if st.Ticks <= 0 {
				return fmt.Errorf("%w: step %d: %s needs ticks > 0", ErrBadStep, i+1, st.Action)
			}
		default:
			return fmt.Errorf("%w: step %d: unknown action %q", ErrBadStep, i+1, st.Action)
		}
	}
	return nil
}

// Frames is the number of frames the scenario renders.
func (s *Scenario) Frames() int {
	n := 0
	for _, st := range s.Steps {
		switch st.Action {
		case ActionTick, ActionSweep, ActionOrbit:
			n += st.Ticks
		}
	}
	return n
}

// Play executes the scenario against t, stopping early if ctx is done or a
// frame fails.
func Play(ctx context.Context, s *Scenario, t Target) error {
	if err := s.Validate(); err != nil {
		return err
	}

	for i, st := range s.Steps {
		switch st.Action {
		case ActionMove:
			t.MovePointer(st.X, st.Y)
		case ActionResize:
			t.Resize(st.W, st.H)
		default:
			for k := 0; k < st.Ticks; k++ {
				select {
				case <-ctx.Done():
					return ctx.Err()
				default:
				}

				frac := float64(k+1) / float64(st.Ticks)
				switch st.Action {
				case ActionSweep:
					t.MovePointer(st.X+(st.ToX-st.X)*frac, st.Y+(st.ToY-st.Y)*frac)
				case ActionOrbit:
					a := 2 * math.Pi * frac
					t.MovePointer(st.X+st.Radius*math.Cos(a), st.Y+st.Radius*math.Sin(a))
				}

				if err := t.Tick(); err != nil {
					return fmt.Errorf("step %d frame %d: %w", i+1, k+1, err)
				}
			}
		}
	}
	return nil
}

var builtins = map[string]func(w, h int) *Scenario{
	"idle": func(w, h int) *Scenario {
		return &Scenario{
			Name:        "idle",
			Description: "pointer away, particles drift",
			Steps: []Step{
				{Action: ActionMove, X: -10000, Y: -10000},
				{Action: ActionTick, Ticks: 300},
			},
		}
	},
	"sweep": func(w, h int) *Scenario {
		mid := float64(h) / 2
		return &Scenario{
			Name:        "sweep",
			Description: "pointer crosses the surface left to right, then rests",
			Steps: []Step{
				{Action: ActionSweep, X: 0, Y: mid, ToX: float64(w), ToY: mid, Ticks: 240},
				{Action: ActionMove, X: -10000, Y: -10000},
				{Action: ActionTick, Ticks: 120},
			},
		}
	},
	"orbit": func(w, h int) *Scenario {
		r := math.Min(float64(w), float64(h)) / 3
		return &Scenario{
			Name:        "orbit",
			Description: "pointer circles the centre twice",
			Steps: []Step{
				{Action: ActionOrbit, X: float64(w) / 2, Y: float64(h) / 2, Radius: r, Ticks: 180},
				{Action: ActionOrbit, X: float64(w) / 2, Y: float64(h) / 2, Radius: r, Ticks: 180},
			},
		}
	},
	"resize": func(w, h int) *Scenario {
		return &Scenario{
			Name:        "resize",
			Description: "surface halves mid-run, particles reflect off the new edges",
			Steps: []Step{
				{Action: ActionMove, X: -10000, Y: -10000},
				{Action: ActionTick, Ticks: 60},
				{Action: ActionResize, W: w / 2, H: h / 2},
				{Action: ActionTick, Ticks: 240},
			},
		}
	},
}

// Builtin returns a stock scenario sized for a w x h surface.
func Builtin(name string, w, h int) (*Scenario, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scenario: %s (available: %v)", name, BuiltinNames())
	}
	return fn(w, h), nil
}

func BuiltinNames() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
