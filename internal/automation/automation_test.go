package automation

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

type recorder struct {
	moves   [][2]float64
	resizes [][2]int
	ticks   int
	failAt  int
}

func (r *recorder) MovePointer(x, y float64) { r.moves = append(r.moves, [2]float64{x, y}) }
func (r *recorder) Resize(w, h int)          { r.resizes = append(r.resizes, [2]int{w, h}) }
func (r *recorder) Tick() error {
	r.ticks++
	if r.failAt > 0 && r.ticks == r.failAt {
		return errors.New("boom")
	}
	return nil
}

func TestPlay(t *testing.T) {
	sc := &Scenario{
		Name: "mixed",
		Steps: []Step{
			{Action: ActionMove, X: 5, Y: 6},
			{Action: ActionTick, Ticks: 3},
			{Action: ActionResize, W: 40, H: 30},
			{Action: ActionSweep, X: 0, Y: 0, ToX: 100, ToY: 50, Ticks: 4},
		},
	}

	r := &recorder{}
	if err := Play(context.Background(), sc, r); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if r.ticks != 7 || sc.Frames() != 7 {
		t.Errorf("expected 7 frames, got %d (Frames() = %d)", r.ticks, sc.Frames())
	}
	if len(r.resizes) != 1 || r.resizes[0] != [2]int{40, 30} {
		t.Errorf("unexpected resizes %v", r.resizes)
	}
	if len(r.moves) != 5 {
		t.Fatalf("expected 5 pointer moves, got %d", len(r.moves))
	}
	if r.moves[0] != [2]float64{5, 6} {
		t.Errorf("first move = %v", r.moves[0])
	}
	if r.moves[1] != [2]float64{25, 12.5} || r.moves[4] != [2]float64{100, 50} {
		t.Errorf("sweep should interpolate to the end point, got %v", r.moves[1:])
	}
}

func TestPlayOrbitReturnsToStart(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Action: ActionOrbit, X: 50, Y: 50, Radius: 10, Ticks: 8}}}
	r := &recorder{}
	if err := Play(context.Background(), sc, r); err != nil {
		t.Fatal(err)
	}
	last := r.moves[len(r.moves)-1]
	if math.Abs(last[0]-60) > 1e-9 || math.Abs(last[1]-50) > 1e-9 {
		t.Errorf("orbit should end where it began, got %v", last)
	}
}

func TestPlayStopsOnError(t *testing.T) {
	sc := &Scenario{Steps: []Step{{Action: ActionTick, Ticks: 10}}}
	r := &recorder{failAt: 4}
	if err := Play(context.Background(), sc, r); err == nil {
		t.Fatal("expected error")
	}
	if r.ticks != 4 {
		t.Errorf("expected play to stop at frame 4, ran %d", r.ticks)
	}
}

func TestPlayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &recorder{}
	err := Play(ctx, &Scenario{Steps: []Step{{Action: ActionTick, Ticks: 10}}}, r)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
	if r.ticks != 0 {
		t.Errorf("no frames should run, got %d", r.ticks)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		sc   Scenario
	}{
		{"empty", Scenario{}},
		{"unknown action", Scenario{Steps: []Step{{Action: "jump"}}}},
		{"tick without count", Scenario{Steps: []Step{{Action: ActionTick}}}},
		{"negative resize", Scenario{Steps: []Step{{Action: ActionResize, W: -1, H: 10}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.sc.Validate(); !errors.Is(err, ErrBadStep) {
				t.Errorf("expected ErrBadStep, got %v", err)
			}
		})
	}
}

func TestLoadScenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	data := `name: poke
steps:
  - action: move
    x: 10
    y: 20
  - action: tick
    ticks: 5
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	sc, err := LoadScenario(path)
	if err != nil {
		t.Fatalf("LoadScenario: %v", err)
	}
	if sc.Name != "poke" || len(sc.Steps) != 2 || sc.Steps[0].Y != 20 || sc.Frames() != 5 {
		t.Errorf("unexpected scenario %+v", sc)
	}

	out := filepath.Join(t.TempDir(), "out.yaml")
	if err := sc.Save(out); err != nil {
		t.Fatal(err)
	}
	again, err := LoadScenario(out)
	if err != nil || again.Frames() != 5 {
		t.Errorf("reloaded scenario: %+v, %v", again, err)
	}
}

func TestBuiltins(t *testing.T) {
	for _, name := range BuiltinNames() {
		sc, err := Builtin(name, 800, 600)
		if err != nil {
			t.Fatalf("Builtin(%q): %v", name, err)
		}
		if err := sc.Validate(); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
		if sc.Name != name {
			t.Errorf("builtin %q has name %q", name, sc.Name)
		}
	}
	if _, err := Builtin("nope", 1, 1); err == nil {
		t.Error("expected error for unknown builtin")
	}
}
