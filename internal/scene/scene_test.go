package scene

import (
	"errors"
	"testing"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/surface"
)

func TestNewFromDefaults(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 7
	cl := surface.NewCommandList()
	sched := loop.NewManualScheduler()

	sc, err := New(cfg, cl, nil, sched)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sc.Field.Len() != 200 {
		t.Errorf("expected 200 particles, got %d", sc.Field.Len())
	}
	if w, h := cl.Size(); w != 800 || h != 600 {
		t.Errorf("surface not sized to config: %dx%d", w, h)
	}
	if sc.Renderer.Strategy().Name() != "naive" || sc.Renderer.Distance() != 120 {
		t.Errorf("unexpected renderer %s/%g", sc.Renderer.Strategy().Name(), sc.Renderer.Distance())
	}

	sc.Loop.Start()
	sched.RunPending()
	if len(cl.Circles) != 200 {
		t.Errorf("expected 200 circles, got %d", len(cl.Circles))
	}
}

func TestNewPointerStartsAtOrigin(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	sched := loop.NewManualScheduler()

	sc, err := New(cfg, surface.NewCommandList(), nil, sched)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p := sc.Tracker.Position(); p != (geom.Vec2{}) {
		t.Errorf("pointer should start at the origin, got %+v", p)
	}
	if sc.Tracker.Moves() != 0 {
		t.Errorf("no move should be recorded before input, got %d", sc.Tracker.Moves())
	}

	sc.Loop.Start()
	sched.RunPending()
	if got := sc.Loop.Last().Pointer; got != (geom.Vec2{}) {
		t.Errorf("first frame should see the origin pointer, got %+v", got)
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 99

	a, err := New(cfg, surface.NewCommandList(), nil, loop.NewManualScheduler())
	if err != nil {
		t.Fatal(err)
	}
	b, err := New(cfg, surface.NewCommandList(), nil, loop.NewManualScheduler())
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Field.Particles() {
		if a.Field.Particles()[i] != b.Field.Particles()[i] {
			t.Fatalf("particle %d differs between identically seeded scenes", i)
		}
	}
}

func TestZeroSeedIsRecorded(t *testing.T) {
	sc, err := New(config.DefaultConfig(), surface.NewCommandList(), nil, loop.NewManualScheduler())
	if err != nil {
		t.Fatal(err)
	}
	if sc.Seed == 0 {
		t.Error("expected a generated seed")
	}
}

func TestViewportWins(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 1
	sc, err := New(cfg, surface.NewCommandList(), surface.FixedViewport{W: 100, H: 50}, loop.NewManualScheduler())
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range sc.Field.Particles() {
		if p.Pos.X > 100 || p.Pos.Y > 50 {
			t.Fatalf("particle spawned outside viewport: %+v", p.Pos)
		}
	}
}

func TestEmptyViewportFallsBackToConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Seed = 3
	sc, err := New(cfg, surface.NewCommandList(), surface.FixedViewport{}, loop.NewManualScheduler())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if sc.Field.Len() != cfg.Particles {
		t.Errorf("expected %d particles, got %d", cfg.Particles, sc.Field.Len())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Strategy = "bogus"
	_, err := New(cfg, surface.NewCommandList(), nil, loop.NewManualScheduler())
	if !errors.Is(err, config.ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}
