// Package scene assembles a runnable particle network from a config: the
// field, pointer tracker, surface manager, connection renderer and loop.
package scene

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/pointer"
	"github.com/san-kum/particlenet/internal/surface"
)

type Scene struct {
	Config   *config.Config
	Field    *field.Field
	Tracker  *pointer.Tracker
	Manager  *surface.Manager
	Renderer *connect.Renderer
	Loop     *loop.Loop
	Seed     int64
}

// New builds a stopped scene drawing onto s. Particles are scattered over the
// viewport, or over the configured size while the viewport is still empty.
// A zero seed picks one from the clock; the chosen seed is kept on the scene.
func New(cfg *config.Config, s surface.Surface, v surface.Viewport, sched loop.Scheduler) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if v == nil {
		v = surface.FixedViewport{W: cfg.Width, H: cfg.Height}
	}

	params, err := cfg.FieldParams()
	if err != nil {
		return nil, err
	}
	renderer, err := NewRenderer(cfg)
	if err != nil {
		return nil, err
	}

	m := surface.NewManager(v, s)
	b := m.Bounds()
	if !b.Valid() {
		b = cfg.Bounds()
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	f, err := field.New(cfg.Particles, b, params, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, fmt.Errorf("build field: %w", err)
	}

	tr := pointer.New()

	return &Scene{
		Config:   cfg,
		Field:    f,
		Tracker:  tr,
		Manager:  m,
		Renderer: renderer,
		Loop:     loop.New(f, tr, m, renderer, sched),
		Seed:     seed,
	}, nil
}

func NewRenderer(cfg *config.Config) (*connect.Renderer, error) {
	strategy, err := connect.NewStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}
	col, err := cfg.Color()
	if err != nil {
		return nil, err
	}
	return connect.NewRenderer(strategy, cfg.ConnectionDistance, col, cfg.LineWidth), nil
}
