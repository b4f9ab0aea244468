package sim

import (
	"context"
	"errors"
	"time"

	"github.com/san-kum/particlenet/internal/automation"
	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/loop"
	"github.com/san-kum/particlenet/internal/metrics"
	"github.com/san-kum/particlenet/internal/scene"
	"github.com/san-kum/particlenet/internal/surface"
)

var ErrStalled = errors.New("loop did not run a frame")

// Runner plays scenarios against a headless scene.
type Runner struct {
	cfg       *config.Config
	metrics   []metrics.Metric
	observers []loop.Observer
	surface   surface.Surface
	samples   bool
}

func New(cfg *config.Config) *Runner {
	return &Runner{
		cfg:       cfg,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]loop.Observer, 0),
		samples:   true,
	}
}

func (r *Runner) AddMetric(m metrics.Metric)  { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o loop.Observer) { r.observers = append(r.observers, o) }
func (r *Runner) KeepSamples(keep bool)       { r.samples = keep }

// UseSurface draws frames onto s instead of a discarded command list.
func (r *Runner) UseSurface(s surface.Surface) { r.surface = s }

func (r *Runner) Run(ctx context.Context, sc *automation.Scenario) (*Result, error) {
	s := r.surface
	if s == nil {
		s = surface.NewCommandList()
	}
	sched := loop.NewManualScheduler()
	scn, err := scene.New(r.cfg, s, nil, sched)
	if err != nil {
		return nil, err
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	result := &Result{
		Scenario: sc.Name,
		Seed:     scn.Seed,
		Metrics:  make(map[string]float64),
	}
	if r.samples {
		result.Samples = make([]Sample, 0, sc.Frames())
	}

	scn.Loop.AddObserver(loop.ObserverFunc(func(fs loop.FrameStats) {
		for _, m := range r.metrics {
			m.Observe(fs)
		}
		if r.samples {
			result.Samples = append(result.Samples, SampleOf(fs))
		}
	}))
	for _, o := range r.observers {
		scn.Loop.AddObserver(o)
	}

	start := time.Now()
	scn.Loop.Start()
	err = automation.Play(ctx, sc, &target{scene: scn, sched: sched})
	scn.Loop.Stop()

	result.Frames = scn.Loop.Frame()
	result.Elapsed = time.Since(start)
	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
	return result, err
}

// target adapts a scene to automation.Target. Each Tick drains one frame
// from the scheduler and checks every particle is still finite.
type target struct {
	scene *scene.Scene
	sched *loop.ManualScheduler
}

func (t *target) MovePointer(x, y float64) { t.scene.Tracker.Move(x, y) }
func (t *target) Resize(w, h int)          { t.scene.Manager.OnResize(w, h) }

func (t *target) Tick() error {
	if t.sched.RunPending() != 1 {
		return &SimError{Frame: t.scene.Loop.Frame(), Err: ErrStalled}
	}
	if err := t.scene.Field.Validate(); err != nil {
		return &SimError{Frame: t.scene.Loop.Frame(), Err: err}
	}
	return nil
}
