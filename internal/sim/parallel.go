package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/particlenet/internal/automation"
	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/metrics"
)

// Ensemble runs one scenario over consecutive seeds concurrently. Each run
// gets its own scene and its own metric instances.
type Ensemble struct {
	cfg       *config.Config
	metrics   []string
	numRuns   int
	seedStart int64
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, metricNames ...string) *Ensemble {
	return &Ensemble{cfg: cfg, metrics: metricNames, numRuns: numRuns, seedStart: seedStart}
}

func (e *Ensemble) Run(ctx context.Context, sc *automation.Scenario) ([]*Result, error) {
	results := make([]*Result, e.numRuns)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < e.numRuns; i++ {
		i := i
		cfg := e.cfg.Clone()
		cfg.Seed = e.seedStart + int64(i)

		r := New(cfg)
		r.KeepSamples(false)
		for _, name := range e.metrics {
			m, err := metrics.New(name)
			if err != nil {
				return nil, err
			}
			r.AddMetric(m)
		}

		g.Go(func() error {
			res, err := r.Run(ctx, sc)
			results[i] = res
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
