// Package optim sweeps configuration parameters over a scenario and ranks the
// resulting metric values.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/san-kum/particlenet/internal/automation"
	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/metrics"
	"github.com/san-kum/particlenet/internal/sim"
)

var ErrUnknownParam = errors.New("unknown parameter")

var setters = map[string]func(*config.Config, float64){
	"particles":           func(c *config.Config, v float64) { c.Particles = int(v) },
	"connection_distance": func(c *config.Config, v float64) { c.ConnectionDistance = v },
	"mouse_radius":        func(c *config.Config, v float64) { c.MouseRadius = v },
	"relax_divisor":       func(c *config.Config, v float64) { c.RelaxDivisor = v },
	"max_speed":           func(c *config.Config, v float64) { c.MaxSpeed = v },
	"line_width":          func(c *config.Config, v float64) { c.LineWidth = v },
}

func ParamNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Apply sets one named parameter on cfg.
func Apply(cfg *config.Config, name string, v float64) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}
	set(cfg, v)
	return nil
}

// ParseRange reads "name=a,b,c" or "name=lo:hi:step".
func ParseRange(spec string) (string, []float64, error) {
	name, list, ok := strings.Cut(spec, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("bad range %q: want name=a,b,c or name=lo:hi:step", spec)
	}
	if _, ok := setters[name]; !ok {
		return "", nil, fmt.Errorf("%w: %s (available: %v)", ErrUnknownParam, name, ParamNames())
	}

	if parts := strings.Split(list, ":"); len(parts) == 3 {
		var lohi [3]float64
		for i, p := range parts {
			v, err := strconv.ParseFloat(p, 64)
			if err != nil {
				return "", nil, fmt.Errorf("bad range %q: %w", spec, err)
			}
			lohi[i] = v
		}
		lo, hi, step := lohi[0], lohi[1], lohi[2]
		if step <= 0 || hi < lo {
			return "", nil, fmt.Errorf("bad range %q: need lo <= hi and step > 0", spec)
		}
		var values []float64
		for i := 0; ; i++ {
			v := lo + float64(i)*step
			if v > hi+step*1e-9 {
				break
			}
			values = append(values, v)
		}
		return name, values, nil
	}

	var values []float64
	for _, p := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return "", nil, fmt.Errorf("bad range %q: %w", spec, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

// Point is one evaluated combination. Err is set when the combination could
// not be run, e.g. because it fails validation.
type Point struct {
	Params map[string]float64
	Value  float64
	Err    error
}

type GridSearch struct {
	paramNames []string
	ranges     [][]float64
}

func NewGridSearch(params []string, ranges [][]float64) *GridSearch {
	return &GridSearch{paramNames: params, ranges: ranges}
}

// Search plays sc once for every combination of parameter values on top of
// base and records metricName for each.
func (g *GridSearch) Search(ctx context.Context, base *config.Config, sc *automation.Scenario, metricName string) ([]Point, error) {
	if len(g.paramNames) != len(g.ranges) {
		return nil, fmt.Errorf("%d parameters but %d ranges", len(g.paramNames), len(g.ranges))
	}
	if _, err := metrics.New(metricName); err != nil {
		return nil, err
	}

	var points []Point
	err := g.searchRecursive(ctx, 0, make(map[string]float64), base, sc, metricName, &points)
	return points, err
}

func (g *GridSearch) searchRecursive(
	ctx context.Context,
	depth int,
	current map[string]float64,
	base *config.Config,
	sc *automation.Scenario,
	metricName string,
	points *[]Point,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth == len(g.paramNames) {
		p := Point{Params: make(map[string]float64, len(current))}
		for k, v := range current {
			p.Params[k] = v
		}
		p.Value, p.Err = g.evaluate(ctx, base, sc, metricName, p.Params)
		if errors.Is(p.Err, context.Canceled) || errors.Is(p.Err, context.DeadlineExceeded) {
			return p.Err
		}
		*points = append(*points, p)
		return nil
	}

	paramName := g.paramNames[depth]
	for _, val := range g.ranges[depth] {
		current[paramName] = val
		if err := g.searchRecursive(ctx, depth+1, current, base, sc, metricName, points); err != nil {
			return err
		}
	}
	delete(current, paramName)
	return nil
}

func (g *GridSearch) evaluate(ctx context.Context, base *config.Config, sc *automation.Scenario, metricName string, params map[string]float64) (float64, error) {
	cfg := base.Clone()
	for name, v := range params {
		if err := Apply(cfg, name, v); err != nil {
			return 0, err
		}
	}

	m, err := metrics.New(metricName)
	if err != nil {
		return 0, err
	}
	r := sim.New(cfg)
	r.KeepSamples(false)
	r.AddMetric(m)

	result, err := r.Run(ctx, sc)
	if err != nil {
		return 0, err
	}
	return result.Metrics[metricName], nil
}

// Best picks the lowest value, or the highest when maximize is set. Failed
// points are skipped.
func Best(points []Point, maximize bool) (Point, bool) {
	best := Point{Value: math.Inf(1)}
	if maximize {
		best.Value = math.Inf(-1)
	}
	found := false
	for _, p := range points {
		if p.Err != nil {
			continue
		}
		if (maximize && p.Value > best.Value) || (!maximize && p.Value < best.Value) {
			best = p
			found = true
		}
	}
	return best, found
}
