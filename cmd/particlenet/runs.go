package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlenet/internal/analysis"
	"github.com/san-kum/particlenet/internal/automation"
	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/export"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/geom"
	"github.com/san-kum/particlenet/internal/metrics"
	"github.com/san-kum/particlenet/internal/optim"
	"github.com/san-kum/particlenet/internal/raster"
	"github.com/san-kum/particlenet/internal/sim"
	"github.com/san-kum/particlenet/internal/storage"
	"github.com/san-kum/particlenet/internal/surface"
)

func loadScenario(cfg *config.Config) (*automation.Scenario, error) {
	if scenarioFile != "" {
		return automation.LoadScenario(scenarioFile)
	}
	return automation.Builtin(scenarioName, cfg.Width, cfg.Height)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	if numRuns > 1 {
		return runEnsemble(cfg, sc, st)
	}

	r := sim.New(cfg)
	for _, m := range metrics.All() {
		r.AddMetric(m)
	}

	fmt.Printf("running scenario %s (%d frames)...\n", sc.Name, sc.Frames())
	result, err := r.Run(context.Background(), sc)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("seed: %d\n", result.Seed)
	fmt.Printf("frames: %d\n", result.Frames)
	printMetrics("metrics", result.Metrics)
	return nil
}

func runEnsemble(cfg *config.Config, sc *automation.Scenario, st *storage.Store) error {
	start := cfg.Seed
	if start == 0 {
		start = time.Now().UnixNano()
	}

	fmt.Printf("running scenario %s over %d seeds...\n", sc.Name, numRuns)
	results, err := sim.NewEnsemble(cfg, numRuns, start, metrics.Names()...).Run(context.Background(), sc)
	if err != nil {
		return err
	}

	mean := make(map[string]float64)
	for _, res := range results {
		runCfg := cfg.Clone()
		runCfg.Seed = res.Seed
		runID, err := st.Save(runCfg, res)
		if err != nil {
			return err
		}
		fmt.Printf("  seed %d -> %s\n", res.Seed, runID)
		for name, v := range res.Metrics {
			mean[name] += v / float64(len(results))
		}
	}
	printMetrics(fmt.Sprintf("mean over %d runs", len(results)), mean)
	return nil
}

func printMetrics(title string, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Printf("\n%s:\n", title)
	for _, name := range names {
		fmt.Printf("  %s: %.4f\n", name, values[name])
	}
}

func recordGIF(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}
	col, err := cfg.Color()
	if err != nil {
		return err
	}

	img := raster.New(cfg.Width, cfg.Height, surface.Background)
	rec := raster.NewRecorder(img, raster.Palette(surface.Background, col), every, cfg.FPS)

	r := sim.New(cfg)
	r.KeepSamples(false)
	r.UseSurface(img)
	r.AddObserver(rec)

	fmt.Printf("recording scenario %s (%d frames)...\n", sc.Name, sc.Frames())
	if _, err := r.Run(context.Background(), sc); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := rec.WriteGIF(f); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s\n", rec.Frames(), outFile)

	if pngFile != "" {
		pf, err := os.Create(pngFile)
		if err != nil {
			return err
		}
		defer pf.Close()
		if err := raster.WritePNG(pf, img); err != nil {
			return err
		}
		fmt.Printf("wrote last frame to %s\n", pngFile)
	}
	return nil
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	svg := export.NewSVG(cfg.Width, cfg.Height, surface.Background)
	r := sim.New(cfg)
	r.KeepSamples(false)
	r.UseSurface(svg)

	sc := &automation.Scenario{
		Name:  "svg",
		Steps: []automation.Step{{Action: automation.ActionTick, Ticks: ticks}},
	}
	if _, err := r.Run(context.Background(), sc); err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := svg.WriteTo(f); err != nil {
		return err
	}
	fmt.Printf("exported frame %d to %s\n", ticks, outFile)
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tSEED\tLINKS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Seed,
			run.Metrics["connections"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"connections per frame", func(s sim.Sample) float64 { return float64(s.Links) }},
		{"particles under pointer", func(s sim.Sample) float64 { return float64(s.Repelled) }},
		{"mean displacement (px)", func(s sim.Sample) float64 { return s.Displacement }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(samples) < 2 {
		return fmt.Errorf("no data")
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	links := make([]float64, len(samples))
	for i, s := range samples {
		links[i] = float64(s.Links)
	}

	sum := analysis.Summarize(links)
	fmt.Printf("links: mean %.1f  stddev %.1f  min %.0f  max %.0f\n\n", sum.Mean, sum.StdDev, sum.Min, sum.Max)

	ps := analysis.PowerSpectrum(links)
	plotData := ps
	if len(ps) >= 8 {
		plotData = ps[:len(ps)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (links)"),
	)
	fmt.Println(graph)
	fmt.Println()

	peak, ok := analysis.Dominant(ps, len(links))
	if !ok {
		fmt.Println("no periodic component")
		return nil
	}
	fmt.Printf("dominant period: %.1f frames\n", peak.Period)
	if meta.Config != nil && meta.Config.FPS > 0 {
		fmt.Printf("at %d fps: %.3f s\n", meta.Config.FPS, peak.Period/float64(meta.Config.FPS))
	}
	return nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	if len(paramRanges) == 0 {
		return fmt.Errorf("at least one --param is required (available: %v)", optim.ParamNames())
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(cfg)
	if err != nil {
		return err
	}

	names := make([]string, 0, len(paramRanges))
	ranges := make([][]float64, 0, len(paramRanges))
	for _, spec := range paramRanges {
		name, values, err := optim.ParseRange(spec)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}

	fmt.Printf("sweeping %v over scenario %s...\n\n", names, sc.Name)
	points, err := optim.NewGridSearch(names, ranges).Search(context.Background(), cfg, sc, metricName)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(metricName))
	for _, p := range points {
		cols := make([]string, len(names))
		for i, n := range names {
			cols[i] = fmt.Sprintf("%g", p.Params[n])
		}
		val := fmt.Sprintf("%.4f", p.Value)
		if p.Err != nil {
			val = "error: " + p.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(cols, "\t"), val)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := optim.Best(points, maximize); ok {
		fmt.Printf("\nbest: %v -> %.4f\n", best.Params, best.Value)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outFile == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	if err := st.ExportJSONFile(outFile, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outFile)
	return nil
}

func benchStrategies(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	params, err := cfg.FieldParams()
	if err != nil {
		return err
	}

	const frames = 200
	counts := []int{200, 1000, 2000}
	b := geom.Bounds{W: float64(cfg.Width), H: float64(cfg.Height)}

	fmt.Printf("benchmarking connection strategies at %.0fpx\n\n", cfg.ConnectionDistance)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STRATEGY\tPARTICLES\tLINKS\tTIME/FRAME\tFRAMES/SEC")

	for _, name := range connect.Names() {
		strat, err := connect.NewStrategy(name)
		if err != nil {
			return err
		}
		for _, n := range counts {
			f, err := field.New(n, b, params, rand.New(rand.NewSource(42)))
			if err != nil {
				return err
			}

			var links []connect.Link
			start := time.Now()
			for i := 0; i < frames; i++ {
				links = strat.Pairs(f.Particles(), cfg.ConnectionDistance, links[:0])
			}
			per := time.Since(start) / frames

			fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%.0f\n",
				name, n, len(links), per, float64(time.Second)/float64(per))
		}
	}

	return w.Flush()
}
