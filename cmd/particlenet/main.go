package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/particlenet/internal/automation"
	"github.com/san-kum/particlenet/internal/config"
	"github.com/san-kum/particlenet/internal/connect"
	"github.com/san-kum/particlenet/internal/field"
	"github.com/san-kum/particlenet/internal/gui"
	"github.com/san-kum/particlenet/internal/remote"
	"github.com/san-kum/particlenet/internal/surface"
	"github.com/san-kum/particlenet/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string

	particles int
	distance  float64
	radius    float64
	width     int
	height    int
	fps       int
	seed      int64
	strategy  string
	accent    string

	scale        float64
	addr         string
	scenarioName string
	scenarioFile string
	numRuns      int
	ticks        int
	every        int
	outFile      string
	pngFile      string
	paramRanges  []string
	metricName   string
	maximize     bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "particlenet",
		Short:        "interactive particle network",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".particlenet", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	pf.Float64Var(&distance, "distance", connect.DefaultDistance, "connection distance in pixels")
	pf.Float64Var(&radius, "mouse-radius", field.MouseInfluenceRadius, "pointer influence radius in pixels")
	pf.IntVar(&width, "width", config.DefaultWidth, "surface width")
	pf.IntVar(&height, "height", config.DefaultHeight, "surface height")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate cap (0 = uncapped)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = clock)")
	pf.StringVar(&strategy, "strategy", config.DefaultStrategy, "connection strategy (naive, grid, parallel)")
	pf.StringVar(&accent, "accent", surface.Accent.Hex(), "particle and line colour")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().Float64Var(&scale, "scale", viz.DefaultScale, "pixels per braille dot")
	rootCmd.Flags().Float64Var(&scale, "scale", viz.DefaultScale, "pixels per braille dot")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a desktop window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the network to browsers over a websocket",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return remote.NewServer(cfg).ListenAndServe(ctx, addr)
		},
	}
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "render a scenario headlessly to an animated GIF",
		RunE:  recordGIF,
	}
	recordCmd.Flags().StringVar(&scenarioName, "scenario", "sweep", "built-in scenario")
	recordCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file (yaml)")
	recordCmd.Flags().IntVar(&every, "every", 2, "capture one frame in every n")
	recordCmd.Flags().StringVarP(&outFile, "out", "o", "particlenet.gif", "output file")
	recordCmd.Flags().StringVar(&pngFile, "png", "", "also write the last frame as PNG")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render a single frame as SVG",
		RunE:  renderSVG,
	}
	svgCmd.Flags().IntVar(&ticks, "ticks", 60, "frames to run before capturing")
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "particlenet.svg", "output file")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play a scenario headlessly and store its metrics",
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&scenarioName, "scenario", "sweep", "built-in scenario")
	runCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file (yaml)")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the connection count",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search parameters against a metric",
		RunE:  sweepParams,
	}
	sweepCmd.Flags().StringVar(&scenarioName, "scenario", "sweep", "built-in scenario")
	sweepCmd.Flags().StringVar(&scenarioFile, "scenario-file", "", "scenario file (yaml)")
	sweepCmd.Flags().StringArrayVar(&paramRanges, "param", nil, "parameter range, name=a,b,c or name=lo:hi:step (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "frame_time_ms", "metric to rank by")
	sweepCmd.Flags().BoolVar(&maximize, "max", false, "rank highest value first")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark connection strategies",
		RunE:  benchStrategies,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-8s %4d particles  %5.0fpx links  %5.0fpx pointer  %s\n",
					name, p.Particles, p.ConnectionDistance, p.MouseRadius, p.Strategy)
			}
			fmt.Println("\nscenarios:")
			for _, name := range automation.BuiltinNames() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, serveCmd, recordCmd, svgCmd, runCmd, listCmd, plotCmd, analyzeCmd, sweepCmd, exportJSONCmd, benchCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers the preset, the config file and any flags set on the
// command line, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("particles") {
		cfg.Particles = particles
	}
	if flags.Changed("distance") {
		cfg.ConnectionDistance = distance
	}
	if flags.Changed("mouse-radius") {
		cfg.MouseRadius = radius
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("strategy") {
		cfg.Strategy = strategy
	}
	if flags.Changed("accent") {
		cfg.Accent = accent
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var reloads chan viz.ReloadMsg
	if configFile != "" {
		reloads = make(chan viz.ReloadMsg, 1)
		go func() {
			err := config.Watch(ctx, configFile, config.DefaultDebounce, func(c *config.Config, err error) {
				if c != nil {
					applyFlags(cmd, c)
					err = c.Validate()
				}
				select {
				case reloads <- viz.ReloadMsg{Config: c, Err: err}:
				case <-ctx.Done():
				}
			})
			if err != nil && ctx.Err() == nil {
				select {
				case reloads <- viz.ReloadMsg{Err: err}:
				case <-ctx.Done():
				}
			}
		}()
	}

	p := tea.NewProgram(viz.NewModel(cfg, scale, reloads), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}
