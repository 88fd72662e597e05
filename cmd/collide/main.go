package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/collide/internal/analysis"
	"github.com/san-kum/collide/internal/automation"
	"github.com/san-kum/collide/internal/config"
	"github.com/san-kum/collide/internal/dynamo"
	"github.com/san-kum/collide/internal/export"
	"github.com/san-kum/collide/internal/gui"
	"github.com/san-kum/collide/internal/metrics"
	"github.com/san-kum/collide/internal/optim"
	"github.com/san-kum/collide/internal/sim"
	"github.com/san-kum/collide/internal/storage"
	"github.com/san-kum/collide/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFile    string
	dt         float64
	duration   float64
	maxDt      float64
	runName    string
	outFile    string
	trajectory int
	maxPlots   int
	sweepArgs  []string
	metricName string
	trials     int
	perturb    float64
	seed       int64
	saveRuns   bool
	themeName  string
)

// main registers commands and flags; with no subcommand it opens the window
// front end.
func main() {
	rootCmd := &cobra.Command{
		Use:          "collide",
		Short:        "2d elastic collision lab",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".collide", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	pf.Float64Var(&maxDt, "max-dt", config.DefaultMaxDt, "largest step the physics accepts")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal front end",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&themeName, "theme", "neon", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().StringVar(&runName, "name", "", "run name (defaults to the preset or config file name)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot kinetic energy and particle positions",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&maxPlots, "max", 4, "most particles to plot")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce frequency and collision analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "write the final frame (or one trajectory) as svg",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default <run_id>.svg)")
	snapshotCmd.Flags().IntVar(&trajectory, "trajectory", -1, "draw the path of this particle instead of the final frame")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [preset]...",
		Short: "run several presets side by side",
		Args:  cobra.MinimumNArgs(1),
		RunE:  comparePresets,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tPARTICLES\tWORLD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%.0fx%.0f\n", name, len(p.Particles), p.World.Width, p.World.Height)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the active configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "grid search config parameters to minimize a metric",
		Args:  cobra.NoArgs,
		RunE:  sweepParams,
	}
	sweepCmd.Flags().StringArrayVar(&sweepArgs, "param", nil, "name=values, values as a,b,c or lo:hi:n (repeatable)")
	sweepCmd.Flags().StringVar(&metricName, "metric", "max_penetration", "metric to minimize")
	sweepCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of simulations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&saveRuns, "save", true, "store every step as a run")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "rerun a configuration with perturbed velocities",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	monteCarloCmd.Flags().IntVar(&trials, "trials", 50, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturb, "perturb", 20, "largest velocity perturbation per component")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 uses the clock)")
	monteCarloCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	monteCarloCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")

	rootCmd.AddCommand(tuiCmd, runCmd, listCmd, plotCmd, analyzeCmd, snapshotCmd, exportCmd, compareCmd, presetsCmd, initCmd, sweepCmd, scenarioCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds the command logger. out is used unless --log-file is set.
func newLogger(out io.Writer) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}
	closer := func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closer = f, func() { f.Close() }
	}
	logger := log.NewWithOptions(out, log.Options{
		Level:           level,
		Prefix:          "collide",
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
	})
	return logger, closer, nil
}

// loadConfig resolves --preset, then --config, then the defaults, and
// applies the step flags on top.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("max-dt") {
		cfg.MaxDt = maxDt
	}
	return cfg, cfg.Validate()
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()
	return gui.Run(cfg, logger)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	// the terminal belongs to the TUI; only --log-file receives logs
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	m, err := viz.NewModel(cfg, logger)
	if err != nil {
		return err
	}
	if !slices.Contains(viz.ThemeNames(), themeName) {
		return fmt.Errorf("unknown theme %q", themeName)
	}
	return viz.Run(m.WithTheme(viz.GetTheme(themeName)))
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Particles) == 0 {
		return fmt.Errorf("nothing to run: use --preset or a config file with particles")
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	world, err := cfg.BuildWorld()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(logger)
	for _, m := range metrics.Defaults(world.Bounds()) {
		s.AddMetric(m)
	}

	name := runName
	switch {
	case name != "":
	case preset != "":
		name = preset
	case configFile != "":
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	default:
		name = "run"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("running", "name", name, "particles", world.Len(), "dt", cfg.Dt, "duration", cfg.Duration)
	start := time.Now()
	result, err := s.Run(ctx, world, sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		if result == nil {
			return err
		}
		logger.Warn("run interrupted, saving partial result", "err", err)
	}
	elapsed := time.Since(start)

	runID, err := st.Save(runSpec(name, cfg), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("collisions: %d\n", result.Collisions)
	fmt.Println("\nmetrics:")
	return printMetrics(result.Metrics)
}

func runSpec(name string, cfg *config.Config) storage.RunSpec {
	spec := storage.RunSpec{
		Name:     name,
		Width:    cfg.World.Width,
		Height:   cfg.World.Height,
		Dt:       cfg.Dt,
		MaxDt:    cfg.MaxDt,
		Duration: cfg.Duration,
	}
	for _, p := range cfg.Particles {
		col := p.Color
		if col == "" {
			col = "#ffffff"
		}
		spec.Particles = append(spec.Particles, storage.ParticleMeta{Mass: p.Mass, Radius: p.Radius, Color: col})
	}
	return spec
}

func printMetrics(values map[string]float64) error {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, values[name])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tPARTICLES\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			len(run.Particles),
			run.Collisions,
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []sim.State, []float64, []int, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	states, times, contacts, err := st.LoadStates(runID)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if len(states) == 0 {
		return nil, nil, nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, states, times, contacts, nil
}

func masses(meta *storage.RunMetadata) []float64 {
	out := make([]float64, len(meta.Particles))
	for i, p := range meta.Particles {
		out[i] = p.Mass
	}
	return out
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	energy := analysis.KineticEnergySeries(states, masses(meta))
	fmt.Println(asciigraph.Plot(energy,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("kinetic energy"),
	))
	fmt.Println()

	n := min(states[0].Len(), maxPlots)
	for i := 0; i < n; i++ {
		graph := asciigraph.Plot(analysis.Column(states, i, analysis.FieldX),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("particle %d x", i)),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, states, times, contacts, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	ps := analysis.PowerSpectrum(analysis.Column(states, 0, analysis.FieldX))
	if len(ps) > 4 {
		fmt.Println(asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (particle 0 x)"),
		))
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLE\tFREQ_X\tPERIOD_X\tFREQ_Y\tPERIOD_Y")
	for i := 0; i < states[0].Len(); i++ {
		fx := analysis.DominantFrequency(analysis.Column(states, i, analysis.FieldX), meta.Dt)
		fy := analysis.DominantFrequency(analysis.Column(states, i, analysis.FieldY), meta.Dt)
		fmt.Fprintf(w, "%d\t%.3f hz\t%s\t%.3f hz\t%s\n", i, fx, period(fx), fy, period(fy))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	hits := analysis.CollisionTimes(times, contacts)
	fmt.Printf("\ncollision frames: %d\n", len(hits))
	if len(hits) > 1 {
		fmt.Printf("first at %.3fs, mean interval %.3fs\n", hits[0], (hits[len(hits)-1]-hits[0])/float64(len(hits)-1))
	} else if len(hits) == 1 {
		fmt.Printf("first at %.3fs\n", hits[0])
	}
	return nil
}

func period(freq float64) string {
	if freq <= 0 {
		return "-"
	}
	return fmt.Sprintf("%.3fs", 1/freq)
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	meta, states, _, _, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var svg string
	if trajectory >= 0 {
		if trajectory >= states[0].Len() {
			return fmt.Errorf("particle %d out of range (run has %d)", trajectory, states[0].Len())
		}
		stroke := "#ffffff"
		if trajectory < len(meta.Particles) {
			stroke = meta.Particles[trajectory].Color
		}
		svg, err = export.TrajectoryToSVG(analysis.Trajectory(states, trajectory), meta.Width, meta.Height, stroke)
		if err != nil {
			return fmt.Errorf("run %s: %w", meta.ID, err)
		}
	} else {
		last := states[len(states)-1]
		disks := make([]export.Disk, last.Len())
		for i := range disks {
			x, y, _, _ := last.Particle(i)
			disks[i] = export.Disk{X: x, Y: y}
			if i < len(meta.Particles) {
				disks[i].Radius = meta.Particles[i].Radius
				disks[i].Color = meta.Particles[i].Color
			}
		}
		svg = export.FrameToSVG(disks, meta.Width, meta.Height)
	}

	path := outFile
	if path == "" {
		path = meta.ID + ".svg"
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func comparePresets(cmd *cobra.Command, args []string) error {
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	jobs := make([]sim.Job, 0, len(args))
	for _, name := range args {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		if cmd.Flags().Changed("dt") {
			cfg.Dt = dt
		}
		if cmd.Flags().Changed("time") {
			cfg.Duration = duration
		}
		if cmd.Flags().Changed("max-dt") {
			cfg.MaxDt = maxDt
		}
		world, err := cfg.BuildWorld()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		jobs = append(jobs, sim.Job{
			Name:   name,
			World:  world,
			Config: sim.Config{Dt: cfg.Dt, Duration: cfg.Duration},
		})
	}

	batch := sim.NewBatch(func() *sim.Simulator {
		s := sim.New(logger)
		s.AddMetric(metrics.NewKineticEnergy())
		s.AddMetric(metrics.NewEnergyDrift())
		s.AddMetric(metrics.NewMomentum())
		s.AddMetric(metrics.NewPenetration())
		return s
	})

	start := time.Now()
	results, err := batch.Run(context.Background(), jobs)
	if err != nil {
		return err
	}

	fmt.Printf("compared %d presets in %v\n\n", len(jobs), time.Since(start))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tSTEPS\tCOLLISIONS\tMEAN_KE\tENERGY_DRIFT\tMOMENTUM\tMAX_OVERLAP")
	for i, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%.2f\t%.2e\t%.2f\t%.3f\n",
			jobs[i].Name,
			jobs[i].World.Len(),
			r.StepsTaken,
			r.Collisions,
			r.Metrics["kinetic_energy"],
			r.Metrics["energy_drift"],
			r.Metrics["momentum"],
			r.Metrics["max_penetration"],
		)
	}
	return w.Flush()
}

func defaultSim(logger *log.Logger) func(dynamo.WorldBounds) *sim.Simulator {
	return func(b dynamo.WorldBounds) *sim.Simulator {
		s := sim.New(logger)
		for _, m := range metrics.Defaults(b) {
			s.AddMetric(m)
		}
		return s
	}
}

func sweepParams(cmd *cobra.Command, args []string) error {
	if len(sweepArgs) == 0 {
		return fmt.Errorf("give at least one --param name=values")
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(cfg.Particles) == 0 {
		return fmt.Errorf("nothing to sweep: use --preset or a config file with particles")
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	names := make([]string, 0, len(sweepArgs))
	ranges := make([][]float64, 0, len(sweepArgs))
	for _, arg := range sweepArgs {
		name, values, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, want name=values", arg)
		}
		r, err := config.ParseRange(values)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, r)
	}

	g, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logger.Info("sweeping", "points", g.Size(), "metric", metricName)
	best, val, results, err := g.Search(ctx, cfg, defaultSim(logger), metricName)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(metricName))
	for _, tr := range results {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		if tr.Err != nil {
			fmt.Fprintf(w, "error: %v\n", tr.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", tr.Value)
	}
	if flushErr := w.Flush(); flushErr != nil {
		return flushErr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s = %.6g at", metricName, val)
	for _, name := range names {
		fmt.Printf(" %s=%g", name, best[name])
	}
	fmt.Println()
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, runErr := automation.RunScenario(ctx, sc, defaultSim(logger), logger)

	st := storage.New(dataDir)
	if saveRuns {
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tNAME\tSTEPS\tCOLLISIONS\tENERGY_DRIFT\tRUN_ID")
	for i, r := range results {
		runID := "-"
		if saveRuns {
			if runID, err = st.Save(runSpec(r.Name, r.Config), r.Result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%.2e\t%s\n", i+1, r.Name, r.Result.StepsTaken, r.Result.Collisions, r.Result.EnergyDrift, runID)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := automation.RunMonteCarlo(ctx, &automation.MonteCarloConfig{
		Base:         cfg,
		Perturbation: perturb,
		NumTrials:    trials,
		Seed:         seed,
	}, logger)
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	collisions, worstDrift, minContain := 0, 0.0, 1.0
	for _, r := range results {
		collisions += r.Collisions
		worstDrift = max(worstDrift, r.EnergyDrift)
		minContain = min(minContain, r.Containment)
	}

	fmt.Printf("trials: %d (stable %d, unstable %d)\n", len(results), stable, unstable)
	fmt.Printf("mean collisions: %.2f\n", float64(collisions)/float64(len(results)))
	fmt.Printf("worst energy drift: %.2e\n", worstDrift)
	fmt.Printf("lowest containment: %.4f\n", minContain)
	return nil
}
