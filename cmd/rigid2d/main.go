package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigid2d/internal/analysis"
	"github.com/san-kum/rigid2d/internal/automation"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/export"
	"github.com/san-kum/rigid2d/internal/gui"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/scenario"
	"github.com/san-kum/rigid2d/internal/storage"
	"github.com/san-kum/rigid2d/internal/vmath"
	"github.com/san-kum/rigid2d/internal/viz"
	"github.com/san-kum/rigid2d/internal/world"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	debug   bool
	logFile *os.File

	configFile  string
	dt          float64
	iterations  int
	ticks       int
	seed        int64
	solver      string
	gravity     float64
	spawn       bool
	recordEvery int

	bodyID   int
	outPath  string
	minSpeed float64
	fromName string

	runs       int
	workers    int
	param      string
	paramMin   float64
	paramMax   float64
	steps      int
	grids      []string
	metricName string
	maximize   bool
	svgWidth   int
	svgHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigid2d",
		Short: "2d rigid body physics sandbox",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logFile = setupLogging(debug)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logFile != nil {
				logFile.Close()
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// no subcommand opens the terminal preset menu
			return viz.RunInteractive()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigid2d", "data directory")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "write diagnostics to logs/rigid2d.log")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a scenario headless and store the trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addOverrideFlags(runCmd)
	runCmd.Flags().IntVar(&recordEvery, "record-every", 1, "keep one frame every n ticks")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyID, "body", 1, "body id")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the body trace as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export metadata and frames as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce and frequency analysis of a body",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyID, "body", 1, "body id")
	analyzeCmd.Flags().Float64Var(&minSpeed, "min-speed", 0.1, "ignore impacts slower than this")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark world stepping",
		RunE:  benchWorld,
	}
	benchCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "sub-steps per tick")
	benchCmd.Flags().IntVar(&ticks, "ticks", 300, "ticks per case")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a scenario in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addOverrideFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [preset]",
		Short: "run a scenario in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return gui.Run(cfg)
		},
	}
	addOverrideFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tTICKS\tGRAVITY\tSPAWNER")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%.2f\t%v\n", name, len(cfg.Bodies), cfg.Ticks, cfg.Gravity.Y, cfg.Spawner.Enabled)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write a scenario file to edit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetPreset(fromName)
			if cfg == nil {
				return fmt.Errorf("unknown preset: %s (available: %v)", fromName, config.ListPresets())
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	initCmd.Flags().StringVar(&fromName, "preset", "drop", "preset to start from")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run and store every scenario in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "vary one parameter and compare metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addOverrideFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&param, "param", "restitution", "parameter: "+strings.Join(automation.Params, ", "))
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 5, "number of values")

	searchCmd := &cobra.Command{
		Use:   "search [preset]",
		Short: "grid search parameters for the best metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSearch,
	}
	addOverrideFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&grids, "grid", nil, "name=v1,v2,... (repeatable)")
	searchCmd.Flags().StringVar(&metricName, "metric", "step_ms", "metric to optimize")
	searchCmd.Flags().BoolVar(&maximize, "maximize", false, "maximize instead of minimize")

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [preset]",
		Short: "run a scenario under many spawner seeds concurrently",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runEnsemble,
	}
	addOverrideFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = all)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [preset]",
		Short: "step a scenario and draw it as SVG",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSnapshot,
	}
	addOverrideFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	snapshotCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	snapshotCmd.Flags().IntVar(&svgHeight, "height", 500, "image height")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "draw a body's stored trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().IntVar(&bodyID, "body", 1, "body id")
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 500, "image height")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, analyzeCmd, benchCmd, liveCmd, guiCmd, presetsCmd, initCmd,
		batchCmd, sweepCmd, searchCmd, ensembleCmd, snapshotCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addOverrideFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "scenario file (yaml)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "seconds per tick")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "sub-steps per tick")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "ticks to run")
	cmd.Flags().Int64Var(&seed, "seed", 1, "spawner seed")
	cmd.Flags().StringVar(&solver, "solver", "", "rotation-friction, rotation or basic")
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravityY, "vertical gravity")
	cmd.Flags().BoolVar(&spawn, "spawn", false, "enable the spawner")
}

// loadConfig resolves the scenario from --config, a preset argument or the
// default, then applies only the flags the user set.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	case len(args) > 0:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", args[0], config.ListPresets())
		}
	default:
		cfg = config.DefaultConfig()
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("solver") {
		cfg.Solver = solver
	}
	if flags.Changed("gravity") {
		cfg.Gravity.Y = gravity
	}
	if flags.Changed("spawn") {
		cfg.Spawner.Enabled = spawn
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runner := scenario.NewRunner()
	runner.RecordEvery = recordEvery
	for _, m := range metrics.Defaults() {
		runner.AddMetric(m)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s scenario...\n", cfg.Name)
	start := time.Now()

	result, err := runner.Run(ctx, cfg)
	interrupted := errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}

	if interrupted {
		fmt.Println("interrupted, partial run saved")
	}
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Printf("bodies: %d (spawned %d, removed %d)\n", result.FinalBodies, result.Spawned, result.Removed)
	fmt.Printf("step time: mean %v, max %v\n", result.MeanStep, result.MaxStep)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tSTEPS\tDT\tITER\tSOLVER")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Iterations,
			run.Solver,
		)
	}

	return w.Flush()
}

// loadTrack reads the stored trace of one body.
func loadTrack(runID string, id int) (*storage.RunMetadata, []float64, []scenario.BodyState, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	rows, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, nil, err
	}

	result := &scenario.Result{Frames: storage.Frames(rows)}
	times, states := result.Track(id)
	if len(states) == 0 {
		return nil, nil, nil, fmt.Errorf("body %d not found in run %s", id, runID)
	}
	return meta, times, states, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, _, states, err := loadTrack(args[0], bodyID)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("body: %d (%s)\n", bodyID, states[0].Shape)
	fmt.Printf("samples: %d\n\n", len(states))

	series := []struct {
		caption string
		value   func(scenario.BodyState) float64
	}{
		{"x", func(s scenario.BodyState) float64 { return s.X }},
		{"y", func(s scenario.BodyState) float64 { return s.Y }},
		{"angle", func(s scenario.BodyState) float64 { return s.Angle }},
		{"vy", func(s scenario.BodyState) float64 { return s.VY }},
	}

	for _, s := range series {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = s.value(states[i])
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(s.caption+" vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

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

// output opens --out, or stdout when it is empty.
func output() (io.WriteCloser, error) {
	if outPath == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(outPath)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func exportCSV(cmd *cobra.Command, args []string) error {
	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := storage.New(dataDir).ExportCSV(w, args[0]); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("exported to %s\n", outPath)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := storage.New(dataDir).ExportJSON(w, args[0]); err != nil {
		return err
	}
	if outPath != "" {
		fmt.Printf("exported to %s\n", outPath)
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, times, states, err := loadTrack(args[0], bodyID)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s, body %d\n\n", meta.Scenario, bodyID)

	heights := make([]float64, len(states))
	vys := make([]float64, len(states))
	for i, s := range states {
		heights[i], vys[i] = s.Y, s.VY
	}

	// recorded frames are evenly spaced, so the rate follows from the ends
	rate := 0.0
	if n := len(times); n > 1 && times[n-1] > times[0] {
		rate = float64(n-1) / (times[n-1] - times[0])
	}

	if rate > 0 && len(heights) > 2 {
		ps := analysis.PowerSpectrum(heights)
		plotData := ps[:len(ps)/4+1]
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (y)"),
		)
		fmt.Println(graph)
		fmt.Println()

		freq, _ := analysis.DominantFrequency(heights, rate)
		fmt.Printf("dominant frequency: %.3f hz\n", freq)
		if freq > 0 {
			fmt.Printf("period: %.3f s\n", 1.0/freq)
		}
	}

	bounces := analysis.DetectBounces(times, vys, minSpeed)
	fmt.Printf("\nbounces: %d\n", len(bounces))
	if len(bounces) > 0 {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tIMPACT\tREBOUND\tRATIO")
		for _, b := range bounces {
			fmt.Fprintf(w, "%.3fs\t%.3f\t%.3f\t%.3f\n", b.Time, b.ImpactSpeed, b.ReboundSpeed, b.Ratio())
		}
		w.Flush()
	}

	fmt.Println("\nphase portrait (y, vy):")
	fmt.Println(analysis.PhasePortraitToASCII(analysis.NewPhasePortrait(heights, vys), 60, 20))
	return nil
}

// benchConfig is a ground slab with n bodies dropped in a grid above it.
func benchConfig(n int) *config.Config {
	cfg := config.DefaultConfig()
	cfg.Name = fmt.Sprintf("bench-%d", n)
	cfg.Iterations = iterations
	cfg.Ticks = ticks
	cfg.Bodies = cfg.Bodies[:1]
	cfg.Bodies[0].Width = 200

	cols := 20
	for i := 0; i < n; i++ {
		pos := config.Vec{X: float64(i%cols)*3 - 30, Y: 2 + float64(i/cols)*3}
		bc := config.BodyConfig{Shape: "box", Width: 2, Height: 2, Density: 1, Restitution: 0.5, Position: pos}
		if i%2 == 1 {
			bc = config.BodyConfig{Shape: "circle", Radius: 1, Density: 1, Restitution: 0.5, Position: pos}
		}
		cfg.Bodies = append(cfg.Bodies, bc)
	}
	return cfg
}

func benchWorld(cmd *cobra.Command, args []string) error {
	counts := []int{10, 50, 100, 200}
	modes := []world.SolverMode{world.SolverRotationFriction, world.SolverRotation, world.SolverBasic}

	fmt.Printf("benchmarking %d ticks at %d iterations\n\n", ticks, iterations)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tSOLVER\tTICKS\tTIME\tMS/TICK\tTICKS/SEC")

	for _, n := range counts {
		for _, mode := range modes {
			cfg := benchConfig(n)
			cfg.Solver = mode.String()
			if err := cfg.Validate(); err != nil {
				return err
			}

			wd, err := scenario.Build(cfg)
			if err != nil {
				return err
			}

			start := time.Now()
			for i := 0; i < cfg.Ticks; i++ {
				wd.Step(cfg.Dt, cfg.Iterations)
			}
			elapsed := time.Since(start)

			msPerTick := float64(elapsed) / float64(time.Millisecond) / float64(cfg.Ticks)
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.3f\t%.0f\n",
				n, mode, cfg.Ticks, elapsed, msPerTick, float64(cfg.Ticks)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg)
}

func runBatch(cmd *cobra.Command, args []string) error {
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	fmt.Printf("batch %s: %d runs\n", b.Name, len(b.Runs))
	results, err := automation.RunBatch(cmd.Context(), b, st)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSCENARIO\tSTEPS\tBODIES\tMEAN STEP")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\n", r.RunID, r.Scenario, r.Result.StepsTaken, r.Result.FinalBodies, r.Result.MeanStep)
	}
	w.Flush()
	return err
}

// sortedMetrics returns metric names in a stable column order.
func sortedMetrics(m map[string]float64) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := automation.ParameterSweep{Param: param, Min: paramMin, Max: paramMax, Steps: steps}
	fmt.Printf("sweeping %s over %v on %s\n\n", param, sweep.Values(), cfg.Name)

	results, err := automation.RunSweep(cmd.Context(), cfg, sweep)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	names := sortedMetrics(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(param), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.Value)
		for _, n := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[n])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

// parseGrid splits "name=v1,v2" flags into names and value lists.
func parseGrid(args []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(args))
	ranges := make([][]float64, 0, len(args))
	for _, arg := range args {
		name, list, ok := strings.Cut(arg, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("grid %q: want name=v1,v2", arg)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("grid %q: %w", arg, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	if len(grids) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names, ranges, err := parseGrid(grids)
	if err != nil {
		return err
	}

	params, best, err := automation.NewGridSearch(names, ranges).Search(cmd.Context(), cfg, metricName, maximize)
	if err != nil {
		return err
	}

	goal := "min"
	if maximize {
		goal = "max"
	}
	fmt.Printf("%s %s: %.6f\n", goal, metricName, best)
	for _, n := range names {
		fmt.Printf("  %s = %g\n", n, params[n])
	}
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	if runs < 1 {
		return fmt.Errorf("--runs must be at least 1")
	}

	e := automation.Ensemble{Runs: runs, SeedStart: cfg.Seed, Workers: workers}
	fmt.Printf("running %s with %d seeds from %d...\n\n", cfg.Name, runs, cfg.Seed)

	start := time.Now()
	results, err := e.Run(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	names := sortedMetrics(results[0].Metrics)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTDDEV\tMIN\tMAX")
	for _, n := range names {
		s := automation.Summarize(results, n)
		fmt.Fprintf(w, "%s\t%.4f\t%.4f\t%.4f\t%.4f\n", n, s.Mean, s.StdDev, s.Min, s.Max)
	}
	w.Flush()

	fmt.Printf("\ncompleted in %v\n", time.Since(start))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}

	scene, err := scenario.NewScene(cfg)
	if err != nil {
		return err
	}
	for i := 0; i < cfg.Ticks; i++ {
		scene.Step()
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.WriteString(w, export.SceneToSVG(scene.World.Bodies(), cfg.View, svgWidth, svgHeight))
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	_, _, states, err := loadTrack(args[0], bodyID)
	if err != nil {
		return err
	}

	points := make([]vmath.Vector, len(states))
	for i, s := range states {
		points[i] = vmath.New(s.X, s.Y)
	}

	svg := export.TrajectoryToSVG(points, svgWidth, svgHeight, "#8ecdf7")
	if svg == "" {
		return fmt.Errorf("body %d has fewer than two samples", bodyID)
	}

	w, err := output()
	if err != nil {
		return err
	}
	defer w.Close()

	_, err = io.WriteString(w, svg)
	return err
}
