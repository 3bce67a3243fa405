package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/nbody/internal/config"
	"github.com/san-kum/nbody/internal/metrics"
	"github.com/san-kum/nbody/internal/physics"
	"github.com/san-kum/nbody/internal/sim"
)

var (
	configFile string
	steps      int
	timing     bool
	verbose    bool
	runs       int
	every      int
	height     int
	width      int
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. The root command is the benchmark
// itself and prints nothing on stdout but the two energies.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "nbody [steps]",
		Short:        "n-body gravitational benchmark",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         runSimulation,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", config.DefaultSteps, "integration steps")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.Flags().BoolVar(&timing, "timing", false, "print elapsed microseconds after the energies")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "repeat the simulation and report throughput",
		Args:  cobra.NoArgs,
		RunE:  benchSimulation,
	}
	benchCmd.Flags().IntVar(&runs, "runs", config.DefaultBenchRuns, "number of runs")

	driftCmd := &cobra.Command{
		Use:   "drift",
		Short: "plot relative energy drift over the run",
		Args:  cobra.NoArgs,
		RunE:  plotDrift,
	}
	driftCmd.Flags().IntVar(&every, "every", config.DefaultDriftEvery, "sample interval in steps")
	driftCmd.Flags().IntVar(&height, "height", config.DefaultDriftHeight, "chart height")
	driftCmd.Flags().IntVar(&width, "width", config.DefaultDriftWidth, "chart width")

	writeConfigCmd := &cobra.Command{
		Use:   "write-config <path>",
		Short: "write the effective configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}

	rootCmd.AddCommand(benchCmd, driftCmd, writeConfigCmd)
	return rootCmd
}

// loadConfig merges defaults, the config file and explicitly set flags, in
// that order of precedence. A positional step count beats --steps.
func loadConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("timing") {
		cfg.Timing = timing
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	if flags.Changed("runs") {
		cfg.Bench.Runs = runs
	}
	if flags.Changed("every") {
		cfg.Drift.Every = every
	}
	if flags.Changed("height") {
		cfg.Drift.Height = height
	}
	if flags.Changed("width") {
		cfg.Drift.Width = width
	}

	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return nil, fmt.Errorf("invalid step count %q: %w", args[0], err)
		}
		cfg.Steps = n
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes to stderr only; stdout carries the results.
func newLogger(debug bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	return zcfg.Build()
}

func setup(cmd *cobra.Command, args []string) (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg.Verbose)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to build logger: %w", err)
	}
	if configFile != "" {
		logger.Debug("loaded config", zap.String("path", configFile))
	}
	return cfg, logger, nil
}

// formatEnergy renders the shortest decimal that round-trips e.
func formatEnergy(e float64) string {
	return strconv.FormatFloat(e, 'g', -1, 64)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	result, err := sim.New(logger).Run(physics.JovianSystem(), sim.Config{Steps: cfg.Steps, Dt: physics.Dt})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, formatEnergy(result.InitialEnergy))
	fmt.Fprintln(out, formatEnergy(result.FinalEnergy))
	if cfg.Timing {
		fmt.Fprintf(out, "Took %d\n", result.Elapsed.Microseconds())
	}
	return nil
}

func benchSimulation(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("benchmarking %s: %d steps x %d runs",
		strings.Join(physics.BodyNames(), ", "), cfg.Steps, cfg.Bench.Runs)))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSTEPS\tTIME\tSTEPS/SEC\tFINAL ENERGY")

	runner := sim.New(logger)
	var (
		best, total time.Duration
		reference   uint64
		consistent  = true
	)

	for i := 1; i <= cfg.Bench.Runs; i++ {
		result, err := runner.Run(physics.JovianSystem(), sim.Config{Steps: cfg.Steps, Dt: physics.Dt})
		if err != nil {
			return err
		}

		bits := math.Float64bits(result.FinalEnergy)
		if i == 1 {
			reference = bits
			best = result.Elapsed
		} else if bits != reference {
			consistent = false
			logger.Warn("final energy differs between runs",
				zap.Int("run", i),
				zap.Float64("final_energy", result.FinalEnergy))
		}
		if result.Elapsed < best {
			best = result.Elapsed
		}
		total += result.Elapsed

		rate := 0.0
		if result.Elapsed > 0 {
			rate = float64(result.Steps) / result.Elapsed.Seconds()
		}
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\t%s\n",
			i, result.Steps, result.Elapsed, rate, formatEnergy(result.FinalEnergy))
	}

	if err := w.Flush(); err != nil {
		return err
	}

	mean := total / time.Duration(cfg.Bench.Runs)
	deterministic := "yes"
	if !consistent {
		deterministic = warnStyle.Render("no")
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, field("best", best.String()))
	fmt.Fprintln(out, field("mean", mean.String()))
	fmt.Fprintln(out, labelStyle.Render("deterministic:")+" "+deterministic)
	return nil
}

func plotDrift(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd, args)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	drift, err := metrics.NewEnergyDrift(cfg.Drift.Every)
	if err != nil {
		return err
	}

	runner := sim.New(logger)
	runner.AddMetric(drift)

	result, err := runner.Run(physics.JovianSystem(), sim.Config{Steps: cfg.Steps, Dt: physics.Dt})
	if err != nil {
		return err
	}

	if err := writeDriftReport(cmd.OutOrStdout(), cfg, result, drift); err != nil {
		logger.Warn("energy became non-finite", zap.Error(err))
	}
	return nil
}

// writeDriftReport renders the chart and summary of a finished run. A
// non-finite sample adds a warning line and is returned to the caller.
func writeDriftReport(out io.Writer, cfg *config.Config, result *sim.Result, drift *metrics.EnergyDrift) error {
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("energy drift over %d steps (dt=%v)", result.Steps, physics.Dt)))
	fmt.Fprintln(out)

	ppm := drift.Drifts()
	for i := range ppm {
		ppm[i] *= 1e6
	}
	if len(ppm) > 1 {
		graph := asciigraph.Plot(ppm,
			asciigraph.Height(cfg.Drift.Height),
			asciigraph.Width(cfg.Drift.Width),
			asciigraph.Caption(fmt.Sprintf("|E - E0| / |E0| in ppm, sampled every %d steps", cfg.Drift.Every)),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, field("initial energy", formatEnergy(result.InitialEnergy)))
	fmt.Fprintln(out, field("final energy", formatEnergy(result.FinalEnergy)))
	fmt.Fprintln(out, field("max drift", fmt.Sprintf("%.3e", drift.Value())))

	err := drift.Err()
	if err != nil {
		fmt.Fprintln(out, warnStyle.Render("warning: "+err.Error()))
	}
	return err
}

// writeConfig saves defaults, the --config file and flags merged, so the
// result can be passed back with --config.
func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), field("wrote", args[0]))
	return nil
}
