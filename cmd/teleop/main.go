package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/teleop/internal/competition"
	"github.com/san-kum/teleop/internal/config"
	"github.com/san-kum/teleop/internal/control"
	"github.com/san-kum/teleop/internal/hardware"
	"github.com/san-kum/teleop/internal/logging"
	"github.com/san-kum/teleop/internal/metrics"
	"github.com/san-kum/teleop/internal/robot"
	"github.com/san-kum/teleop/internal/script"
	"github.com/san-kum/teleop/internal/storage"
	"github.com/san-kum/teleop/internal/sweep"
	"github.com/san-kum/teleop/internal/viz"
)

type options struct {
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	scriptFile string
	ticks      int
	record     bool
	mode       string
	turnGain   float64
	periodMs   int
	sweep      sweep.Config
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:          "teleop",
		Short:        "tank-drive robot operator control",
		SilenceUsage: true,
	}
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().StringVar(&opts.dataDir, "data", ".teleop", "data directory")
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", config.DefaultLogLevel, "log level (trace, debug, info, warn, error, off)")

	robotFlags := func(c *cobra.Command) {
		c.Flags().StringVar(&opts.configFile, "config", "", "config file path (yaml)")
		c.Flags().StringVar(&opts.preset, "preset", "", "use preset configuration")
		c.Flags().Float64Var(&opts.turnGain, "turn-gain", config.DefaultTurnGain, "turn axis gain")
		c.Flags().IntVar(&opts.periodMs, "period", config.DefaultPeriodMs, "loop period in milliseconds")
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run operator control headless",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd, opts)
		},
	}
	robotFlags(runCmd)
	runCmd.Flags().StringVar(&opts.scriptFile, "script", "", "input script (yaml)")
	runCmd.Flags().IntVar(&opts.ticks, "ticks", 0, "stop after this many ticks (0 runs until the script ends or ctrl+c)")
	runCmd.Flags().BoolVar(&opts.record, "record", true, "save the run to the data directory")
	runCmd.Flags().StringVar(&opts.mode, "mode", "opcontrol", "competition mode to run after initialize")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drive the robot from the keyboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, opts)
		},
	}
	robotFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "replay a script across a range of parameter values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd, opts)
		},
	}
	robotFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&opts.scriptFile, "script", "", "input script (yaml)")
	sweepCmd.Flags().StringVar(&opts.sweep.Param, "param", "turn_gain", fmt.Sprintf("parameter to vary %v", control.ParamNames()))
	sweepCmd.Flags().Float64Var(&opts.sweep.Min, "min", 0, "first parameter value (default depends on --param)")
	sweepCmd.Flags().Float64Var(&opts.sweep.Max, "max", 0, "last parameter value (default depends on --param)")
	sweepCmd.Flags().IntVar(&opts.sweep.Steps, "steps", 6, "number of values")
	sweepCmd.Flags().IntVar(&opts.sweep.Workers, "workers", 4, "replays run at once")
	sweepCmd.MarkFlagRequired("script")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRuns(cmd.OutOrStdout(), opts)
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot drive power of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return plotRun(cmd.OutOrStdout(), opts, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run ticks as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(storage.New(opts.dataDir).TicksPath(args[0]))
			if err != nil {
				return err
			}
			defer f.Close()
			_, err = io.Copy(cmd.OutOrStdout(), f)
			return err
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and ticks as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(opts.dataDir).ExportJSON(args[0], cmd.OutOrStdout())
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTURN GAIN\tINTAKE\tPERIOD")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%d\t%dms\n", name, p.Drive.TurnGain, p.Intake.Power, p.PeriodMs)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage robot configuration files",
	}
	initPreset := ""
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if initPreset != "" {
				if cfg = config.GetPreset(initPreset); cfg == nil {
					return fmt.Errorf("unknown preset: %s", initPreset)
				}
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
	configInitCmd.Flags().StringVar(&initPreset, "preset", "", "preset to write")
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, presetsCmd, configCmd)
	return rootCmd
}

func runHeadless(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	mode, err := competition.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, nil)

	var (
		input    robot.InputDevice = hardware.NewGamepad()
		player   *script.Player
		scr      *script.Script
		maxTicks = opts.ticks
	)
	if opts.scriptFile != "" {
		if scr, err = script.Load(opts.scriptFile); err != nil {
			return fmt.Errorf("load script: %w", err)
		}
		player = script.NewPlayer(scr)
		input = player
		if maxTicks == 0 || maxTicks > scr.TotalTicks() {
			maxTicks = scr.TotalTicks()
		}
	}

	s, err := newSession(cfg, input, maxTicks, log)
	if err != nil {
		return err
	}

	ms := metrics.Defaults(cfg.Period())
	for _, m := range ms {
		s.loop.AddObserver(m)
	}
	rec := storage.NewRecorder()
	s.loop.AddObserver(rec)
	if player != nil {
		s.loop.AddObserver(player)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	d := competition.NewDispatcher(s.robot, log)
	if err := d.Start(ctx); err != nil {
		return err
	}
	if err := d.SetMode(mode); err != nil {
		return err
	}
	waitErr := d.Wait(ctx)
	d.Stop()
	if waitErr != nil && !errors.Is(waitErr, context.Canceled) {
		return waitErr
	}

	values := metrics.Collect(ms)
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ticks: %d\n", s.loop.Ticks())
	printMetrics(out, values)
	printDevices(out, s.brain)

	if !opts.record {
		return nil
	}
	if s.loop.Ticks() == 0 {
		fmt.Fprintf(out, "no ticks issued in %s, run not saved\n", mode)
		return nil
	}
	st := storage.New(opts.dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.RunMetadata{
		Profile:  cfg.Name,
		PeriodMs: cfg.PeriodMs,
		TurnGain: cfg.Drive.TurnGain,
		Metrics:  values,
	}
	if scr != nil {
		meta.Script = scr.Name
	}
	runID, err := st.Save(meta, rec.Ticks())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "saved run %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.dataDir, 0755); err != nil {
		return err
	}
	logFile, err := os.OpenFile(filepath.Join(opts.dataDir, "live.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.New(logFile, cfg.LogLevel, nil)

	pad := hardware.NewGamepad()
	s, err := newSession(cfg, pad, 0, log)
	if err != nil {
		return err
	}

	d := competition.NewDispatcher(s.robot, log)
	if err := d.Start(cmd.Context()); err != nil {
		return err
	}
	log.Info().Msg("live session started")

	m := viz.NewModel(pad, s.loop, s.chassis, s.lcd, s.bindings.Forward, s.bindings.Turn, cfg.Period())
	return viz.Run(m)
}

func runSweep(cmd *cobra.Command, opts *options) error {
	cfg, err := resolveConfig(cmd, opts)
	if err != nil {
		return err
	}
	scr, err := script.Load(opts.scriptFile)
	if err != nil {
		return fmt.Errorf("load script: %w", err)
	}
	log := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, nil)

	if span, ok := sweep.Spans[opts.sweep.Param]; ok {
		if !cmd.Flags().Changed("min") {
			opts.sweep.Min = span.Min
		}
		if !cmd.Flags().Changed("max") {
			opts.sweep.Max = span.Max
		}
	}

	results, err := sweep.Run(cmd.Context(), cfg, scr, opts.sweep, log)
	if err != nil {
		return err
	}

	names := make([]string, 0)
	if len(results) > 0 {
		for name := range results[0].Metrics {
			names = append(names, name)
		}
		sort.Strings(names)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tTICKS", strings.ToUpper(opts.sweep.Param))
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", strings.ToUpper(name))
	}
	fmt.Fprintln(w)
	for _, r := range results {
		fmt.Fprintf(w, "%.3f\t%d", r.Value, r.Ticks)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.3f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}

func listRuns(out io.Writer, opts *options) error {
	st := storage.New(opts.dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPROFILE\tSCRIPT\tTIME\tTICKS\tPERIOD\tGAIN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%dms\t%.2f\n",
			run.ID,
			run.Profile,
			run.Script,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Ticks,
			run.PeriodMs,
			run.TurnGain,
		)
	}

	return w.Flush()
}

func plotRun(out io.Writer, opts *options, runID string) error {
	st := storage.New(opts.dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	ticks, err := st.LoadTicks(runID)
	if err != nil {
		return err
	}
	if len(ticks) == 0 {
		return fmt.Errorf("no data to plot")
	}

	left := make([]float64, len(ticks))
	right := make([]float64, len(ticks))
	for i, t := range ticks {
		left[i], right[i] = float64(t.Left), float64(t.Right)
	}

	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "profile: %s  ticks: %d\n\n", meta.Profile, meta.Ticks)

	graph := asciigraph.PlotMany([][]float64{left, right},
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("left / right drive power"),
	)
	fmt.Fprintln(out, graph)

	printMetrics(out, meta.Metrics)
	return nil
}

func printMetrics(out io.Writer, values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.3f\n", name, values[name])
	}
	w.Flush()
}

func printDevices(out io.Writer, brain *hardware.Brain) {
	motors, outputs := brain.Snapshot()

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DEVICE\tPORT\tCOMMANDED\tAPPLIED\tWRITES")
	for _, m := range motors {
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", m.Name, m.Port, m.Commanded, m.Applied, m.Writes)
	}
	for _, o := range outputs {
		fmt.Fprintf(w, "%s\t%s\t%t\t-\t%d\n", o.Name, o.Port, o.Level, o.Writes)
	}
	w.Flush()
}
