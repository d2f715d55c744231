package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/atom/internal/anim"
	"github.com/san-kum/atom/internal/config"
	"github.com/san-kum/atom/internal/export"
	"github.com/san-kum/atom/internal/gui"
	"github.com/san-kum/atom/internal/logging"
	"github.com/san-kum/atom/internal/sim"
	"github.com/san-kum/atom/internal/storage"
	"github.com/san-kum/atom/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	// window
	fps       int
	width     int
	height    int
	showLight bool
	showHUD   bool

	// headless; pflag writes a flag's default into its variable when the
	// flag is defined, so differing defaults need separate variables
	frames         int
	snapshotFrames int
	benchFrames    int
	dt             float64
	save           bool
	realtime       bool
	svgPath        string
	outPath        string
	cols           int
	rows           int

	logger *log.Logger
)

// raylib must stay on the thread that created the window.
func init() {
	runtime.LockOSThread()
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "atom",
		Short:         "animated shader-driven atom",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.New(os.Stderr, verbose)
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".atom", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	addWindowFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the GPU window",
		RunE:  runGUI,
	}
	addWindowFlags(guiCmd)

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "render the atom in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run the animation headless and chart the orbit",
		RunE:  runTrace,
	}
	traceCmd.Flags().IntVar(&frames, "frames", 200, "ticks to run")
	traceCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per tick")
	traceCmd.Flags().BoolVar(&save, "save", false, "store the trace")
	traceCmd.Flags().BoolVar(&realtime, "realtime", false, "pace ticks at the configured fps on the wall clock")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored traces",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the x-z orbit path as svg")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored trace as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render one terminal frame",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&snapshotFrames, "frames", 0, "ticks before the frame")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per tick")
	snapshotCmd.Flags().IntVar(&cols, "cols", 80, "canvas columns")
	snapshotCmd.Flags().IntVar(&rows, "rows", 24, "canvas rows")
	snapshotCmd.Flags().StringVar(&svgPath, "svg", "", "write svg instead of printing")
	snapshotCmd.Flags().BoolVar(&showLight, "show-light", false, "mark the point light")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick and projection throughput",
		RunE:  benchLoop,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 5000, "ticks per measurement")

	compareCmd := &cobra.Command{
		Use:   "compare [preset...]",
		Short: "trace presets side by side",
		RunE:  compareRuns,
	}
	compareCmd.Flags().IntVar(&frames, "frames", 200, "ticks per preset")
	compareCmd.Flags().Float64Var(&dt, "dt", 1.0/60, "seconds per tick")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  - %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved config to a file",
		Args:  cobra.ExactArgs(1),
		RunE:  initConfig,
	}, &cobra.Command{
		Use:   "show",
		Short: "print the resolved config",
		RunE:  showConfig,
	})

	rootCmd.AddCommand(guiCmd, tuiCmd, traceCmd, listCmd, plotCmd, exportCmd, snapshotCmd, benchCmd, compareCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger != nil {
			logger.Error(err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	cmd.Flags().IntVar(&width, "width", config.DefaultWidth, "window width")
	cmd.Flags().IntVar(&height, "height", config.DefaultHeight, "window height")
	cmd.Flags().BoolVar(&showLight, "show-light", false, "draw the point light")
	cmd.Flags().BoolVar(&showHUD, "hud", true, "draw frame and fps overlay")
}

// loadConfig resolves defaults, then the preset, then the config file, then
// explicitly set flags. It returns the config and a name for the result.
func loadConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg, name := config.DefaultConfig(), "default"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, "", fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		name = filepath.Base(configFile)
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.Window.FPS = fps
	}
	if flags.Changed("width") {
		cfg.Window.Width = width
	}
	if flags.Changed("height") {
		cfg.Window.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	logger.Debug("config resolved", "name", name, "fps", cfg.Window.FPS, "orbit_steps", cfg.Animation.OrbitSteps)
	return cfg, name, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext()
	defer stop()

	err = gui.Run(ctx, cfg, gui.Options{ShowLight: showLight, ShowHUD: showHUD}, logger)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// the terminal belongs to the UI; diagnostics go to a file when asked for
	tuiLogger := logging.Discard()
	if verbose {
		f, err := os.Create("atom-tui.log")
		if err != nil {
			return err
		}
		defer f.Close()
		tuiLogger = logging.New(f, true)
	}

	return viz.Run(cfg, name, tuiLogger)
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, name, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signalContext()
	defer stop()

	tracer := sim.New(cfg, logger)
	rc := sim.Config{Frames: frames, Dt: dt}
	var result *sim.Result
	if realtime {
		ticker := anim.NewTickerScheduler(cfg.Window.FPS)
		defer ticker.Stop()
		dt = 1 / float64(cfg.Window.FPS)
		result, err = tracer.RunPaced(ctx, rc, ticker)
	} else {
		result, err = tracer.Run(ctx, rc)
	}
	if err != nil {
		return err
	}

	fmt.Printf("preset: %s\n", name)
	fmt.Printf("frames: %d (dt %.4fs)\n\n", len(result.Frames), dt)
	printOrbit(result.Frames)

	fmt.Printf("revolutions: %.2f\n", result.Summary["revolutions"])
	fmt.Printf("orbit period: %s\n", formatPeriod(result.Summary))
	fmt.Printf("proton spin: %.3f rad\n", result.Summary["final_rot_y"])

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(name, dt, result.Frames)
		if err != nil {
			return fmt.Errorf("save trace: %w", err)
		}
		fmt.Printf("\nsaved: %s\n", runID)
	}
	return nil
}

func printOrbit(fs []storage.Frame) {
	xs := storage.Series(fs, func(f storage.Frame) float64 { return f.X })
	zs := storage.Series(fs, func(f storage.Frame) float64 { return f.Z })
	chart := asciigraph.PlotMany([][]float64{xs, zs},
		asciigraph.Height(10),
		asciigraph.Width(70),
		asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
		asciigraph.SeriesLegends("x", "z"),
		asciigraph.Caption("electron position"))
	fmt.Println(chart)
	fmt.Println()
}

// formatPeriod prints the measured orbit period, or a dash when the run was
// shorter than one cycle.
func formatPeriod(summary map[string]float64) string {
	p, ok := summary["period_frames"]
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.1f frames", p)
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tDT\tREVS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.4fs\t%.2f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Dt,
			run.Summary["revolutions"],
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
	fs, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(fs) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("frames: %d\n\n", len(fs))

	printOrbit(fs)
	spin := storage.Series(fs, func(f storage.Frame) float64 { return f.RotationY })
	fmt.Println(asciigraph.Plot(spin, asciigraph.Height(6), asciigraph.Width(70), asciigraph.Caption("proton rotation (rad)")))

	if svgPath != "" {
		pts := make([]export.Point, len(fs))
		for i, f := range fs {
			pts[i] = export.Point{X: f.X, Y: f.Z}
		}
		if err := export.WriteFile(svgPath, export.TrajectoryToSVG(pts, 400, 400, "#F21D1D")); err != nil {
			return err
		}
		fmt.Printf("\nwrote %s\n", svgPath)
	}
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	if outPath == "" {
		return st.ExportJSON(os.Stdout, args[0])
	}
	if err := st.ExportJSONFile(outPath, args[0]); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", outPath)
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	canvas, state, err := viz.Snapshot(cfg, cols, rows, snapshotFrames, dt, showLight)
	if err != nil {
		return err
	}
	logger.Debug("snapshot", "frame", state.Frame, "theta", state.Orbit.Theta)

	if svgPath == "" {
		fmt.Print(canvas.String())
		return nil
	}
	if err := export.WriteFile(svgPath, export.CanvasToSVG(canvas, 4)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgPath)
	return nil
}

func benchLoop(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RENDERER\tFRAMES\tTIME\tFRAMES/S")

	renderers := []struct {
		name     string
		renderer anim.Renderer
	}{
		{"none", nil},
		{"braille 80x24", viz.NewProjector(80, 24)},
		{"braille 200x60", viz.NewProjector(200, 60)},
	}

	for _, r := range renderers {
		tracer := sim.New(cfg, nil)
		if r.renderer != nil {
			tracer.SetRenderer(r.renderer)
		}

		start := time.Now()
		result, err := tracer.Run(context.Background(), sim.Config{Frames: benchFrames, Dt: 1.0 / 60})
		if err != nil {
			return err
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%s\t%d\t%v\t%.0f\n", r.name, result.State.Frame, elapsed.Round(time.Microsecond), float64(result.State.Frame)/elapsed.Seconds())
	}
	return w.Flush()
}

func compareRuns(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = config.ListPresets()
	}

	e := sim.NewEnsemble(logger)
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		e.Add(name, cfg)
	}

	ctx, stop := signalContext()
	defer stop()

	results, err := e.Run(ctx, sim.Config{Frames: frames, Dt: dt})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tFRAMES\tREVS\tPERIOD\tRADIUS\tSPIN\tFINAL X\tFINAL Z")
	for _, r := range results {
		last := r.Frames[len(r.Frames)-1]
		fmt.Fprintf(w, "%s\t%d\t%.2f\t%s\t%.2f\t%.3f\t%.3f\t%.3f\n",
			r.Name,
			len(r.Frames),
			r.Summary["revolutions"],
			formatPeriod(r.Summary),
			r.Summary["radius_max"],
			r.Summary["final_rot_y"],
			last.X,
			last.Z,
		)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

func showConfig(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(cfg)
}
