package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/simlab/internal/config"
	"github.com/san-kum/simlab/internal/dynamo"
	"github.com/san-kum/simlab/internal/export"
	"github.com/san-kum/simlab/internal/gui"
	"github.com/san-kum/simlab/internal/scaffold"
	"github.com/san-kum/simlab/internal/sketch"
	"github.com/san-kum/simlab/internal/storage"
	"github.com/san-kum/simlab/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	logFile    string
	configFile string
	preset     string
	integrator string
	dt         float64
	duration   float64
	frames     int
	theme      string

	thumb      bool
	recordPath string

	thumbOut    string
	thumbWidth  int
	thumbHeight int
	labels      bool

	fontPath  string
	winWidth  int32
	winHeight int32

	scaffoldRoot string

	jsonOut   string
	presetOut string

	xAxis    int
	yAxis    int
	phaseSVG string
	plotRows int

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	logOut io.Closer
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "simlab",
		Short:         "interactive physics sketches",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".simlab", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs here instead of stderr")

	runCmd := &cobra.Command{
		Use:   "run [sketch]",
		Short: "run a sketch headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSketch,
	}
	addSketchFlags(runCmd)
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time in seconds")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "host seconds to simulate")
	runCmd.Flags().IntVar(&frames, "frames", 0, "frame count (overrides --time)")
	runCmd.Flags().StringVarP(&integrator, "integrator", "i", config.DefaultIntegrator, "integrator: "+strings.Join(sketch.Integrators(), ", "))

	liveCmd := &cobra.Command{
		Use:   "live [sketch]",
		Short: "run a sketch in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addSketchFlags(liveCmd)
	liveCmd.Flags().BoolVar(&thumb, "thumb", false, "thumbnail mode: no panel, no labels, no stepping")
	liveCmd.Flags().StringVar(&recordPath, "record", "simulation.gif", "where the g key saves its GIF")
	liveCmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: saved preference)")

	guiCmd := &cobra.Command{
		Use:   "gui [sketch]",
		Short: "run a sketch in a desktop window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addSketchFlags(guiCmd)
	guiCmd.Flags().BoolVar(&thumb, "thumb", false, "thumbnail mode: no panel, no labels, no stepping")
	guiCmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: saved preference)")
	guiCmd.Flags().StringVar(&fontPath, "font", "", "TTF font for panel and labels")
	guiCmd.Flags().Int32Var(&winWidth, "width", 1280, "window width")
	guiCmd.Flags().Int32Var(&winHeight, "height", 720, "window height")

	thumbCmd := &cobra.Command{
		Use:   "thumb [sketch]",
		Short: "render one frame to an SVG or PNG thumbnail",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderThumb,
	}
	addSketchFlags(thumbCmd)
	thumbCmd.Flags().StringVarP(&thumbOut, "out", "o", "thumb.svg", "output file (.svg or .png)")
	thumbCmd.Flags().IntVar(&thumbWidth, "width", export.DefaultThumbWidth, "image width")
	thumbCmd.Flags().IntVar(&thumbHeight, "height", export.DefaultThumbHeight, "image height")
	thumbCmd.Flags().BoolVar(&labels, "labels", false, "keep grid labels")
	thumbCmd.Flags().StringVar(&theme, "theme", "", "light or dark (default: saved preference)")

	newCmd := &cobra.Command{
		Use:   "new <name>",
		Short: "create a sketch config from the template",
		Args:  cobra.ArbitraryArgs,
		RunE:  newSketch,
	}
	newCmd.Flags().StringVar(&scaffoldRoot, "root", ".", "project root holding the sketches directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotRows, "height", 10, "plot height in rows")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summarize a stored run and draw its phase portrait",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&xAxis, "x-axis", 0, "state index for the phase x axis")
	analyzeCmd.Flags().IntVar(&yAxis, "y-axis", 1, "state index for the phase y axis")
	analyzeCmd.Flags().StringVar(&phaseSVG, "svg", "", "also write the phase portrait as SVG")

	compareCmd := &cobra.Command{
		Use:   "compare [sketch] [integrators...]",
		Short: "run a sketch under several integrators",
		Args:  cobra.MinimumNArgs(1),
		RunE:  compareIntegrators,
	}
	addSketchFlags(compareCmd)
	compareCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "frame time in seconds")
	compareCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "host seconds to simulate")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default stdout)")

	sketchesCmd := &cobra.Command{
		Use:   "sketches",
		Short: "list available sketches and integrators",
		RunE:  listSketches,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [sketch] [preset]",
		Short: "list presets, or write one out as a config file",
		Args:  cobra.MaximumNArgs(2),
		RunE:  presets,
	}
	presetsCmd.Flags().StringVarP(&presetOut, "out", "o", "", "config file to write (.yaml or .toml)")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, thumbCmd, newCmd, listCmd, plotCmd, analyzeCmd,
		compareCmd, exportCSVCmd, exportJSONCmd, sketchesCmd, presetsCmd, newSweepCmd(), newBatchCmd())

	err := rootCmd.Execute()
	if err != nil {
		logger.Error("command failed", "err", err)
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	closeLog()
	if err != nil {
		os.Exit(1)
	}
}

func addSketchFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "sketch config file (.yaml or .toml)")
	cmd.Flags().StringVarP(&preset, "preset", "p", "", "named preset")
}

func setupLogger() error {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	var w io.Writer = os.Stderr
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		logOut = f
		w = f
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	return nil
}

// closeLog closes the --log-file handle, if any, and sends later records
// nowhere.
func closeLog() {
	if logOut == nil {
		return
	}
	if err := logOut.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "closing log file:", err)
	}
	logOut = nil
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

// sketchConfig resolves the config for a command: the config file if
// given, else the preset, else the defaults, with explicitly set flags
// applied on top.
func sketchConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	kind := config.SketchBall
	if len(args) > 0 {
		kind = args[0]
	}

	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(args) > 0 {
			c.Sketch = kind
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(kind, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(kind))
		}
	default:
		cfg = config.ForSketch(kind)
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openSketch builds an interactive context whose theme comes from the
// saved preference unless --theme was given.
func openSketch(cmd *cobra.Command, cfg *config.Config, log *slog.Logger, clipboard func(string) error) (*sketch.Context, error) {
	prefs := loadPrefs()
	opts := sketch.Options{
		Thumbnail: thumb,
		Theme:     cfg.Theme,
		Prefs:     prefs,
		Logger:    log,
		ShareText: strings.Join(os.Args, " "),
		Clipboard: clipboard,
	}
	if saved, ok := prefs.Get(storage.ThemeKey); ok && !cmd.Flags().Changed("theme") {
		opts.Theme = saved
	}
	return sketch.Open(cfg, opts)
}

// loadPrefs reads the saved preferences. A broken prefs file is logged
// and the hosts carry on with empty prefs and the default theme.
func loadPrefs() *storage.Prefs {
	prefs, err := storage.OpenPrefs(dataDir)
	if err != nil {
		logger.Warn("ignoring saved preferences", "err", err)
	}
	return prefs
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSketch(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args)
	if err != nil {
		return err
	}
	runner, err := sketch.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	n := frames
	if n <= 0 {
		n = int(cfg.Duration/cfg.Dt + 0.5)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s simulation...\n", cfg.Sketch)
	start := time.Now()
	result, err := runner.Run(ctx, n, cfg.Dt)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	runID, err := st.Save(storage.RunMetadata{
		Sketch:     cfg.Sketch,
		Preset:     preset,
		Dt:         cfg.Dt,
		Duration:   float64(n) * cfg.Dt,
		TimeScale:  runner.Sketch.TimeScale(),
		Integrator: cfg.Integrator,
		Columns:    runner.Sketch.Columns(),
		Params:     params(runner.Sketch),
	}, result)
	if err != nil {
		return err
	}
	logger.Debug("run stored", "id", runID, "dir", st.Dir())

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	for _, name := range sortedNames(result.Metrics) {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

// params records the tunable parameters of a run's system.
func params(sk sketch.Sketch) map[string]float64 {
	if c, ok := sk.System().(dynamo.Configurable); ok {
		return c.GetParams()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args)
	if err != nil {
		return err
	}
	// the terminal belongs to the program until it exits, so the session
	// only logs when logs go to a file
	sessionLog := slog.New(slog.NewTextHandler(io.Discard, nil))
	if logFile != "" {
		sessionLog = logger
	}
	ctx, err := openSketch(cmd, cfg, sessionLog, viz.Clipboard(os.Stderr))
	if err != nil {
		return err
	}
	m := viz.NewModel(ctx, viz.WithRecordPath(recordPath), viz.WithLogger(sessionLog))

	logger.Debug("live start", "sketch", cfg.Sketch, "theme", ctx.Theme.Name)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return err
	}
	logger.Info("live session ended", "sketch", cfg.Sketch, "time", ctx.Time)
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args)
	if err != nil {
		return err
	}
	ctx, err := openSketch(cmd, cfg, logger, gui.Clipboard)
	if err != nil {
		return err
	}
	title := cfg.Title
	if title == "" {
		title = ctx.Sketch.Title()
	}
	return gui.Run(ctx, gui.Options{
		Width:    winWidth,
		Height:   winHeight,
		Title:    title,
		FontPath: fontPath,
		Logger:   logger,
	})
}

func renderThumb(cmd *cobra.Command, args []string) error {
	cfg, err := sketchConfig(cmd, args)
	if err != nil {
		return err
	}
	format, err := export.FormatFor(thumbOut)
	if err != nil {
		return err
	}
	prefs := loadPrefs()
	if saved, ok := prefs.Get(storage.ThemeKey); ok && !cmd.Flags().Changed("theme") {
		cfg.Theme = saved
	}
	ctx, err := sketch.Open(cfg, sketch.Options{Thumbnail: true, Logger: logger})
	if err != nil {
		return err
	}
	if labels {
		ctx.Grid.Thumbnail = false
	}

	f, err := os.Create(thumbOut)
	if err != nil {
		return err
	}
	if err := export.Render(ctx, format, thumbWidth, thumbHeight, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d %s)\n", thumbOut, thumbWidth, thumbHeight, format)
	return nil
}

func newSketch(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) == 1 {
		name = args[0]
	}
	res, err := scaffold.New(scaffoldRoot, name, logger)
	if errors.Is(err, scaffold.ErrUsage) || len(args) > 1 {
		cmd.PrintErrln(cmd.UsageString())
		return scaffold.ErrUsage
	}
	if err != nil {
		return err
	}
	fmt.Printf("created %s\n", res.Config)
	if res.IndexUpdated {
		fmt.Printf("linked from %s\n", scaffold.IndexFile)
	}
	fmt.Printf("run it with: simlab live -c %s\n", res.Config)
	return nil
}

func listSketches(cmd *cobra.Command, args []string) error {
	fmt.Println("sketches:")
	for _, kind := range sketch.Kinds() {
		sk, err := sketch.Build(config.ForSketch(kind))
		if err != nil {
			return err
		}
		fmt.Printf("  %-14s %s\n", kind, sk.Title())
	}
	fmt.Println("\nintegrators:")
	for _, name := range sketch.Integrators() {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

func presets(cmd *cobra.Command, args []string) error {
	kinds := sketch.Kinds()
	if len(args) > 0 {
		kinds = args[:1]
	}
	if len(args) == 2 {
		cfg := config.GetPreset(args[0], args[1])
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", args[1], config.ListPresets(args[0]))
		}
		path := presetOut
		if path == "" {
			path = fmt.Sprintf("%s_%s.yaml", args[0], args[1])
		}
		if err := config.Save(path, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
		return nil
	}

	for _, kind := range kinds {
		names := config.ListPresets(kind)
		if names == nil {
			return fmt.Errorf("unknown sketch: %s (available: %v)", kind, sketch.Kinds())
		}
		fmt.Printf("presets for %s:\n", kind)
		for _, p := range names {
			fmt.Printf("  %s\n", p)
		}
	}
	return nil
}
