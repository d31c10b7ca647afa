package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/c360studio/spectral/axis"
	"github.com/c360studio/spectral/calibration"
	"github.com/c360studio/spectral/config"
	"github.com/c360studio/spectral/frame"
	"github.com/c360studio/spectral/geodesic"
	"github.com/c360studio/spectral/metric"
	"github.com/c360studio/spectral/report"
	"github.com/c360studio/spectral/storage"
	"github.com/c360studio/spectral/watch"
)

// errCalibrationFailed marks a run that completed but found violations;
// main maps it to exit code 1 without any extra error output.
var errCalibrationFailed = errors.New("calibration failed")

type appOptions struct {
	configPath string
	frameDir   string
	logLevel   string
	jsonOutput bool
}

// App wires the registry, validators, and optional history store together.
type App struct {
	cfg    *config.Config
	reg    *axis.Registry
	loader *frame.Loader
	cal    *calibration.Validator
	geo    *geodesic.Validator
	store  *storage.Store
}

// NewApp resolves configuration and builds the validation pipeline.
func NewApp(opts appOptions) (*App, error) {
	setupLogging(opts.logLevel)

	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	reg := axis.Default()

	app := &App{
		cfg:    cfg,
		reg:    reg,
		loader: frame.NewLoader(reg, slog.Default()),
		cal:    calibration.NewValidator(reg, cfg.Tolerance.OriginDistance),
		geo: geodesic.NewValidator(reg, geodesic.Config{
			MaxStep:             cfg.Geodesic.MaxStep,
			ConservationCeiling: cfg.Geodesic.ConservationCeiling,
			DriftTolerance:      cfg.Tolerance.AxisDrift,
			SpiralThreshold:     cfg.Geodesic.SpiralThreshold,
			ShadowBound:         cfg.Geodesic.ShadowBound,
			Activation:          activationByAxis(reg, cfg.Geodesic.Activation),
		}),
	}

	if cfg.History.Enabled {
		store, err := storage.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		app.store = store
	}

	return app, nil
}

// Close releases the history store, if open.
func (a *App) Close() error {
	if a.store != nil {
		return a.store.Close()
	}
	return nil
}

// Run performs one full validation pass and returns the summary.
func (a *App) Run() (report.Summary, error) {
	f, loadViolations, err := a.loader.Load(a.cfg.Frame.Dir, a.cfg.Frame.Patterns)
	if err != nil {
		return report.Summary{}, fmt.Errorf("load frame: %w", err)
	}

	cal := a.cal.Validate(f)
	geo := a.geo.ValidateAll(f.Geodesics)
	summary := report.Build(loadViolations, cal, geo)

	if a.store != nil {
		id, err := a.store.SaveRun(context.Background(), summary)
		if err != nil {
			slog.Warn("failed to record run", slog.String("error", err.Error()))
		} else {
			slog.Debug("recorded run", slog.String("id", id))
		}
	}

	return summary, nil
}

// loadConfig layers defaults, user/project config, and flag overrides.
func loadConfig(opts appOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configPath != "" {
		cfg, err = config.LoadFromFile(opts.configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	} else {
		cfg, err = config.NewLoader(slog.Default()).Load()
		if err != nil {
			return nil, err
		}
	}

	if opts.frameDir != "" {
		cfg.Frame.Dir = opts.frameDir
	}
	return cfg, nil
}

// activationByAxis converts configured activation thresholds to typed axis
// identifiers, dropping entries that name no registered axis.
func activationByAxis(reg *axis.Registry, raw map[string]float64) map[axis.ID]float64 {
	if len(raw) == 0 {
		return nil
	}
	out := make(map[axis.ID]float64, len(raw))
	for key, min := range raw {
		id := axis.ID(key)
		if !reg.Contains(id) {
			slog.Warn("activation threshold names unknown axis", slog.String("axis", key))
			continue
		}
		out[id] = min
	}
	return out
}

func runValidate(opts appOptions) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	summary, err := app.Run()
	if err != nil {
		return err
	}

	if opts.jsonOutput {
		if err := report.RenderJSON(os.Stdout, summary); err != nil {
			return err
		}
	} else {
		report.Render(os.Stdout, summary)
	}

	if !summary.Passed {
		return errCalibrationFailed
	}
	return nil
}

func runWatch(ctx context.Context, opts appOptions) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := metric.New()
	if addr := app.cfg.Metrics.Addr; addr != "" {
		go func() {
			if err := metrics.Serve(ctx, addr, slog.Default()); err != nil {
				slog.Error("metrics server failed", slog.String("error", err.Error()))
			}
		}()
	}

	watcher, err := watch.New(app.cfg.Frame.Dir, watch.DefaultDebounce, slog.Default())
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}

	revalidate := func(reason string) {
		summary, err := app.Run()
		if err != nil {
			slog.Error("validation failed", slog.String("error", err.Error()))
			return
		}
		metrics.ObserveRun(summary)
		report.Render(os.Stdout, summary)
		slog.Info("validation complete",
			slog.String("trigger", reason),
			slog.Bool("passed", summary.Passed),
			slog.Int("violations", len(summary.Violations)))
	}

	// Initial pass before any change arrives.
	revalidate("startup")

	go func() {
		for batch := range watcher.Events() {
			revalidate(fmt.Sprintf("%d file(s) changed", len(batch)))
		}
	}()

	return watcher.Start(ctx)
}

func runHistory(ctx context.Context, opts appOptions, limit int) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if app.store == nil {
		return fmt.Errorf("history is not enabled; set history.enabled in %s", config.ProjectConfigFile)
	}

	runs, err := app.store.ListRuns(ctx, limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tTIME\tRESULT\tVIOLATIONS\tCHECKED")
	for _, r := range runs {
		result := "pass"
		if !r.Passed {
			result = "fail"
		}
		checked := r.OriginChecked + r.PolesChecked + r.PairsChecked + r.GeodesicsChecked
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\n", r.ID[:8], r.CreatedAt, result, r.ViolationCount, checked)
	}
	return w.Flush()
}

func runInit(opts appOptions) error {
	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	dir := app.cfg.Frame.Dir
	if err := frame.WriteCanonical(frame.Canonical(app.reg), dir); err != nil {
		return err
	}
	fmt.Printf("wrote canonical origin and %d pole records to %s\n", app.reg.Len()*2, dir)
	return nil
}

func printAxes(w io.Writer) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "AXIS\tLOW (0.0)\tHIGH (1.0)")
	for _, a := range axis.Default().Axes() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", a.ID, a.Low, a.High)
	}
	tw.Flush()
}
