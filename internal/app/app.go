// Package app wires configuration, sampling, scheduling and presentation
// into the handlewatch executable.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/handlewatch/internal/cli"
	"github.com/agbru/handlewatch/internal/config"
	apperrors "github.com/agbru/handlewatch/internal/errors"
	"github.com/agbru/handlewatch/internal/logging"
	"github.com/agbru/handlewatch/internal/metrics"
	"github.com/agbru/handlewatch/internal/sampler"
	"github.com/agbru/handlewatch/internal/scheduler"
	"github.com/agbru/handlewatch/internal/server"
	"github.com/agbru/handlewatch/internal/tui"
	"github.com/agbru/handlewatch/internal/ui"
)

// Application represents the handlewatch application instance.
type Application struct {
	Config    config.AppConfig
	Sampler   scheduler.Sampler
	ErrWriter io.Writer
	// ProgramName is used in completion scripts.
	ProgramName string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithSampler replaces the live host sampler, for tests.
func WithSampler(s scheduler.Sampler) AppOption {
	return func(a *Application) { a.Sampler = s }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, ProgramName: "handlewatch"}
	for _, opt := range opts {
		opt(app)
	}

	var cmdArgs []string
	if len(args) > 0 {
		app.ProgramName = filepath.Base(args[0])
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(app.ProgramName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode and returns the
// process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	logger, closeLog, err := a.newLogger()
	if err != nil {
		return cli.DisplayError(a.ErrWriter, err)
	}
	defer closeLog()

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.Sampler == nil {
		a.Sampler = sampler.NewSystem(
			sampler.WithConcurrency(a.Config.Concurrency),
			sampler.WithLogger(logger),
		)
	}
	exporter := metrics.NewExporter()

	// A failing metrics endpoint cancels gctx, which ends the session.
	g, gctx := errgroup.WithContext(ctx)
	if a.Config.MetricsAddr != "" {
		srv := server.New(a.Config.MetricsAddr, exporter, logger)
		g.Go(func() error { return srv.Serve(gctx) })
	}

	code := a.runMode(gctx, out, exporter, logger)
	cancel()
	if err := g.Wait(); err != nil {
		logger.Error("metrics endpoint failed", err, logging.String("addr", a.Config.MetricsAddr))
		fmt.Fprintf(a.ErrWriter, "%sMetrics endpoint failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	return code
}

// runMode dispatches to the single-shot report, the dashboard or the
// repeating text report.
func (a *Application) runMode(ctx context.Context, out io.Writer, exporter *metrics.Exporter, logger logging.Logger) int {
	outCfg := cli.OutputConfig{Top: a.Config.Top, JSON: a.Config.JSON}

	switch {
	case a.Config.Once:
		p := a.newPoller(logger, exporter.Observe)
		return cli.RunOnce(ctx, p, outCfg, out, a.ErrWriter, !a.Config.JSON)

	case a.Config.TUI:
		bridge := tui.NewBridge()
		p := a.newPoller(logger, exporter.Observe, bridge.Sink)
		return tui.Run(ctx, p, bridge, a.Config, Version)

	default:
		printer := cli.NewPrinter(out, a.ErrWriter, outCfg)
		p := a.newPoller(logger, exporter.Observe, printer.Print)
		code := cli.RunRepeating(ctx, p, a.Config.Interval, a.ErrWriter)
		passes, failed := printer.Counts()
		logger.Info("session summary", logging.Int("passes", passes), logging.Int("failed", failed))
		return code
	}
}

func (a *Application) newPoller(logger logging.Logger, sinks ...scheduler.Sink) *scheduler.Poller {
	return scheduler.New(a.Sampler, a.Config.Filter,
		scheduler.WithSink(scheduler.Sinks(sinks...)),
		scheduler.WithLogger(logger),
	)
}

// newLogger builds the application logger. The dashboard owns the terminal,
// so it logs nowhere unless a log file is given.
func (a *Application) newLogger() (logging.Logger, func(), error) {
	zerolog.SetGlobalLevel(logging.ParseLevel(a.Config.LogLevel))

	var w io.Writer = a.ErrWriter
	closeFn := func() {}
	switch {
	case a.Config.LogFile != "":
		f, err := os.OpenFile(a.Config.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, apperrors.NewConfigError("cannot open log file %s: %v", a.Config.LogFile, err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case a.Config.TUI && !a.Config.Once:
		w = io.Discard
	}
	return logging.NewLogger(w, "handlewatch"), closeFn, nil
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.ProgramName); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
