package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/agbru/revfile/internal/cli"
	"github.com/agbru/revfile/internal/config"
	"github.com/agbru/revfile/internal/dispatch"
	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/logging"
	"github.com/agbru/revfile/internal/metrics"
	"github.com/agbru/revfile/internal/pool"
	"github.com/agbru/revfile/internal/reverse"
	"github.com/agbru/revfile/internal/ui"
)

// Diagnostics printed on stdout for a bad positional argument.
const (
	msgInvalidMethod = "Invalid method"
	msgInvalidPool   = "Invalid pool type"
)

// Application represents the revfile application instance.
type Application struct {
	Config    config.AppConfig
	ErrWriter io.Writer
	Logger    logging.Logger

	newRunner func(pool.Kind) (pool.Runner, error)
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithLogger replaces the console logger built from the verbosity flags.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// WithRunnerFactory overrides how a pool kind is turned into a job runner.
func WithRunnerFactory(f func(pool.Kind) (pool.Runner, error)) AppOption {
	return func(a *Application) { a.newRunner = f }
}

// New creates a new Application instance by parsing command-line arguments.
// args includes the program name, as os.Args does.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, newRunner: pool.NewRunner}
	for _, opt := range opts {
		opt(app)
	}

	programName := "revfile"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter)
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	return app, nil
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Run reverses every input file and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Version {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	method, err := reverse.ParseMethod(a.Config.Method)
	if err != nil {
		fmt.Fprintln(out, msgInvalidMethod)
		return apperrors.ExitErrorConfig
	}
	kind, err := pool.ParseKind(a.Config.Pool)
	if err != nil {
		fmt.Fprintln(out, msgInvalidPool)
		return apperrors.ExitErrorConfig
	}

	logger := a.logger()
	ui.InitTheme(a.Config.NoColor)

	paths, err := dispatch.Discover(a.Config.DataDir, a.Config.Pattern)
	if err != nil {
		logger.Error("cannot list input files", err, logging.String("dir", a.Config.DataDir))
		return apperrors.ExitErrorConfig
	}
	if len(paths) == 0 {
		logger.Info("no input files found",
			logging.String("dir", a.Config.DataDir), logging.String("pattern", a.Config.Pattern))
	}

	runner, err := a.newRunner(kind)
	if err != nil {
		logger.Error("cannot start worker pool", err, logging.String("pool", string(kind)))
		return apperrors.ExitErrorConfig
	}

	// Setup lifecycle (timeout + signals)
	if a.Config.Timeout > 0 {
		var cancelTimeout context.CancelFunc
		ctx, cancelTimeout = context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
	}
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.executionInfo(method, kind, len(paths)), out)
	}

	recorder := metrics.NewRecorder()
	dcfg := dispatch.Config{
		Method:   method,
		Options:  a.Config.ToOptions(),
		Kind:     kind,
		Logger:   logger,
		Recorder: recorder,
	}

	var progress *cli.BatchProgress
	if !a.Config.Quiet && len(paths) > 0 {
		progress = cli.NewBatchProgress(a.ErrWriter, len(paths))
		dcfg.Progress = progress.Update
		progress.Start()
	}

	p := pool.New(kind, a.Config.Workers, runner)
	report := dispatch.Run(ctx, p, paths, dcfg)
	if err := p.Close(); err != nil {
		logger.Error("worker pool did not shut down cleanly", err)
	}
	if progress != nil {
		progress.Stop()
	}
	logger.Debug("batch finished",
		logging.Int("submitted", report.Submitted),
		logging.Int("failed", len(report.Failures)),
		logging.Int("peak_workers", p.Peak()),
		logging.Duration("elapsed", report.Elapsed))

	if errors.Is(report.Err, context.DeadlineExceeded) {
		logger.Error("batch stopped", apperrors.TimeoutError{Operation: "batch", Limit: a.Config.Timeout})
	}

	a.present(report, out)

	snap := metrics.NewMemoryCollector().Snapshot()
	if a.Config.Verbose {
		cli.DisplayMemoryStats(snap, out)
	}
	if a.Config.MetricsFile != "" {
		recorder.ObserveMemory(snap)
		if err := recorder.WriteTextfile(a.Config.MetricsFile); err != nil {
			logger.Error("cannot write metrics file", err, logging.String("path", a.Config.MetricsFile))
		}
	}

	return apperrors.ExitCodeFor(report.Error())
}

// present writes the report. Quiet mode still lists failures.
func (a *Application) present(report dispatch.Report, out io.Writer) {
	if !a.Config.Quiet {
		cli.DisplayReport(report, out)
		return
	}
	for _, f := range report.Failures {
		fmt.Fprintln(out, cli.FormatFailure(f))
	}
	if report.Err != nil {
		fmt.Fprintln(out, cli.FormatInterruption(report))
	}
}

func (a *Application) logger() logging.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	level := zerolog.InfoLevel
	switch {
	case a.Config.Verbose:
		level = zerolog.DebugLevel
	case a.Config.Quiet:
		level = zerolog.ErrorLevel
	}
	return logging.NewConsoleLogger(a.ErrWriter, level)
}

func (a *Application) executionInfo(method reverse.Method, kind pool.Kind, files int) cli.ExecutionInfo {
	return cli.ExecutionInfo{
		Method:    string(method),
		Pool:      string(kind),
		Workers:   a.Config.Workers,
		DataDir:   a.Config.DataDir,
		Pattern:   a.Config.Pattern,
		Files:     files,
		ChunkSize: a.Config.ChunkSize,
		Strip:     a.Config.Strip,
		MmapCopy:  a.Config.MmapCopy,
	}
}
