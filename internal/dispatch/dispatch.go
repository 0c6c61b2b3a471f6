package dispatch

import (
	"context"
	"os"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/logging"
	"github.com/agbru/revfile/internal/pool"
	"github.com/agbru/revfile/internal/reverse"
)

//go:generate mockgen -destination=mocks/mock_executor.go -package=mocks github.com/agbru/revfile/internal/dispatch Executor

const tracerName = "github.com/agbru/revfile/internal/dispatch"

// Executor accepts jobs. *pool.Pool is the production implementation.
type Executor interface {
	Submit(ctx context.Context, job pool.Job) (*pool.Handle, error)
}

// Recorder receives one observation per finished job.
type Recorder interface {
	ObserveJob(method, kind string, d time.Duration, size int64, err error)
}

// Config describes what to run and who is watching.
type Config struct {
	Method  reverse.Method
	Options reverse.Options
	// Kind only labels logs, spans and metrics; the executor decides how
	// jobs actually run.
	Kind pool.Kind

	Logger   logging.Logger
	Recorder Recorder
	// Progress, if set, is called after each job with the number of
	// finished jobs and the number of distinct files in the batch. It may
	// be called from several goroutines at once.
	Progress func(done, total int)
}

// Run submits one job per distinct path and blocks until every submitted job
// has finished. If ctx is done before all jobs are submitted, the remaining
// paths are skipped and Report.Err wraps the context error; jobs already
// running complete normally.
func Run(ctx context.Context, exec Executor, paths []string, cfg Config) Report {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	tracer := otel.Tracer(tracerName)
	paths = dedupe(paths)

	start := time.Now()
	report := Report{Results: make([]Result, 0, len(paths))}
	results := make([]Result, len(paths))
	var done atomic.Int64
	var g errgroup.Group

	// Collectors start as soon as a job is accepted: Submit blocks while the
	// pool is full, and progress must keep moving meanwhile.
	for i, path := range paths {
		job := pool.Job{Path: path, Method: cfg.Method, Options: cfg.Options}
		spanCtx, span := tracer.Start(ctx, "revfile.job", trace.WithAttributes(
			attribute.String("revfile.path", path),
			attribute.String("revfile.method", string(cfg.Method)),
			attribute.String("revfile.pool", string(cfg.Kind)),
		))

		h, err := exec.Submit(spanCtx, job)
		if err != nil && apperrors.IsContextError(err) {
			span.SetStatus(codes.Error, "not submitted")
			span.End()
			report.Skipped = len(paths) - i
			report.Err = apperrors.WrapError(err, "batch interrupted after %d of %d files", i, len(paths))
			logger.Info("batch interrupted, no further jobs submitted",
				logging.Int("submitted", i), logging.Int("skipped", report.Skipped))
			break
		}
		if err != nil {
			h = pool.CompletedHandle(job, err)
		}
		logger.Debug("job submitted", logging.String("path", path), logging.String("method", string(cfg.Method)))
		report.Submitted++

		g.Go(func() error {
			results[i] = collect(h, span, cfg, logger)
			if cfg.Progress != nil {
				cfg.Progress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}
	_ = g.Wait()

	report.Elapsed = time.Since(start)
	for _, r := range results[:report.Submitted] {
		report.Results = append(report.Results, r)
		if r.Err != nil {
			report.Failures = append(report.Failures, Failure{Path: r.Path, Err: r.Err})
		}
	}
	return report
}

// collect waits for one job and turns its outcome into a Result.
func collect(h *pool.Handle, span trace.Span, cfg Config, logger logging.Logger) Result {
	defer span.End()

	err := h.Wait()
	res := Result{Path: h.Job.Path, Duration: h.Duration()}
	var size int64
	if info, statErr := os.Stat(h.Job.Path); statErr == nil {
		size = info.Size()
	}

	if err != nil {
		res.Err = apperrors.JobError{Path: h.Job.Path, Method: string(cfg.Method), Cause: err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		logger.Error("job failed", err, logging.String("path", h.Job.Path), logging.String("method", string(cfg.Method)))
	} else {
		span.SetAttributes(attribute.Int64("revfile.bytes", size))
		logger.Debug("job finished", logging.String("path", h.Job.Path), logging.Duration("elapsed", res.Duration))
	}
	if cfg.Recorder != nil {
		cfg.Recorder.ObserveJob(string(cfg.Method), string(cfg.Kind), res.Duration, size, err)
	}
	return res
}
