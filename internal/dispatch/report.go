package dispatch

import (
	"errors"
	"time"
)

// Result is the outcome of one job.
type Result struct {
	Path     string
	Duration time.Duration
	Err      error
}

// Failure names a file whose job failed and why.
type Failure struct {
	Path string
	Err  error
}

// Report summarizes a batch.
type Report struct {
	Results   []Result
	Failures  []Failure
	Submitted int
	// Skipped counts files never submitted because the batch was interrupted.
	Skipped int
	Elapsed time.Duration
	// Err is set when the batch was canceled or timed out.
	Err error
}

// Succeeded returns the number of jobs that completed without error.
func (r Report) Succeeded() int {
	return len(r.Results) - len(r.Failures)
}

// OK reports whether every file was processed successfully.
func (r Report) OK() bool {
	return r.Err == nil && len(r.Failures) == 0
}

// Error combines the interruption and every job failure into one error,
// or returns nil when the batch fully succeeded.
func (r Report) Error() error {
	errs := make([]error, 0, len(r.Failures)+1)
	if r.Err != nil {
		errs = append(errs, r.Err)
	}
	for _, f := range r.Failures {
		errs = append(errs, f.Err)
	}
	return errors.Join(errs...)
}
