package pool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/agbru/revfile/internal/reverse"
)

// Job is one reversal: a file and the strategy to apply to it.
type Job struct {
	Path    string
	Method  reverse.Method
	Options reverse.Options
}

// Runner executes a single job.
type Runner interface {
	Run(ctx context.Context, job Job) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context, job Job) error

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, job Job) error { return f(ctx, job) }

// InProcessRunner runs the strategy in the calling goroutine.
type InProcessRunner struct{}

// Run applies the job's strategy directly.
func (InProcessRunner) Run(_ context.Context, job Job) error {
	return reverse.Reverse(job.Method, job.Path, job.Options)
}

// SubprocessRunner runs every job in a fresh child process.
type SubprocessRunner struct {
	// Executable is the binary to start; it must understand WorkerCommand.
	Executable string
	// Args are inserted before the worker arguments.
	Args []string
}

// NewSubprocessRunner returns a runner that re-executes the current binary.
func NewSubprocessRunner() (*SubprocessRunner, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	return &SubprocessRunner{Executable: exe}, nil
}

// Run starts the worker process and waits for it. The context is not used
// to kill the child: a started job always runs to completion.
func (r *SubprocessRunner) Run(_ context.Context, job Job) error {
	args := append(append([]string{}, r.Args...), WorkerArgs(job)...)
	cmd := exec.Command(r.Executable, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return &ProcessError{
			Command:  append([]string{r.Executable}, args...),
			ExitCode: exitCode,
			Stderr:   stderr.String(),
			Err:      err,
		}
	}
	return nil
}

// NewRunner returns the runner matching kind.
func NewRunner(kind Kind) (Runner, error) {
	switch kind {
	case Thread:
		return InProcessRunner{}, nil
	case Process:
		return NewSubprocessRunner()
	}
	return nil, fmt.Errorf("unknown pool kind %q", kind)
}
