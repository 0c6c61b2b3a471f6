package pool

import (
	"errors"
	"fmt"
	"strings"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("pool is closed")

// ProcessError describes a worker process that did not exit cleanly.
type ProcessError struct {
	// Command is the full command line of the worker.
	Command []string
	// ExitCode is the worker's exit status, or -1 if it never started.
	ExitCode int
	// Stderr is what the worker wrote to its standard error.
	Stderr string
	// Err is the underlying error from os/exec.
	Err error
}

// Error reports the worker's own message when it wrote one.
func (e *ProcessError) Error() string {
	if msg := strings.TrimSpace(e.Stderr); msg != "" {
		return fmt.Sprintf("worker exited with code %d: %s", e.ExitCode, msg)
	}
	return fmt.Sprintf("worker %v failed with exit code %d: %v", e.Command, e.ExitCode, e.Err)
}

// Unwrap returns the underlying error.
func (e *ProcessError) Unwrap() error {
	return e.Err
}
