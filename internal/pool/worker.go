package pool

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/reverse"
)

// WorkerCommand is the hidden first argument that turns the binary into a
// single-job worker for the process pool.
const WorkerCommand = "__revfile-worker"

// IsWorkerInvocation reports whether args (as in os.Args) start a worker.
func IsWorkerInvocation(args []string) bool {
	return len(args) > 1 && args[1] == WorkerCommand
}

// WorkerArgs encodes job as command-line arguments for a worker process.
func WorkerArgs(job Job) []string {
	return []string{
		WorkerCommand,
		"-method", string(job.Method),
		"-chunk-size", strconv.Itoa(job.Options.ChunkSize),
		"-strip", string(job.Options.Strip),
		"-mmap-copy", string(job.Options.MmapCopy),
		"--", job.Path,
	}
}

// ParseWorkerArgs decodes the arguments following WorkerCommand.
func ParseWorkerArgs(args []string) (Job, error) {
	fs := flag.NewFlagSet(WorkerCommand, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	method := fs.String("method", string(reverse.DefaultMethod), "")
	chunkSize := fs.Int("chunk-size", 0, "")
	strip := fs.String("strip", "", "")
	mmapCopy := fs.String("mmap-copy", "", "")
	if err := fs.Parse(args); err != nil {
		return Job{}, apperrors.NewConfigError("worker: %v", err)
	}
	if fs.NArg() != 1 {
		return Job{}, apperrors.NewConfigError("worker: expected exactly one input path, got %d", fs.NArg())
	}

	m, err := reverse.ParseMethod(*method)
	if err != nil {
		return Job{}, apperrors.NewConfigError("worker: %v", err)
	}
	stripMode, err := reverse.ParseFidelity(*strip)
	if err != nil {
		return Job{}, apperrors.NewConfigError("worker: %v", err)
	}
	copyMode, err := reverse.ParseFidelity(*mmapCopy)
	if err != nil {
		return Job{}, apperrors.NewConfigError("worker: %v", err)
	}

	return Job{
		Path:   fs.Arg(0),
		Method: m,
		Options: reverse.Options{
			ChunkSize: *chunkSize,
			Strip:     stripMode,
			MmapCopy:  copyMode,
		},
	}, nil
}

// RunWorker executes the job described by args (without WorkerCommand) and
// returns the process exit code. Failures are written to stderr.
func RunWorker(args []string, stderr io.Writer) int {
	job, err := ParseWorkerArgs(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return apperrors.ExitErrorConfig
	}
	if err := reverse.Reverse(job.Method, job.Path, job.Options); err != nil {
		fmt.Fprintln(stderr, err)
		return apperrors.ExitErrorJobs
	}
	return apperrors.ExitSuccess
}
