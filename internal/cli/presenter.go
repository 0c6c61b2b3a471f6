package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/agbru/revfile/internal/dispatch"
	apperrors "github.com/agbru/revfile/internal/errors"
	"github.com/agbru/revfile/internal/format"
	"github.com/agbru/revfile/internal/metrics"
	"github.com/agbru/revfile/internal/ui"
)

// ExecutionInfo is what the banner shows before the batch starts.
type ExecutionInfo struct {
	Method    string
	Pool      string
	Workers   int
	DataDir   string
	Pattern   string
	Files     int
	ChunkSize int
	Strip     string
	MmapCopy  string
}

// PrintExecutionConfig writes the batch banner.
func PrintExecutionConfig(info ExecutionInfo, out io.Writer) {
	s := ui.CurrentStyles()
	fmt.Fprintln(out, s.Title.Render("--- Execution Configuration ---"))
	fmt.Fprintf(out, "%s %s / %s pool (%d workers)\n",
		s.Label.Render("Reversing with"), s.Value.Render(info.Method), s.Value.Render(info.Pool), info.Workers)
	fmt.Fprintf(out, "%s %d file(s) matching %s in %s\n",
		s.Label.Render("Input:"), info.Files, s.Value.Render(info.Pattern), s.Value.Render(info.DataDir))
	switch info.Method {
	case "buffer":
		fmt.Fprintf(out, "%s chunk %s, strip %s\n",
			s.Label.Render("Options:"), format.FormatBytes(uint64(info.ChunkSize)), info.Strip)
	case "mmap":
		fmt.Fprintf(out, "%s copy %s\n", s.Label.Render("Options:"), info.MmapCopy)
	}
}

// DisplayReport writes the outcome of a batch: one `path: reason` line per
// failure, then a summary line.
func DisplayReport(report dispatch.Report, out io.Writer) {
	s := ui.CurrentStyles()
	for _, f := range report.Failures {
		fmt.Fprintln(out, s.Error.Render(FormatFailure(f)))
	}

	elapsed := format.FormatExecutionDuration(report.Elapsed)
	switch {
	case report.OK():
		fmt.Fprintf(out, "%s %d file(s) reversed in %s\n",
			s.Success.Render("✓"), report.Succeeded(), elapsed)
	default:
		fmt.Fprintf(out, "%s %d of %d file(s) reversed in %s, %d failed\n",
			s.Error.Render("✗"), report.Succeeded(), report.Submitted, elapsed, len(report.Failures))
	}
	if report.Err != nil {
		fmt.Fprintln(out, s.Warning.Render(FormatInterruption(report)))
	}
}

// FormatFailure renders a failure as `path: reason`.
func FormatFailure(f dispatch.Failure) string {
	return fmt.Sprintf("%s: %s", f.Path, failureReason(f.Err))
}

// failureReason strips the path and method that JobError and
// DegenerateInputError would otherwise repeat.
func failureReason(err error) string {
	var degenerate apperrors.DegenerateInputError
	if errors.As(err, &degenerate) {
		return degenerate.Reason
	}
	var jobErr apperrors.JobError
	if errors.As(err, &jobErr) && jobErr.Cause != nil {
		return jobErr.Cause.Error()
	}
	return err.Error()
}

// FormatInterruption explains why some files were not processed.
func FormatInterruption(report dispatch.Report) string {
	reason := "interrupted"
	if apperrors.ExitCodeFor(report.Err) == apperrors.ExitErrorTimeout {
		reason = "timed out"
	}
	return fmt.Sprintf("batch %s: %d file(s) skipped", reason, report.Skipped)
}

// DisplayMemoryStats shows memory statistics after a batch.
func DisplayMemoryStats(snap metrics.MemorySnapshot, out io.Writer) {
	s := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", s.Title.Render("Memory Stats:"))
	fmt.Fprintf(out, "  Heap in use:      %s\n", format.FormatBytes(snap.HeapAlloc))
	fmt.Fprintf(out, "  GC cycles:        %d\n", snap.NumGC)
	if !snap.RSSAvailable {
		fmt.Fprintf(out, "  Peak RSS:         %s\n", s.Dim.Render("unavailable"))
		return
	}
	fmt.Fprintf(out, "  Peak RSS:         %s\n", format.FormatBytes(snap.PeakRSS))
	fmt.Fprintf(out, "  Peak child RSS:   %s\n", format.FormatBytes(snap.PeakChildRSS))
}
