package dispatch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"

	"github.com/agbru/revfile/internal/dispatch"
	"github.com/agbru/revfile/internal/dispatch/mocks"
	"github.com/agbru/revfile/internal/pool"
	"github.com/agbru/revfile/internal/reverse"
)

// TestRun_SubmitsEachFileOnce pins the dispatcher's contract with its
// executor: one Submit per file, carrying the configured method and options.
func TestRun_SubmitsEachFileOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)
	opts := reverse.Options{ChunkSize: 64, Strip: reverse.Corrected}

	for _, path := range []string{"data/a.data", "data/b.data"} {
		job := pool.Job{Path: path, Method: reverse.Naive, Options: opts}
		exec.EXPECT().
			Submit(gomock.Any(), job).
			Return(pool.CompletedHandle(job, nil), nil).
			Times(1)
	}

	report := dispatch.Run(context.Background(), exec, []string{"data/a.data", "data/b.data", "data/a.data"},
		dispatch.Config{Method: reverse.Naive, Options: opts})
	if report.Submitted != 2 {
		t.Errorf("Submitted = %d, want 2", report.Submitted)
	}
}

// TestRun_SubmitErrorBecomesFailure checks that a non-context Submit error
// is reported against its file and does not stop the batch.
func TestRun_SubmitErrorBecomesFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	exec := mocks.NewMockExecutor(ctrl)

	bad := pool.Job{Path: "data/bad.data", Method: reverse.Buffer}
	good := pool.Job{Path: "data/good.data", Method: reverse.Buffer}
	gomock.InOrder(
		exec.EXPECT().Submit(gomock.Any(), bad).Return(nil, pool.ErrClosed),
		exec.EXPECT().Submit(gomock.Any(), good).Return(pool.CompletedHandle(good, nil), nil),
	)

	report := dispatch.Run(context.Background(), exec, []string{bad.Path, good.Path}, dispatch.Config{Method: reverse.Buffer})
	if len(report.Failures) != 1 || report.Failures[0].Path != bad.Path {
		t.Fatalf("failures = %v, want only %s", report.Failures, bad.Path)
	}
	if !errors.Is(report.Failures[0].Err, pool.ErrClosed) {
		t.Errorf("failure = %v, want ErrClosed", report.Failures[0].Err)
	}
	if report.Succeeded() != 1 {
		t.Errorf("Succeeded() = %d, want 1", report.Succeeded())
	}
}
