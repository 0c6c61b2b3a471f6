package pool

import (
	"os"
	"testing"
)

// TestMain lets the test binary double as a worker process so the
// SubprocessRunner can re-execute it.
func TestMain(m *testing.M) {
	if IsWorkerInvocation(os.Args) {
		os.Exit(RunWorker(os.Args[2:], os.Stderr))
	}
	os.Exit(m.Run())
}
