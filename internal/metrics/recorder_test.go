package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecorder_ObserveJob(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.ObserveJob("buffer", "thread", 3*time.Millisecond, 6, nil)
	r.ObserveJob("buffer", "thread", 5*time.Millisecond, 6, nil)
	r.ObserveJob("mmap", "process", time.Millisecond, 0, errors.New("zero-length"))

	tests := []struct {
		name   string
		labels []string
		want   float64
	}{
		{"buffer ok", []string{"buffer", "thread", StatusOK}, 2},
		{"mmap failed", []string{"mmap", "process", StatusFailed}, 1},
		{"mmap ok", []string{"mmap", "process", StatusOK}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := testutil.ToFloat64(r.jobs.WithLabelValues(tt.labels...)); got != tt.want {
				t.Errorf("jobs_total%v = %v, want %v", tt.labels, got, tt.want)
			}
		})
	}

	if got := testutil.ToFloat64(r.bytes.WithLabelValues("buffer", "thread")); got != 12 {
		t.Errorf("input_bytes_total = %v, want 12", got)
	}
	if n := testutil.CollectAndCount(r.duration); n != 2 {
		t.Errorf("duration series = %d, want 2", n)
	}
}

func TestRecorder_ObserveMemory(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.ObserveMemory(MemorySnapshot{})
	if n := testutil.CollectAndCount(r.peakRSS); n != 0 {
		t.Errorf("unavailable RSS should not be exported, got %d series", n)
	}

	r.ObserveMemory(MemorySnapshot{RSSAvailable: true, PeakRSS: 4096, PeakChildRSS: 1024})
	if got := testutil.ToFloat64(r.peakRSS.WithLabelValues("self")); got != 4096 {
		t.Errorf("peak_rss_bytes{scope=self} = %v, want 4096", got)
	}
	if got := testutil.ToFloat64(r.peakRSS.WithLabelValues("children")); got != 1024 {
		t.Errorf("peak_rss_bytes{scope=children} = %v, want 1024", got)
	}
}

func TestRecorder_WriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.ObserveJob("naive", "thread", time.Millisecond, 4, nil)
	path := filepath.Join(t.TempDir(), "revfile.prom")

	if err := r.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	body := string(data)
	for _, want := range []string{
		`revfile_jobs_total{method="naive",pool="thread",status="ok"} 1`,
		"revfile_job_duration_seconds_bucket",
		`revfile_input_bytes_total{method="naive",pool="thread"} 4`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("textfile should contain %q\n%s", want, body)
		}
	}
}

func TestRecorders_AreIndependent(t *testing.T) {
	t.Parallel()

	a, b := NewRecorder(), NewRecorder()
	a.ObserveJob("naive", "thread", time.Millisecond, 1, nil)
	if got := testutil.ToFloat64(b.jobs.WithLabelValues("naive", "thread", StatusOK)); got != 0 {
		t.Errorf("second recorder saw %v jobs, want 0", got)
	}
}
