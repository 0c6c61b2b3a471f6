package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "revfile"

// Status label values.
const (
	StatusOK     = "ok"
	StatusFailed = "failed"
)

// Recorder accumulates per-job metrics in its own registry, so several
// batches in one process (or one test binary) never collide.
type Recorder struct {
	registry *prometheus.Registry

	jobs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	bytes    *prometheus.CounterVec
	peakRSS  *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all collectors registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		jobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Reversal jobs finished, by method, pool and status.",
		}, []string{"method", "pool", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Wall time of a single reversal job.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 10),
		}, []string{"method", "pool"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "input_bytes_total",
			Help:      "Input bytes reversed successfully.",
		}, []string{"method", "pool"}),
		peakRSS: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "peak_rss_bytes",
			Help:      "Peak resident set size at the end of the batch.",
		}, []string{"scope"}),
	}
	r.registry.MustRegister(r.jobs, r.duration, r.bytes, r.peakRSS)
	return r
}

// ObserveJob records one finished job.
func (r *Recorder) ObserveJob(method, kind string, d time.Duration, size int64, err error) {
	status := StatusOK
	if err != nil {
		status = StatusFailed
	}
	r.jobs.WithLabelValues(method, kind, status).Inc()
	r.duration.WithLabelValues(method, kind).Observe(d.Seconds())
	if err == nil && size > 0 {
		r.bytes.WithLabelValues(method, kind).Add(float64(size))
	}
}

// ObserveMemory records the peak RSS figures of a snapshot.
func (r *Recorder) ObserveMemory(snap MemorySnapshot) {
	if !snap.RSSAvailable {
		return
	}
	r.peakRSS.WithLabelValues("self").Set(float64(snap.PeakRSS))
	r.peakRSS.WithLabelValues("children").Set(float64(snap.PeakChildRSS))
}

// WriteTextfile writes the current metrics to path in the Prometheus text
// format. The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
