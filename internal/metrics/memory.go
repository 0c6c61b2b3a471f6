package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc   uint64 // bytes in use by application
	Sys         uint64 // total bytes obtained from OS
	NumGC       uint32 // number of completed GC cycles
	HeapObjects uint64 // number of allocated heap objects

	// PeakRSS is the maximum resident set size of this process, in bytes.
	PeakRSS uint64
	// PeakChildRSS is the largest maximum resident set size among reaped
	// child processes, in bytes. It stays zero for a thread pool.
	PeakChildRSS uint64
	// RSSAvailable is false when the platform has no getrusage.
	RSSAvailable bool
}

// MemoryCollector reads runtime and OS memory statistics.
type MemoryCollector struct {
	rusage func() (self, children uint64, err error)
}

// NewMemoryCollector creates a new memory collector.
func NewMemoryCollector() *MemoryCollector {
	return &MemoryCollector{rusage: PeakRSS}
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	snap := MemorySnapshot{
		HeapAlloc:   m.HeapAlloc,
		Sys:         m.Sys,
		NumGC:       m.NumGC,
		HeapObjects: m.HeapObjects,
	}
	if self, children, err := mc.rusage(); err == nil {
		snap.PeakRSS = self
		snap.PeakChildRSS = children
		snap.RSSAvailable = true
	}
	return snap
}
