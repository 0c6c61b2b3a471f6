// Package metrics collects resource usage and per-job measurements for a
// reversal batch.
//
// MemoryCollector reports runtime heap statistics together with the peak
// resident set size of the process and of its reaped children, which is what
// a process-pool batch needs to compare against a thread-pool one.
// Recorder accumulates job counts, durations and bytes in a private
// Prometheus registry that can be written out as a node-exporter textfile.
package metrics
