// Package dispatch applies one reversal strategy to a batch of files.
//
// It discovers the input files, turns each distinct path into exactly one
// job, submits the jobs to an Executor and waits for all of them. Per-job
// failures never stop the batch; they are collected into the Report together
// with any cancellation of the batch itself.
package dispatch
