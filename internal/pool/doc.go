// Package pool runs reversal jobs with bounded concurrency.
//
// A Pool admits at most Capacity jobs at a time and hands each one to a
// Runner. The runner decides what a worker is:
//   - InProcessRunner: a goroutine in this process ("thread" pool)
//   - SubprocessRunner: a child process re-executing this binary with the
//     hidden WorkerCommand ("process" pool)
//
// Submit blocks while the pool is full and gives up when its context is
// done, which is how a cancelled batch stops submitting. Jobs that already
// started always run to completion.
package pool
