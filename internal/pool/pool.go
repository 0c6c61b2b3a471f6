package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Handle tracks one submitted job.
type Handle struct {
	Job Job

	done     chan struct{}
	err      error
	duration time.Duration
}

// Wait blocks until the job has finished and returns its error.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Duration is the job's run time. It is only meaningful after Wait.
func (h *Handle) Duration() time.Duration {
	<-h.done
	return h.duration
}

// CompletedHandle returns a handle for a job that already finished with err.
func CompletedHandle(job Job, err error) *Handle {
	h := &Handle{Job: job, done: make(chan struct{}), err: err}
	close(h.done)
	return h
}

// Pool is a fixed-capacity set of workers. It is meant to live for one batch:
// create it, Submit every job, then Close.
type Pool struct {
	kind     Kind
	capacity int
	runner   Runner

	sem   *semaphore.Weighted
	group errgroup.Group

	mu     sync.Mutex
	closed bool

	active atomic.Int64
	peak   atomic.Int64
}

// New creates a pool of the given capacity backed by runner.
// A capacity below one is treated as one.
func New(kind Kind, capacity int, runner Runner) *Pool {
	if capacity < 1 {
		capacity = 1
	}
	return &Pool{
		kind:     kind,
		capacity: capacity,
		runner:   runner,
		sem:      semaphore.NewWeighted(int64(capacity)),
	}
}

// NewForKind creates a pool whose runner matches kind.
func NewForKind(kind Kind, capacity int) (*Pool, error) {
	runner, err := NewRunner(kind)
	if err != nil {
		return nil, err
	}
	return New(kind, capacity, runner), nil
}

// Kind returns the pool's isolation model.
func (p *Pool) Kind() Kind { return p.kind }

// Capacity returns the maximum number of concurrent jobs.
func (p *Pool) Capacity() int { return p.capacity }

// Peak returns the highest number of jobs observed running at once.
func (p *Pool) Peak() int { return int(p.peak.Load()) }

// Submit waits for a free slot and starts job on it. It returns ctx's error
// if the context is done before a slot frees up, and ErrClosed after Close.
func (p *Pool) Submit(ctx context.Context, job Job) (*Handle, error) {
	if p.isClosed() {
		return nil, ErrClosed
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		p.sem.Release(1)
		return nil, ErrClosed
	}

	h := &Handle{Job: job, done: make(chan struct{})}
	runCtx := context.WithoutCancel(ctx)
	p.group.Go(func() error {
		defer p.sem.Release(1)
		p.track(1)
		defer p.track(-1)

		start := time.Now()
		h.err = p.run(runCtx, job)
		h.duration = time.Since(start)
		close(h.done)
		// Job errors live on the handle; returning nil keeps siblings running.
		return nil
	})
	return h, nil
}

// Close stops accepting jobs and waits for the running ones to finish.
func (p *Pool) Close() error {
	p.mu.Lock()
	p.closed = true
	p.mu.Unlock()
	return p.group.Wait()
}

func (p *Pool) isClosed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closed
}

func (p *Pool) run(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while reversing %s: %v", job.Path, r)
		}
	}()
	return p.runner.Run(ctx, job)
}

func (p *Pool) track(delta int64) {
	n := p.active.Add(delta)
	for {
		peak := p.peak.Load()
		if n <= peak || p.peak.CompareAndSwap(peak, n) {
			return
		}
	}
}
