package cli

import (
	"fmt"
	"io"
	"sync"
)

// BatchProgress shows a spinner with a files-done counter while a batch runs.
// Update is safe for concurrent use and matches dispatch.Config.Progress.
type BatchProgress struct {
	mu      sync.Mutex
	spinner Spinner
	total   int
	running bool
}

// NewBatchProgress creates a progress display for total files on out.
func NewBatchProgress(out io.Writer, total int) *BatchProgress {
	return &BatchProgress{spinner: newSpinner(out), total: total}
}

// Start shows the spinner.
func (p *BatchProgress) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spinner.UpdateSuffix(FormatProgress(0, p.total))
	p.spinner.Start()
	p.running = true
}

// Update records that done of total jobs have finished. A total of zero keeps
// the count given to NewBatchProgress.
func (p *BatchProgress) Update(done, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if total > 0 {
		p.total = total
	}
	p.spinner.UpdateSuffix(FormatProgress(done, p.total))
}

// Stop removes the spinner. It is safe to call more than once.
func (p *BatchProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		p.spinner.Stop()
		p.running = false
	}
}

// FormatProgress renders the spinner suffix for done of total files.
func FormatProgress(done, total int) string {
	var frac float64
	if total > 0 {
		frac = float64(done) / float64(total)
	}
	return fmt.Sprintf(" %s %d/%d files", progressBar(frac, ProgressBarWidth), done, total)
}
