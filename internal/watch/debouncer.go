package watch

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of triggers into one call that runs after the
// burst has been quiet for the delay.
type Debouncer struct {
	delay time.Duration
	timer *time.Timer
	mu    sync.Mutex
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger schedules fn, cancelling a call scheduled by an earlier trigger
// that has not fired yet.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Stop cancels the pending call, if any.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
