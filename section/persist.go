// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package section

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// debouncer delays a side effect until input activity pauses, collapsing
// bursts of changes into one effect. Schedule cancels and reschedules any
// pending run; Stop cancels outright (used on unmount, so a stale save
// never fires against a torn-down section); Flush runs a pending effect
// immediately.
type debouncer struct {
	clk   clock.Clock
	delay time.Duration

	mu      sync.Mutex
	timer   *clock.Timer
	pending func()
	stopped bool
}

func newDebouncer(clk clock.Clock, delay time.Duration) *debouncer {
	return &debouncer{clk: clk, delay: delay}
}

// Schedule arranges for fn to run after the delay, replacing any pending
// run. Only the latest fn within the window ever executes.
func (d *debouncer) Schedule(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = fn
	d.timer = d.clk.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) fire() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	d.timer = nil
	stopped := d.stopped
	d.mu.Unlock()

	if fn != nil && !stopped {
		fn()
	}
}

// Flush runs any pending effect now instead of waiting out the delay.
func (d *debouncer) Flush() {
	d.mu.Lock()
	fn := d.pending
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	stopped := d.stopped
	d.mu.Unlock()

	if fn != nil && !stopped {
		fn()
	}
}

// Stop cancels any pending effect and prevents future scheduling.
func (d *debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.pending = nil
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
