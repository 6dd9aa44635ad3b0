package portal

import (
	"sync"
	"time"
)

// DefaultDebounce is the idle time before a search query is applied.
const DefaultDebounce = 300 * time.Millisecond

// Timer is the part of *time.Timer the Debouncer needs.
type Timer interface {
	Stop() bool
}

// Clock abstracts time so debounce timelines can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// SystemClock is the wall clock.
var SystemClock Clock = realClock{}

// Debouncer delivers the most recent input to fn once input has been idle
// for wait. Every input cancels the pending delivery and starts a new idle
// period, except input that arrives when the pending deadline is already due:
// that input joins the due delivery, which then carries the newest value.
type Debouncer struct {
	clock Clock
	wait  time.Duration
	fn    func(string)

	mu       sync.Mutex
	value    string
	deadline time.Time
	armed    bool
	gen      uint64
	timer    Timer
}

func NewDebouncer(clock Clock, wait time.Duration, fn func(string)) *Debouncer {
	if clock == nil {
		clock = SystemClock
	}
	if wait <= 0 {
		wait = DefaultDebounce
	}
	return &Debouncer{clock: clock, wait: wait, fn: fn}
}

// Input records v as the latest value.
func (d *Debouncer) Input(v string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.value = v
	now := d.clock.Now()
	if d.armed && !now.Before(d.deadline) {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.armed = true
	d.deadline = now.Add(d.wait)
	d.timer = d.clock.AfterFunc(d.wait, func() { d.fire(gen) })
}

// Stop cancels any pending delivery.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.armed = false
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	v := d.value
	d.mu.Unlock()
	d.fn(v)
}
