package wizard

import (
	"sync"
	"time"
)

// Timer pending scheduled call
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d. time.AfterFunc in production, a manual clock in tests.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// RealScheduler Scheduler backed by time.AfterFunc
type RealScheduler struct{}

func (RealScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Debouncer calls fn once after delay has passed with no further Trigger calls.
// It holds at most one pending timer; every Trigger stops the previous one
// before arming a new one.
type Debouncer struct {
	mu        sync.Mutex
	scheduler Scheduler
	delay     time.Duration
	fn        func()
	pending   Timer
	// generation guards against a timer that fired concurrently with Stop
	generation uint64
}

func NewDebouncer(scheduler Scheduler, delay time.Duration, fn func()) *Debouncer {
	return &Debouncer{
		scheduler: scheduler,
		delay:     delay,
		fn:        fn,
	}
}

// Trigger (re)starts the quiet period
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending != nil {
		d.pending.Stop()
	}
	d.generation++
	gen := d.generation
	d.pending = d.scheduler.AfterFunc(d.delay, func() { d.fire(gen) })
}

// Cancel drops the pending call, reports whether one was pending
func (d *Debouncer) Cancel() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.pending == nil {
		return false
	}
	d.pending.Stop()
	d.pending = nil
	d.generation++
	return true
}

// Pending reports whether a call is scheduled
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if gen != d.generation {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.fn()
}
