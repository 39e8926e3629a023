package wizard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDebouncerFiresOnceAfterQuietPeriod(t *testing.T) {
	sched := &fakeScheduler{}
	calls := 0
	d := NewDebouncer(sched, 2*time.Second, func() { calls++ })

	for i := 0; i < 5; i++ {
		d.Trigger()
		sched.Advance(500 * time.Millisecond)
	}
	assert.Equal(t, 0, calls)
	assert.True(t, d.Pending())

	// last trigger was 500ms ago; the quiet period ends 1500ms from now
	sched.Advance(1499 * time.Millisecond)
	assert.Equal(t, 0, calls)

	sched.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	assert.False(t, d.Pending())

	sched.Advance(10 * time.Second)
	assert.Equal(t, 1, calls)
}

func TestDebouncerCancel(t *testing.T) {
	sched := &fakeScheduler{}
	calls := 0
	d := NewDebouncer(sched, time.Second, func() { calls++ })

	assert.False(t, d.Cancel())
	d.Trigger()
	assert.True(t, d.Cancel())

	sched.Advance(5 * time.Second)
	assert.Equal(t, 0, calls)
}

func TestDebouncerIgnoresSupersededTimer(t *testing.T) {
	sched := &fakeScheduler{}
	calls := 0
	d := NewDebouncer(sched, time.Second, func() { calls++ })

	d.Trigger()
	first := sched.timers[0]
	d.Trigger()

	// a timer that already left the runtime queue when Stop was called
	first.f()
	assert.Equal(t, 0, calls)

	sched.Advance(time.Second)
	assert.Equal(t, 1, calls)
}
