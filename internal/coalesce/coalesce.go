// Package coalesce provides the two time-based coalescing policies the UI
// uses: a debouncer for the category filter and a throttler for refreshes.
//
// Neither type owns a timer. Bubble Tea already schedules work with
// tea.Tick, so the debouncer hands out tickets that the caller attaches to
// its tick message and checks again when the tick arrives. Both types are
// meant to be used from the single Bubble Tea update loop and are not safe
// for concurrent use.
package coalesce

import "time"

// Ticket identifies one scheduled debounce execution.
type Ticket uint64

// Debouncer delays an action until input has been quiet for Wait. Every
// Trigger supersedes the tickets issued before it.
type Debouncer struct {
	Wait time.Duration
	seq  uint64
}

// NewDebouncer returns a Debouncer with the given quiet interval.
func NewDebouncer(wait time.Duration) *Debouncer {
	return &Debouncer{Wait: wait}
}

// Trigger records new input and returns the ticket that should be checked
// after Wait has elapsed.
func (d *Debouncer) Trigger() Ticket {
	d.seq++
	return Ticket(d.seq)
}

// Settled reports whether ticket is still the latest one, i.e. no Trigger
// or Cancel happened since it was issued.
func (d *Debouncer) Settled(ticket Ticket) bool {
	return ticket != 0 && uint64(ticket) == d.seq
}

// Cancel invalidates any outstanding ticket.
func (d *Debouncer) Cancel() {
	d.seq++
}

// Throttler lets an action run at most once per Interval. Calls inside the
// window are dropped, not queued. The window starts at the last accepted
// call.
type Throttler struct {
	Interval time.Duration
	Now      func() time.Time

	last time.Time
}

// NewThrottler returns a Throttler using the wall clock.
func NewThrottler(interval time.Duration) *Throttler {
	return &Throttler{Interval: interval, Now: time.Now}
}

// Allow reports whether the action may run now and, if so, starts a new
// window.
func (t *Throttler) Allow() bool {
	now := t.now()
	if !t.last.IsZero() && now.Sub(t.last) < t.Interval {
		return false
	}
	t.last = now
	return true
}

// Remaining returns how long until the next call would be accepted.
func (t *Throttler) Remaining() time.Duration {
	if t.last.IsZero() {
		return 0
	}
	left := t.Interval - t.now().Sub(t.last)
	if left < 0 {
		return 0
	}
	return left
}

// Reset forgets the last accepted call.
func (t *Throttler) Reset() {
	t.last = time.Time{}
}

func (t *Throttler) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}
