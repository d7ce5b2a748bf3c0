package book

import "time"

// Throttle runs at most one call per interval. The first call in an
// interval runs immediately; later calls in the same interval replace
// each other and only the latest runs, when Flush is called after the
// interval has passed.
type Throttle struct {
	interval time.Duration
	last     time.Time
	ran      bool
	pending  func()
}

// NewThrottle returns a throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Call runs fn now or defers it as the latest pending call.
func (t *Throttle) Call(now time.Time, fn func()) {
	if !t.ran || now.Sub(t.last) >= t.interval {
		t.run(now, fn)
		return
	}
	t.pending = fn
}

// Flush runs the pending call if its interval has elapsed. It reports
// whether a call is still waiting.
func (t *Throttle) Flush(now time.Time) bool {
	if t.pending == nil {
		return false
	}
	if now.Sub(t.last) < t.interval {
		return true
	}
	fn := t.pending
	t.pending = nil
	t.run(now, fn)
	return false
}

// Pending reports whether a deferred call is waiting.
func (t *Throttle) Pending() bool {
	return t.pending != nil
}

func (t *Throttle) run(now time.Time, fn func()) {
	t.last = now
	t.ran = true
	fn()
}

// Cancel drops the pending call, if any.
func (t *Throttle) Cancel() {
	t.pending = nil
}
