package core

import "time"

// Interval is a host-clocked repeating timer. The host advances it by the
// simulated duration of each tick and it reports how many periods elapsed.
// A stopped interval never fires and keeps no accumulated time.
type Interval struct {
	period  time.Duration
	elapsed time.Duration
	running bool
}

// NewInterval creates a stopped interval with the given period.
func NewInterval(period time.Duration) *Interval {
	return &Interval{period: period}
}

// Start begins counting from zero.
func (iv *Interval) Start() {
	iv.running = true
	iv.elapsed = 0
}

// Stop halts the interval and discards accumulated time.
func (iv *Interval) Stop() {
	iv.running = false
	iv.elapsed = 0
}

// Running reports whether the interval is counting.
func (iv *Interval) Running() bool {
	return iv.running
}

// Period returns the current firing period.
func (iv *Interval) Period() time.Duration {
	return iv.period
}

// SetPeriod changes the firing period. Accumulated time is kept, so a shorter
// period takes effect on the very next Advance.
func (iv *Interval) SetPeriod(d time.Duration) {
	iv.period = d
}

// Advance adds dt to the interval and returns the number of times it fired.
func (iv *Interval) Advance(dt time.Duration) int {
	if !iv.running || iv.period <= 0 {
		return 0
	}
	iv.elapsed += dt
	fired := 0
	for iv.elapsed >= iv.period {
		iv.elapsed -= iv.period
		fired++
	}
	return fired
}

// Delay is a host-clocked one-shot timer holding a single pending callback.
type Delay struct {
	remaining time.Duration
	fn        func()
}

// Schedule arms the delay. An already pending callback is replaced.
func (d *Delay) Schedule(after time.Duration, fn func()) {
	d.remaining = after
	d.fn = fn
}

// Pending reports whether a callback is waiting to fire.
func (d *Delay) Pending() bool {
	return d.fn != nil
}

// Cancel drops the pending callback without running it.
func (d *Delay) Cancel() {
	d.fn = nil
	d.remaining = 0
}

// Advance moves time forward and runs the callback once it is due.
// Returns true if the callback ran.
func (d *Delay) Advance(dt time.Duration) bool {
	if d.fn == nil {
		return false
	}
	d.remaining -= dt
	if d.remaining > 0 {
		return false
	}
	fn := d.fn
	d.fn = nil
	d.remaining = 0
	fn()
	return true
}
