// Package session tracks the timing of a single typing attempt.
package session

import (
	"strconv"
	"time"
)

// Clock supplies timestamps. Implementations must be monotonic.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now, whose monotonic reading keeps Sub unaffected by
// wall-clock adjustments.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Session is one timed attempt. The zero value is idle.
type Session struct {
	startedAt time.Time
	active    bool
}

// Active reports whether the session has been started and not stopped.
func (s Session) Active() bool {
	return s.active
}

// StartedAt returns the start timestamp, zero when idle.
func (s Session) StartedAt() time.Time {
	return s.startedAt
}

// Timer starts and stops sessions against a clock.
type Timer struct {
	clock Clock
}

// NewTimer returns a Timer using clock, or the system clock when nil.
func NewTimer(clock Clock) Timer {
	if clock == nil {
		clock = SystemClock{}
	}
	return Timer{clock: clock}
}

// Start records the current time. Starting again simply resets the clock.
func (t Timer) Start() Session {
	return Session{startedAt: t.now(), active: true}
}

// Stop returns the elapsed seconds of s. ok is false when s is idle, in which
// case there is nothing to report. The caller replaces s with the zero Session.
func (t Timer) Stop(s Session) (elapsed float64, ok bool) {
	if !s.active {
		return 0, false
	}
	return t.Elapsed(s), true
}

// Elapsed returns the running time of s in seconds, zero when idle.
func (t Timer) Elapsed(s Session) float64 {
	if !s.active {
		return 0
	}
	d := t.now().Sub(s.startedAt)
	if d < 0 {
		return 0
	}
	return float64(d.Microseconds()) / 1e6
}

func (t Timer) now() time.Time {
	if t.clock == nil {
		return time.Now()
	}
	return t.clock.Now()
}

// FormatSeconds renders seconds with exactly two decimal places.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 2, 64)
}
