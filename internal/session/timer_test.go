package session

import (
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func TestStopReportsElapsedSeconds(t *testing.T) {
	clock := &fakeClock{now: time.Unix(100, 0)}
	timer := NewTimer(clock)

	s := timer.Start()
	if !s.Active() {
		t.Fatalf("expected active session")
	}
	clock.advance(12*time.Second + 500*time.Millisecond)
	elapsed, ok := timer.Stop(s)
	if !ok {
		t.Fatalf("expected stop to report elapsed time")
	}
	if elapsed != 12.5 {
		t.Fatalf("expected 12.5s, got %v", elapsed)
	}
	if got := FormatSeconds(elapsed); got != "12.50" {
		t.Fatalf("unexpected formatted elapsed %q", got)
	}
}

func TestStopIdleIsNoop(t *testing.T) {
	timer := NewTimer(&fakeClock{now: time.Unix(0, 0)})
	var s Session
	if s.Active() {
		t.Fatalf("zero session must be idle")
	}
	elapsed, ok := timer.Stop(s)
	if ok || elapsed != 0 {
		t.Fatalf("expected idle stop, got %v %v", elapsed, ok)
	}
}

func TestStartTwiceResetsClock(t *testing.T) {
	clock := &fakeClock{now: time.Unix(0, 0)}
	timer := NewTimer(clock)
	timer.Start()
	clock.advance(10 * time.Second)
	s := timer.Start()
	clock.advance(2 * time.Second)
	elapsed, ok := timer.Stop(s)
	if !ok || elapsed != 2 {
		t.Fatalf("expected 2s after restart, got %v %v", elapsed, ok)
	}
}

func TestElapsedNeverNegative(t *testing.T) {
	clock := &fakeClock{now: time.Unix(50, 0)}
	timer := NewTimer(clock)
	s := timer.Start()
	clock.advance(-5 * time.Second)
	if got := timer.Elapsed(s); got != 0 {
		t.Fatalf("expected 0 for clock going backwards, got %v", got)
	}
}

func TestSystemClockIsMonotonic(t *testing.T) {
	timer := NewTimer(nil)
	s := timer.Start()
	if timer.Elapsed(s) < 0 {
		t.Fatalf("elapsed must not be negative")
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		0:     "0.00",
		1.5:   "1.50",
		30:    "30.00",
		2.999: "3.00",
	}
	for in, want := range cases {
		if got := FormatSeconds(in); got != want {
			t.Fatalf("FormatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}
