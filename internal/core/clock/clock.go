// Package clock supplies the current instant to drivers of the round timer.
package clock

import "time"

// Clock provides the current time. Production code uses System; tests use
// clocktest.FakeClock.
type Clock interface {
	Now() time.Time
}

// System implements Clock with time.Now. The returned instants carry a
// monotonic reading, so differences between them ignore wall clock jumps.
type System struct{}

// Now returns time.Now().
func (System) Now() time.Time {
	return time.Now()
}

var _ Clock = System{}
