// Package clocktest provides a deterministic Clock for tests.
package clocktest

import (
	"sync"
	"time"

	"tomato/internal/core/clock"
)

// FakeClock is an advanceable clock. Use Advance and Set to move time instead
// of creating new instances.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewFakeClock creates a FakeClock set to the given time.
func NewFakeClock(start time.Time) *FakeClock {
	return &FakeClock{current: start}
}

// Now returns the fake clock's current time.
func (fake *FakeClock) Now() time.Time {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	return fake.current
}

// Advance moves the clock by delta. A negative delta simulates a rollback.
func (fake *FakeClock) Advance(delta time.Duration) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.current = fake.current.Add(delta)
}

// Set changes the clock to a specific time.
func (fake *FakeClock) Set(current time.Time) {
	fake.mu.Lock()
	defer fake.mu.Unlock()
	fake.current = current
}

var _ clock.Clock = (*FakeClock)(nil)
