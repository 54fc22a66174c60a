package scheduler

import (
	"sync"
	"time"
)

// Clock is the time source of the scheduler.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock reads the monotonic wall clock and really sleeps.
type SystemClock struct{}

// Now returns the current time with monotonic clock reading
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Sleep pauses the calling goroutine.
func (SystemClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

// ManualClock is a controllable clock for tests. Sleep advances the time
// instead of blocking.
type ManualClock struct {
	mu    sync.RWMutex
	now   time.Time
	slept time.Duration
}

// NewManualClock creates a manual clock starting at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now returns the current mocked time
func (c *ManualClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now
}

// Sleep advances the clock by d.
func (c *ManualClock) Sleep(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
	c.slept += d
}

// Advance moves the clock forward without counting it as sleep, the way a
// slow frame would.
func (c *ManualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// Slept returns the total time passed to Sleep.
func (c *ManualClock) Slept() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.slept
}
