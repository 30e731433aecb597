package testutil

import (
	"sync"
	"time"
)

// FixedStart is the instant deterministic tests derive their timestamps from.
var FixedStart = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

// Clock is a deterministic stepping wall clock for tests.
//
// Each call to Now returns the current instant and advances it by a fixed
// step, so records created in sequence get distinct, predictable timestamps
// without touching the real clock.
//
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Clock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewClock creates a clock starting at start, advancing by step per read.
// A zero start uses FixedStart.
func NewClock(start time.Time, step time.Duration) *Clock {
	if start.IsZero() {
		start = FixedStart
	}
	return &Clock{now: start, step: step}
}

// Now returns the current instant and advances the clock.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now
	c.now = c.now.Add(c.step)
	return now
}

// Peek returns the current instant without advancing.
func (c *Clock) Peek() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Set rewinds or advances the clock to a specific instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}
