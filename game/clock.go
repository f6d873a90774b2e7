package game

import "time"

// TimeProvider supplies the current time to the frame clock
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider reads the system monotonic clock
type RealTimeProvider struct{}

// Now returns the current time with monotonic clock reading
func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// FrameClock decides when the engine ticks and for how long.
// A tick fires once MinTick has passed since the last one; the reported
// elapsed time is capped at MaxTick so a stall cannot demand unbounded work.
type FrameClock struct {
	provider TimeProvider
	minTick  time.Duration
	maxTick  time.Duration
	last     time.Time

	// Stalls counts ticks whose elapsed time had to be capped
	Stalls int
}

// NewFrameClock creates a frame clock starting now
func NewFrameClock(provider TimeProvider, minTick, maxTick time.Duration) *FrameClock {
	if provider == nil {
		provider = RealTimeProvider{}
	}
	return &FrameClock{
		provider: provider,
		minTick:  minTick,
		maxTick:  maxTick,
		last:     provider.Now(),
	}
}

// Poll returns the elapsed milliseconds for the next tick, or ok=false when it
// is too early to tick. stalled is set when the interval was capped.
func (c *FrameClock) Poll() (elapsedMs int64, stalled bool, ok bool) {
	now := c.provider.Now()
	elapsed := now.Sub(c.last)
	if elapsed < c.minTick {
		return 0, false, false
	}
	c.last = now

	if c.maxTick > 0 && elapsed > c.maxTick {
		elapsed = c.maxTick
		stalled = true
		c.Stalls++
	}
	return elapsed.Milliseconds(), stalled, true
}

// Reset restarts the interval from now, e.g. after a pause or level load
func (c *FrameClock) Reset() {
	c.last = c.provider.Now()
}
