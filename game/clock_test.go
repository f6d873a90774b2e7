package game

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// manualTime only moves when the test advances it
type manualTime struct {
	now time.Time
}

func (m *manualTime) Now() time.Time { return m.now }

func (m *manualTime) Advance(d time.Duration) { m.now = m.now.Add(d) }

func TestFrameClockWaitsForMinTick(t *testing.T) {
	manual := &manualTime{now: time.Unix(1000, 0)}
	clock := NewFrameClock(manual, 20*time.Millisecond, 100*time.Millisecond)

	manual.Advance(19 * time.Millisecond)
	_, _, ok := clock.Poll()
	assert.False(t, ok)

	manual.Advance(1 * time.Millisecond)
	dt, stalled, ok := clock.Poll()
	assert.True(t, ok)
	assert.False(t, stalled)
	assert.Equal(t, int64(20), dt)

	// The interval restarts at the last tick
	manual.Advance(35 * time.Millisecond)
	dt, _, ok = clock.Poll()
	assert.True(t, ok)
	assert.Equal(t, int64(35), dt)
}

func TestFrameClockCapsStalls(t *testing.T) {
	manual := &manualTime{now: time.Unix(1000, 0)}
	clock := NewFrameClock(manual, 20*time.Millisecond, 100*time.Millisecond)

	manual.Advance(3 * time.Second)
	dt, stalled, ok := clock.Poll()
	assert.True(t, ok)
	assert.True(t, stalled)
	assert.Equal(t, int64(100), dt)
	assert.Equal(t, 1, clock.Stalls)

	manual.Advance(100 * time.Millisecond)
	dt, stalled, _ = clock.Poll()
	assert.False(t, stalled, "exactly the cap is not a stall")
	assert.Equal(t, int64(100), dt)
}

func TestFrameClockReset(t *testing.T) {
	manual := &manualTime{now: time.Unix(1000, 0)}
	clock := NewFrameClock(manual, 20*time.Millisecond, 100*time.Millisecond)

	manual.Advance(time.Minute)
	clock.Reset()
	manual.Advance(25 * time.Millisecond)

	dt, stalled, ok := clock.Poll()
	assert.True(t, ok)
	assert.False(t, stalled)
	assert.Equal(t, int64(25), dt)
}
