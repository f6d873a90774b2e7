package game

// Fixed-point unit: velocities and sub-pixel deltas are stored in millionths of a
// pixel. A velocity of Micro means one pixel per millisecond.
const (
	Micro = 1_000_000

	// PositionCeiling stops runaway positions if something upstream misbehaves
	PositionCeiling = 0xFFFFFFF
)

// clamp64 limits v to [lo, hi]
func clamp64(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// approachZero moves v toward zero by amount without crossing it
func approachZero(v, amount int64) int64 {
	if v > 0 {
		v -= amount
		if v < 0 {
			v = 0
		}
	} else if v < 0 {
		v += amount
		if v > 0 {
			v = 0
		}
	}
	return v
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// stepBudget bounds the single-pixel steps one tick may take on an axis.
// The carried remainder is always below one pixel, so |vel*dt|/Micro + 1 covers it.
func stepBudget(vel, dt int64) int64 {
	return abs64(vel*dt)/Micro + 1
}
