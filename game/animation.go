package game

// Animation timing in ms
const (
	idleFrameMs = 200
	walkFrameMs = 160

	// Durations forced on entering a cycle so the next check advances at once,
	// wrapping onto the cycle's first frame
	idleEnterMs = 300
	walkEnterMs = 240
)

// Animate picks the sprite state and facing for the frame that follows a tick.
// Right wins when both horizontal keys are held.
func Animate(c *Character, in Intent, dt int64) {
	c.StateDuration += dt

	if in.Right {
		c.Facing = FacingRight
	} else if in.Left {
		c.Facing = FacingLeft
	}

	if !c.Contacts.Below {
		c.SpriteState = StateFlying
		c.StateDuration = 0
		return
	}

	if c.VelX == 0 && c.VelY == 0 {
		if c.SpriteState > StateIdleLast {
			c.SpriteState = StateIdleLast
			c.StateDuration = idleEnterMs
		}
		if c.StateDuration >= idleFrameMs {
			c.StateDuration -= idleFrameMs
			c.SpriteState++
			if c.SpriteState > StateIdleLast {
				c.SpriteState = StateIdleFirst
			}
		}
		return
	}

	if c.SpriteState < StateWalkFirst || c.SpriteState > StateWalkLast {
		c.SpriteState = StateWalkLast
		c.StateDuration = walkEnterMs
	}
	if c.StateDuration >= walkFrameMs {
		c.StateDuration -= walkFrameMs
		c.SpriteState++
		if c.SpriteState > StateWalkLast {
			c.SpriteState = StateWalkFirst
		}
	}
}
