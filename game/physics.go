package game

// Tuning holds the force constants of the integrator. Forces are in millionths
// of a pixel per millisecond, gained or lost per millisecond.
type Tuning struct {
	Gravity               int64 `toml:"gravity"`                 // falling momentum gained per ms airborne
	FrictionGround        int64 `toml:"friction_ground"`         // horizontal momentum lost per ms on ground
	FrictionAir           int64 `toml:"friction_air"`            // horizontal momentum lost per ms in the air
	MaxVelX               int64 `toml:"max_vel_x"`               // horizontal speed limit, both directions
	MaxVelY               int64 `toml:"max_vel_y"`               // vertical speed limit, both directions
	JumpTimeLimit         int64 `toml:"jump_time_limit"`         // ms the jump key may keep thrusting
	JumpImpulse           int64 `toml:"jump_impulse"`            // upward momentum per ms while thrusting
	CollisionVelocityLoss int64 `toml:"collision_velocity_loss"` // momentum lost per ms against an obstacle
	WalkFactor            int64 `toml:"walk_factor"`             // walk force as a multiple of friction
	CeilingLockout        int64 `toml:"ceiling_lockout"`         // airborne timer value forced by a ceiling hit
}

// DefaultTuning returns the constants the game was balanced with
func DefaultTuning() Tuning {
	return Tuning{
		Gravity:               1800,
		FrictionGround:        400,
		FrictionAir:           150,
		MaxVelX:               300000,
		MaxVelY:               600000,
		JumpTimeLimit:         100,
		JumpImpulse:           14000,
		CollisionVelocityLoss: 2000,
		WalkFactor:            3,
		CeilingLockout:        1000,
	}
}

// TickResult reports what happened during one tick
type TickResult struct {
	// JumpExhausted is set when jump was requested but the thrust window is over.
	// Callers should treat the jump key as released until it is pressed again.
	JumpExhausted bool

	// Airborne reports whether the final probe of the tick found nothing below
	Airborne bool

	// HitCeiling is set when an upward collision cut the jump short
	HitCeiling bool

	// Steps counts the single-pixel moves actually taken
	Steps int
}

// Tick advances the character by dt milliseconds against the grid.
// A tick with dt <= 0 leaves the character untouched.
func Tick(grid *TileGrid, c *Character, in Intent, dt int64, tileSize int, t *Tuning) TickResult {
	var res TickResult
	if dt <= 0 {
		return res
	}

	// Airborne classification
	c.Contacts = Probe(c, grid, tileSize)
	airborne := !c.Contacts.Below
	friction := t.FrictionGround
	if airborne {
		c.AirborneTimer += dt
		friction = t.FrictionAir
	} else {
		c.AirborneTimer = 0
	}

	// Velocity to sub-pixel delta
	c.DeltaY += c.VelY * dt
	c.DeltaX += c.VelX * dt

	// Stepped position resolution, re-probing after every pixel
	budget := stepBudget(c.VelY, dt)
	for n := int64(0); c.DeltaY <= -Micro; n++ { // down
		if n >= budget {
			c.DeltaY %= Micro
			break
		}
		c.DeltaY += Micro
		if c.Y > 0 && airborne {
			c.Y--
			res.Steps++
			c.Contacts = Probe(c, grid, tileSize)
			airborne = !c.Contacts.Below
		}
	}
	for n := int64(0); c.DeltaY >= Micro; n++ { // up
		if n >= budget {
			c.DeltaY %= Micro
			break
		}
		c.DeltaY -= Micro
		if c.Y < PositionCeiling && !c.Contacts.Above {
			c.Y++
			res.Steps++
		}
		c.Contacts = Probe(c, grid, tileSize)
	}
	budget = stepBudget(c.VelX, dt)
	for n := int64(0); c.DeltaX >= Micro; n++ { // right
		if n >= budget {
			c.DeltaX %= Micro
			break
		}
		c.DeltaX -= Micro
		if c.X < PositionCeiling && !c.Contacts.Right {
			c.X++
			res.Steps++
		}
		c.Contacts = Probe(c, grid, tileSize)
	}
	for n := int64(0); c.DeltaX <= -Micro; n++ { // left
		if n >= budget {
			c.DeltaX %= Micro
			break
		}
		c.DeltaX += Micro
		if c.X > 0 && !c.Contacts.Left {
			c.X--
			res.Steps++
		}
		c.Contacts = Probe(c, grid, tileSize)
	}

	// Gravity; grounded bodies keep no vertical velocity
	if airborne {
		c.VelY -= t.Gravity * dt
	} else {
		c.VelY = 0
	}

	// Static collision forces
	loss := t.CollisionVelocityLoss * dt
	if c.Contacts.Above && c.VelY > 0 {
		c.VelY = approachZero(c.VelY, loss)
		c.AirborneTimer = t.CeilingLockout // no more jump thrust after a ceiling hit
		res.HitCeiling = true
	}
	if c.Contacts.Below && c.VelY < 0 {
		c.VelY = approachZero(c.VelY, loss)
	}
	if c.Contacts.Left && c.VelX < 0 {
		c.VelX = approachZero(c.VelX, loss)
	}
	if c.Contacts.Right && c.VelX > 0 {
		c.VelX = approachZero(c.VelX, loss)
	}

	// Friction
	c.VelX = approachZero(c.VelX, friction*dt)

	// User impulses
	if in.Jump {
		if c.AirborneTimer < t.JumpTimeLimit {
			c.VelY += t.JumpImpulse * dt
		} else {
			res.JumpExhausted = true
		}
	}
	if in.Left {
		c.VelX -= friction * t.WalkFactor * dt
	}
	if in.Right {
		c.VelX += friction * t.WalkFactor * dt
	}

	c.VelX = clamp64(c.VelX, -t.MaxVelX, t.MaxVelX)
	c.VelY = clamp64(c.VelY, -t.MaxVelY, t.MaxVelY)

	res.Airborne = !c.Contacts.Below
	return res
}
