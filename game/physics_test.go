package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDt = 20

func TestTickZeroElapsedIsNoop(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 300)
	c.VelX = 120000
	c.VelY = -50000
	c.DeltaX = 400000
	c.AirborneTimer = 40
	before := *c
	tuning := DefaultTuning()

	for _, dt := range []int64{0, -5} {
		res := Tick(grid, c, Intent{Right: true, Jump: true}, dt, testTileSize, &tuning)
		assert.Equal(t, TickResult{}, res)
		assert.Equal(t, before, *c)
	}
}

func TestTickGroundedIdleIsFixedPoint(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 0)
	tuning := DefaultTuning()

	for i := 0; i < 50; i++ {
		res := Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
		require.False(t, res.Airborne)
		require.Equal(t, 0, res.Steps)
	}
	assert.Equal(t, 100, c.X)
	assert.Equal(t, 0, c.Y)
	assert.Zero(t, c.VelX)
	assert.Zero(t, c.VelY)
	assert.Zero(t, c.DeltaX)
	assert.Zero(t, c.DeltaY)
	assert.Zero(t, c.AirborneTimer)
}

func TestTickFreeFallGainsGravityUntilClamp(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 800)
	tuning := DefaultTuning()
	gain := tuning.Gravity * testDt

	for i := int64(1); i <= 40; i++ {
		Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
		want := -gain * i
		if want < -tuning.MaxVelY {
			want = -tuning.MaxVelY
		}
		require.Equal(t, want, c.VelY, "tick %d", i)
		require.Equal(t, i*testDt, c.AirborneTimer)
	}
	assert.Equal(t, -tuning.MaxVelY, c.VelY)
	assert.Greater(t, c.Y, 0)
}

func TestTickFloorInvariant(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 0)
	c.VelY = -600000
	tuning := DefaultTuning()

	res := Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
	assert.Equal(t, 0, c.Y)
	assert.Zero(t, c.VelY)
	assert.True(t, c.Contacts.Below)
	assert.False(t, res.Airborne)

	// Falling from height never goes below the floor
	c.Reset(100, 300)
	for i := 0; i < 200; i++ {
		Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
		require.GreaterOrEqual(t, c.Y, 0)
	}
	assert.Equal(t, 0, c.Y)
	assert.Zero(t, c.VelY)
}

func TestTickLandsOnPlatform(t *testing.T) {
	grid := newTestGrid(t)
	solidRow(grid, 0)
	c := newTestPlayer(t, 18, 100)
	tuning := DefaultTuning()

	for i := 0; i < 100; i++ {
		Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
	}
	assert.Equal(t, 12, c.Y)
	assert.Zero(t, c.VelY)
	assert.True(t, c.Contacts.Below)
	assert.Zero(t, c.AirborneTimer)
}

func TestTickJumpWindowCloses(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 0)
	tuning := DefaultTuning()
	in := Intent{Jump: true}

	exhaustedAt := 0
	airborneThrusts := 0
	for i := 1; i <= 10; i++ {
		wasAirborne := !Probe(c, grid, testTileSize).Below
		res := Tick(grid, c, in, testDt, testTileSize, &tuning)
		if res.JumpExhausted {
			exhaustedAt = i
			break
		}
		if wasAirborne {
			airborneThrusts++
		}
	}

	assert.Equal(t, 7, exhaustedAt)
	assert.Equal(t, tuning.JumpTimeLimit, c.AirborneTimer)
	assert.LessOrEqual(t, airborneThrusts, 5)
	assert.True(t, in.Jump, "the caller's intent is not written back")
	assert.Greater(t, c.Y, 0)
}

func TestTickCeilingEndsJump(t *testing.T) {
	grid := newTestGrid(t)
	solidRow(grid, 10) // pixels 160..175; box top is Y+63
	c := newTestPlayer(t, 100, 90)
	c.VelY = 600000
	tuning := DefaultTuning()

	res := Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
	assert.True(t, res.HitCeiling)
	assert.Equal(t, 96, c.Y)
	assert.Equal(t, tuning.CeilingLockout, c.AirborneTimer)
	assert.Equal(t, int64(600000-36000-40000), c.VelY)

	res = Tick(grid, c, Intent{Jump: true}, testDt, testTileSize, &tuning)
	assert.True(t, res.JumpExhausted)
	assert.Equal(t, 96, c.Y, "pressed against the ceiling")
}

func TestTickWallBleedsVelocity(t *testing.T) {
	grid := newTestGrid(t)
	solidColumn(grid, 5, 0, 10) // pixels 80..95; contact at X = 33
	c := newTestPlayer(t, 20, 0)
	c.VelX = 300000
	tuning := DefaultTuning()
	friction := tuning.FrictionGround * testDt
	bleed := tuning.CollisionVelocityLoss * testDt

	touched := false
	for i := 0; i < 30; i++ {
		prev := c.VelX
		Tick(grid, c, Intent{}, testDt, testTileSize, &tuning)
		require.LessOrEqual(t, c.X, 33, "tick %d", i)

		want := prev - friction
		if c.Contacts.Right {
			touched = true
			want -= bleed
		}
		require.Equal(t, max(want, 0), c.VelX, "tick %d", i)
	}
	assert.True(t, touched)
	assert.Equal(t, 33, c.X)
	assert.Zero(t, c.VelX)
}

func TestTickWalkingIntoWall(t *testing.T) {
	grid := newTestGrid(t)
	solidColumn(grid, 5, 0, 10)
	c := newTestPlayer(t, 20, 0)
	tuning := DefaultTuning()
	walk := tuning.WalkFactor * tuning.FrictionGround * testDt

	for i := 0; i < 500; i++ {
		Tick(grid, c, Intent{Right: true}, testDt, testTileSize, &tuning)
		require.LessOrEqual(t, c.X, 33, "tick %d", i)
	}
	assert.Equal(t, 33, c.X)
	assert.True(t, c.Contacts.Right)
	// The bleed wipes out last tick's push, leaving only this tick's walk force
	assert.Equal(t, walk, c.VelX)
	assert.Equal(t, int64(24000), c.VelX)
}

func TestTickWalkForce(t *testing.T) {
	grid := newTestGrid(t)
	c := newTestPlayer(t, 100, 0)
	tuning := DefaultTuning()

	Tick(grid, c, Intent{Right: true}, testDt, testTileSize, &tuning)
	assert.Equal(t, tuning.WalkFactor*tuning.FrictionGround*testDt, c.VelX)

	c.Reset(100, 0)
	Tick(grid, c, Intent{Left: true, Right: true}, testDt, testTileSize, &tuning)
	assert.Zero(t, c.VelX, "opposite keys cancel")

	c.Reset(100, 400)
	Tick(grid, c, Intent{Left: true}, testDt, testTileSize, &tuning)
	assert.Equal(t, -tuning.WalkFactor*tuning.FrictionAir*testDt, c.VelX, "air control uses air friction")
}

func TestTickInvariantsUnderRandomInput(t *testing.T) {
	grid := newTestGrid(t)
	solidRow(grid, 0)
	solidColumn(grid, 0, 0, MaxGridHeight)
	solidColumn(grid, 30, 1, 6)
	grid.Fill(10, 8, 20, 9, LayerCollision, 1)
	c := newTestPlayer(t, 100, 300)
	tuning := DefaultTuning()
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 5000; i++ {
		in := Intent{
			Left:  rng.Intn(3) == 0,
			Right: rng.Intn(2) == 0,
			Jump:  rng.Intn(4) == 0,
		}
		dt := int64(1 + rng.Intn(100))
		Tick(grid, c, in, dt, testTileSize, &tuning)

		require.LessOrEqual(t, abs64(c.VelX), tuning.MaxVelX, "tick %d", i)
		require.LessOrEqual(t, abs64(c.VelY), tuning.MaxVelY, "tick %d", i)
		require.Less(t, abs64(c.DeltaX), int64(Micro), "tick %d", i)
		require.Less(t, abs64(c.DeltaY), int64(Micro), "tick %d", i)
		require.GreaterOrEqual(t, c.X, 0)
		require.GreaterOrEqual(t, c.Y, 0)
	}
}

func TestStepBudget(t *testing.T) {
	assert.Equal(t, int64(1), stepBudget(0, 20))
	assert.Equal(t, int64(13), stepBudget(600000, 20))
	assert.Equal(t, int64(13), stepBudget(-600000, 20))
	assert.Equal(t, int64(61), stepBudget(600000, 100))
}

func TestApproachZero(t *testing.T) {
	assert.Equal(t, int64(5), approachZero(10, 5))
	assert.Equal(t, int64(0), approachZero(10, 50))
	assert.Equal(t, int64(-5), approachZero(-10, 5))
	assert.Equal(t, int64(0), approachZero(-10, 50))
	assert.Equal(t, int64(0), approachZero(0, 50))
}
