package game

import (
	"go.uber.org/zap"
)

// StepResult is what one simulation step produced
type StepResult struct {
	TickResult

	// Landed and TookOff compare the airborne state with the previous step
	Landed  bool
	TookOff bool
}

// Simulation owns everything one tick needs: the static level, the player body,
// the force constants and the input source. It replaces process-wide state.
type Simulation struct {
	Grid     *TileGrid
	Player   *Character
	Tuning   Tuning
	TileSize int
	Input    InputProvider

	// Ticks counts steps that advanced time
	Ticks int64
	// ElapsedMs is the simulated time so far
	ElapsedMs int64

	log      *zap.Logger
	airborne bool
}

// NewSimulation creates a simulation context. The player is probed once so the
// first step sees correct contact flags.
func NewSimulation(grid *TileGrid, player *Character, tuning Tuning, tileSize int, input InputProvider, log *zap.Logger) *Simulation {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Simulation{
		Grid:     grid,
		Player:   player,
		Tuning:   tuning,
		TileSize: tileSize,
		Input:    input,
		log:      log,
	}
	player.Contacts = Probe(player, grid, tileSize)
	s.airborne = player.Airborne()
	return s
}

// Step samples the input, runs one tick and selects the sprite state.
// A step with dt <= 0 changes nothing.
func (s *Simulation) Step(dt int64) StepResult {
	var in Intent
	if s.Input != nil {
		in = s.Input.Sample()
	}
	return s.StepWith(in, dt)
}

// StepWith runs one step with an explicit intent
func (s *Simulation) StepWith(in Intent, dt int64) StepResult {
	if dt <= 0 {
		return StepResult{TickResult: TickResult{Airborne: s.airborne}}
	}
	p := s.Player

	res := StepResult{TickResult: Tick(s.Grid, p, in, dt, s.TileSize, &s.Tuning)}
	if res.JumpExhausted && s.Input != nil {
		s.Input.ExhaustJump()
	}
	if res.JumpExhausted {
		// the animation sees the jump as released
		in.Jump = false
		s.log.Debug("jump exhausted", zap.Int64("airborne_ms", p.AirborneTimer))
	}
	Animate(p, in, dt)

	res.Landed = s.airborne && !res.Airborne
	res.TookOff = !s.airborne && res.Airborne
	s.airborne = res.Airborne
	s.Ticks++
	s.ElapsedMs += dt

	if res.Landed {
		s.log.Debug("landed", zap.Int("x", p.X), zap.Int("y", p.Y), zap.Int64("elapsed_ms", s.ElapsedMs))
	}
	if res.TookOff {
		s.log.Debug("took off", zap.Int("x", p.X), zap.Int("y", p.Y), zap.Int64("vel_y", p.VelY))
	}
	if res.HitCeiling {
		s.log.Debug("hit ceiling", zap.Int("x", p.X), zap.Int("y", p.Y))
	}
	return res
}

// Respawn puts the player back at a position at rest
func (s *Simulation) Respawn(x, y int) {
	s.Player.Reset(x, y)
	s.Player.Contacts = Probe(s.Player, s.Grid, s.TileSize)
	s.airborne = s.Player.Airborne()
	s.log.Info("respawn", zap.Int("x", x), zap.Int("y", y))
}

// SetGrid swaps the level between ticks
func (s *Simulation) SetGrid(grid *TileGrid) {
	s.Grid = grid
	s.Player.Contacts = Probe(s.Player, grid, s.TileSize)
	s.airborne = s.Player.Airborne()
}
