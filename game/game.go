package game

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

// Game represents the main game state
type Game struct {
	config   Config
	sim      *Simulation
	clock    *FrameClock
	camera   *Camera
	renderer *Renderer
	debug    DebugState
	log      *zap.Logger

	// Performance profiling, nil unless stall profiling is enabled
	profiler *Profiler
}

// NewGame creates a game on the given level
func NewGame(config Config, grid *TileGrid, log *zap.Logger) (*Game, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	player, err := config.NewPlayer()
	if err != nil {
		return nil, fmt.Errorf("create player: %w", err)
	}
	sprites, err := LoadSprites(config)
	if err != nil {
		return nil, err
	}

	camera := NewCamera(config.Display.ScreenWidth, config.Display.ScreenHeight)
	g := &Game{
		config:   config,
		sim:      NewSimulation(grid, player, config.Physics, config.World.TileSize, NewKeyboardInput(), log),
		clock:    NewFrameClock(RealTimeProvider{}, config.Clock.MinTick, config.Clock.MaxTick),
		camera:   camera,
		renderer: NewRenderer(camera, sprites),
		debug:    DebugState{ShowHUD: config.Debug.ShowHUD},
		log:      log,
	}

	if config.Debug.ProfileStalls {
		g.profiler, err = NewProfiler(config.Debug.ProfilesDir, log)
		if err != nil {
			return nil, err
		}
	}

	camera.Follow(player, grid.PixelWidth(config.World.TileSize))
	log.Info("game ready",
		zap.Int("level_width", grid.Width()),
		zap.Int("level_height", grid.Height()),
		zap.Int("spawn_x", player.X),
		zap.Int("spawn_y", player.Y))
	return g, nil
}

// Simulation exposes the running simulation
func (g *Game) Simulation() *Simulation {
	return g.sim
}

// respawnPlayer puts the player back at the configured spawn
func (g *Game) respawnPlayer() {
	g.sim.Respawn(g.config.Player.SpawnX, g.config.Player.SpawnY)
	g.clock.Reset()
}

// Update polls the frame clock and runs at most one engine tick
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawnPlayer()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	dt, stalled, ok := g.clock.Poll()
	if !ok {
		return nil
	}
	if stalled {
		g.onStall()
	}

	g.sim.Step(dt)
	g.camera.Follow(g.sim.Player, g.sim.Grid.PixelWidth(g.sim.TileSize))
	return nil
}

// onStall logs a capped interval and, when enabled, captures a profile
func (g *Game) onStall() {
	g.log.Warn("frame stall", zap.Int("stalls", g.clock.Stalls), zap.Duration("capped_to", g.config.Clock.MaxTick))
	if g.profiler == nil {
		return
	}
	reason := fmt.Sprintf("stall%d-tick%d", g.clock.Stalls, g.sim.Ticks)
	if err := g.profiler.CaptureProfile(reason); err != nil {
		g.log.Debug("profile skipped", zap.Error(err))
	}
}

// Draw renders the game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Render(screen, g.sim.Grid, g.sim.Player, g.sim.TileSize)
	if g.debug.ShowHUD {
		g.renderer.RenderHUD(screen, g.sim.Player, g.sim.Ticks)
	}
}

// Layout returns the game's screen size
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.config.Display.ScreenWidth, g.config.Display.ScreenHeight
}
