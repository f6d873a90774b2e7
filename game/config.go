package game

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config holds game configuration
type Config struct {
	Display DisplayConfig `toml:"display"`
	World   WorldConfig   `toml:"world"`
	Player  PlayerConfig  `toml:"player"`
	Physics Tuning        `toml:"physics"`
	Clock   ClockConfig   `toml:"clock"`
	Logging LoggingConfig `toml:"logging"`
	Debug   DebugConfig   `toml:"debug"`
}

// DisplayConfig controls the window
type DisplayConfig struct {
	// ScreenWidth is the window width in pixels
	ScreenWidth int `toml:"screen_width"`

	// ScreenHeight is the window height in pixels
	ScreenHeight int `toml:"screen_height"`

	Title string `toml:"title"`
}

// WorldConfig describes the level
type WorldConfig struct {
	// TileSize is the edge of a square tile in pixels
	TileSize int `toml:"tile_size"`

	// LevelPath is the .dat level file to load
	LevelPath string `toml:"level_path"`

	// TileSheet is an optional PNG with TileCount tiles in a row
	TileSheet string `toml:"tile_sheet"`
	TileCount int    `toml:"tile_count"`
}

// PlayerConfig describes the player body and where it starts
type PlayerConfig struct {
	SpawnX int    `toml:"spawn_x"`
	SpawnY int    `toml:"spawn_y"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Insets Insets `toml:"insets"`

	// Optional sprite sheets, SpriteFrames frames in a row per facing
	SheetLeft  string `toml:"sheet_left"`
	SheetRight string `toml:"sheet_right"`
}

// ClockConfig bounds the tick cadence
type ClockConfig struct {
	MinTick time.Duration `toml:"min_tick"`
	MaxTick time.Duration `toml:"max_tick"`
}

// LoggingConfig selects the zap encoder
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"

	// Output is a file path, or "stderr"/"stdout"; empty means stderr
	Output string `toml:"output"`
}

// DebugConfig holds developer switches
type DebugConfig struct {
	ShowHUD       bool   `toml:"show_hud"`
	ProfileStalls bool   `toml:"profile_stalls"`
	ProfilesDir   string `toml:"profiles_dir"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() Config {
	return Config{
		Display: DisplayConfig{
			ScreenWidth:  640,
			ScreenHeight: 480,
			Title:        "Mike O'Possum",
		},
		World: WorldConfig{
			TileSize:  16,
			LevelPath: "level01.dat",
			TileCount: 64,
		},
		Player: PlayerConfig{
			SpawnX: 18,
			SpawnY: 400,
			Width:  54,
			Height: 75,
			Insets: Insets{Up: 12, Down: 4, Left: 8, Right: 8},
		},
		Physics: DefaultTuning(),
		Clock: ClockConfig{
			MinTick: 20 * time.Millisecond,
			MaxTick: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Debug: DebugConfig{
			ProfilesDir: "profiles",
		},
	}
}

// LoadConfig reads a TOML file over the defaults and validates the result
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate enforces the invariants the engine relies on
func (c Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, fmt.Sprintf(format, args...))
	}

	if c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0 {
		return invalid("screen size %dx%d must be positive", c.Display.ScreenWidth, c.Display.ScreenHeight)
	}
	if c.World.TileSize <= 0 {
		return invalid("tile size %d must be positive", c.World.TileSize)
	}
	if c.World.TileCount <= 0 || c.World.TileCount > 256 {
		return invalid("tile count %d outside 1..256", c.World.TileCount)
	}

	p := c.Player
	if p.Width <= 0 || p.Height <= 0 {
		return invalid("player size %dx%d must be positive", p.Width, p.Height)
	}
	in := p.Insets
	if in.Up < 0 || in.Down < 0 || in.Left < 0 || in.Right < 0 {
		return invalid("player insets %+v must be non-negative", in)
	}
	if in.Left+in.Right >= p.Width || in.Up+in.Down >= p.Height {
		return invalid("player insets %+v leave no collision box in %dx%d", in, p.Width, p.Height)
	}
	if p.SpawnX < 0 || p.SpawnY < 0 {
		return invalid("spawn %d,%d must be non-negative", p.SpawnX, p.SpawnY)
	}

	t := c.Physics
	for name, v := range map[string]int64{
		"gravity":                 t.Gravity,
		"friction_ground":         t.FrictionGround,
		"friction_air":            t.FrictionAir,
		"jump_time_limit":         t.JumpTimeLimit,
		"jump_impulse":            t.JumpImpulse,
		"collision_velocity_loss": t.CollisionVelocityLoss,
		"walk_factor":             t.WalkFactor,
	} {
		if v < 0 {
			return invalid("physics %s %d must not be negative", name, v)
		}
	}
	if t.MaxVelX <= 0 || t.MaxVelY <= 0 {
		return invalid("physics velocity limits %d/%d must be positive", t.MaxVelX, t.MaxVelY)
	}
	if t.CeilingLockout < t.JumpTimeLimit {
		return invalid("physics ceiling_lockout %d must be at least jump_time_limit %d", t.CeilingLockout, t.JumpTimeLimit)
	}

	if c.Clock.MinTick <= 0 || c.Clock.MaxTick < c.Clock.MinTick {
		return invalid("clock ticks min %v max %v", c.Clock.MinTick, c.Clock.MaxTick)
	}
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	return nil
}

// NewPlayer creates the player character described by the config
func (c Config) NewPlayer() (*Character, error) {
	p := c.Player
	return NewCharacter(p.SpawnX, p.SpawnY, p.Width, p.Height, p.Insets)
}
