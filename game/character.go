package game

import "fmt"

// Direction the sprite is facing
type Direction int

const (
	FacingLeft Direction = iota
	FacingRight
)

// Sprite state indices
const (
	StateIdleFirst = 0
	StateIdleLast  = 3
	StateWalkFirst = 4
	StateWalkLast  = 7
	StateFlying    = 8

	// SpriteFrames is the number of player frames per facing direction
	SpriteFrames = 9
)

// Insets are pixels trimmed from each side of the sprite box before collision
// scanning, so transparent margins of the sprite do not collide
type Insets struct {
	Up    int `toml:"up"`
	Down  int `toml:"down"`
	Left  int `toml:"left"`
	Right int `toml:"right"`
}

// Contacts are the neighbor flags produced by a probe. The diagonal flags are
// reserved: only the world floor sets BelowLeft and BelowRight.
type Contacts struct {
	AboveLeft  bool
	Above      bool
	AboveRight bool
	Right      bool
	BelowRight bool
	Below      bool
	BelowLeft  bool
	Left       bool
}

// Character is the simulated player body
type Character struct {
	// Position in world pixels; Y grows upward and 0 is the world floor
	X, Y int

	// Sub-pixel remainders in millionths of a pixel, always within (-Micro, Micro)
	// once a tick completes
	DeltaX, DeltaY int64

	// Velocity in millionths of a pixel per millisecond
	VelX, VelY int64

	// Milliseconds spent airborne since last grounded
	AirborneTimer int64

	// Sprite box size in pixels
	Width, Height int

	// Collision insets
	Insets Insets

	// Neighbor flags from the most recent probe
	Contacts Contacts

	// Sprite facing, state index and time spent in that state (ms)
	Facing        Direction
	SpriteState   int
	StateDuration int64
}

// NewCharacter creates a character at rest at the given pixel position
func NewCharacter(x, y, width, height int, insets Insets) (*Character, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("sprite size %dx%d must be positive", width, height)
	}
	if insets.Up < 0 || insets.Down < 0 || insets.Left < 0 || insets.Right < 0 {
		return nil, fmt.Errorf("insets %+v must be non-negative", insets)
	}
	if insets.Left+insets.Right >= width || insets.Up+insets.Down >= height {
		return nil, fmt.Errorf("insets %+v leave no collision box in a %dx%d sprite", insets, width, height)
	}
	if x < 0 || y < 0 {
		return nil, fmt.Errorf("start position %d,%d must be non-negative", x, y)
	}
	return &Character{
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Insets: insets,
		Facing: FacingRight,
	}, nil
}

// Reset puts the character back at a position with zeroed kinematics
func (c *Character) Reset(x, y int) {
	c.X = x
	c.Y = y
	c.DeltaX = 0
	c.DeltaY = 0
	c.VelX = 0
	c.VelY = 0
	c.AirborneTimer = 0
	c.Contacts = Contacts{}
	c.SpriteState = StateIdleFirst
	c.StateDuration = 0
}

// Airborne reports whether the last probe found nothing below
func (c *Character) Airborne() bool {
	return !c.Contacts.Below
}
