package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Intent is the keyboard snapshot the engine consumes once per tick
type Intent struct {
	Left  bool `yaml:"left"`
	Right bool `yaml:"right"`
	Up    bool `yaml:"up"`
	Down  bool `yaml:"down"`
	Jump  bool `yaml:"jump"`
}

// InputProvider defines where a simulation gets its per-tick intent from
type InputProvider interface {
	// Sample returns the intent for the next tick
	Sample() Intent

	// ExhaustJump is called when the engine reports the jump window is spent.
	// The provider must keep jump off until the jump control is released.
	ExhaustJump()
}

// KeyboardInput reads the intent from the ebiten keyboard state
type KeyboardInput struct {
	// Set once the engine spends the jump; cleared when the key is let go
	jumpSpent bool
}

// NewKeyboardInput creates a new keyboard input provider
func NewKeyboardInput() *KeyboardInput {
	return &KeyboardInput{}
}

// Sample returns the intent from arrow keys, with Alt or Space for jump
func (k *KeyboardInput) Sample() Intent {
	jumpHeld := ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeySpace)
	if !jumpHeld {
		k.jumpSpent = false
	}
	return Intent{
		Left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right: ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Jump:  jumpHeld && !k.jumpSpent,
	}
}

// ExhaustJump latches jump off until the key is released
func (k *KeyboardInput) ExhaustJump() {
	k.jumpSpent = true
}

// HeldInput is an InputProvider fed by discrete key events, for front ends that
// only see key presses (terminals). A press holds the control for HoldMs.
type HeldInput struct {
	// HoldMs is how long a single press keeps a control active
	HoldMs int64

	now       int64
	left      int64
	right     int64
	up        int64
	down      int64
	jump      int64
	jumpSpent bool
}

// NewHeldInput creates a held input with the given hold time
func NewHeldInput(holdMs int64) *HeldInput {
	return &HeldInput{HoldMs: holdMs}
}

// Press marks a control as held from now
func (h *HeldInput) Press(control Control) {
	until := h.now + h.HoldMs
	switch control {
	case ControlLeft:
		h.left = until
		h.right = 0
	case ControlRight:
		h.right = until
		h.left = 0
	case ControlUp:
		h.up = until
	case ControlDown:
		h.down = until
	case ControlJump:
		if h.jump <= h.now {
			h.jumpSpent = false
		}
		h.jump = until
	}
}

// Advance moves the hold clock forward
func (h *HeldInput) Advance(dt int64) {
	h.now += dt
	if h.jump <= h.now {
		h.jumpSpent = false
	}
}

// Sample returns controls whose hold has not expired
func (h *HeldInput) Sample() Intent {
	return Intent{
		Left:  h.left > h.now,
		Right: h.right > h.now,
		Up:    h.up > h.now,
		Down:  h.down > h.now,
		Jump:  h.jump > h.now && !h.jumpSpent,
	}
}

// ExhaustJump latches jump off until the hold runs out
func (h *HeldInput) ExhaustJump() {
	h.jumpSpent = true
}

// Control names one of the five intent controls
type Control int

const (
	ControlLeft Control = iota
	ControlRight
	ControlUp
	ControlDown
	ControlJump
)
