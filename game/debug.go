package game

// DebugState holds developer toggles that survive a respawn
type DebugState struct {
	ShowHUD bool // kinematics overlay and collision box
}

// Toggle flips the HUD
func (d *DebugState) Toggle() {
	d.ShowHUD = !d.ShowHUD
}
