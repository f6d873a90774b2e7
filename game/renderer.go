package game

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Camera is the horizontal viewport into the world. The world's Y axis points
// up; the screen's points down.
type Camera struct {
	// OffsetX is the world X of the left screen edge
	OffsetX int

	Width  int // viewport width
	Height int // viewport height
}

// NewCamera creates a new camera
func NewCamera(width, height int) *Camera {
	return &Camera{Width: width, Height: height}
}

// Follow centres the camera on the character, clamped to the world
func (c *Camera) Follow(p *Character, worldWidth int) {
	off := p.X + p.Width/2 - c.Width/2
	if off < 0 {
		off = 0
	}
	if off >= worldWidth-c.Width {
		off = worldWidth - (c.Width + 1)
	}
	if c.Width >= worldWidth {
		off = 0
	}
	c.OffsetX = off
}

// WorldToScreen converts the bottom-left corner of a box of height h at world
// (x, y) to the screen position of its top-left corner
func (c *Camera) WorldToScreen(x, y, h int) (int, int) {
	return x - c.OffsetX, c.Height - (y + h)
}

// Renderer draws the level and the player
type Renderer struct {
	camera  *Camera
	sprites *Sprites
	face    *text.GoXFace

	// Background fill when no backdrop image is set
	Clear color.Color
}

// NewRenderer creates a new renderer
func NewRenderer(camera *Camera, sprites *Sprites) *Renderer {
	return &Renderer{
		camera:  camera,
		sprites: sprites,
		face:    text.NewGoXFace(basicfont.Face7x13),
		Clear:   color.Black,
	}
}

// Render draws background layers, the player, then the foreground layer
func (r *Renderer) Render(screen *ebiten.Image, grid *TileGrid, p *Character, tileSize int) {
	screen.Fill(r.Clear)
	r.drawTiles(screen, grid, tileSize, LayerBackFar, LayerCollision)

	frame := r.sprites.PlayerFrame(p.Facing, p.SpriteState)
	sx, sy := r.camera.WorldToScreen(p.X, p.Y, p.Height)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(sx), float64(sy))
	screen.DrawImage(frame, op)

	r.drawTiles(screen, grid, tileSize, LayerForeground, LayerForeground)
}

// drawTiles draws the visible columns of layers z1..z2
func (r *Renderer) drawTiles(screen *ebiten.Image, grid *TileGrid, tileSize, z1, z2 int) {
	first := r.camera.OffsetX / tileSize
	last := (r.camera.OffsetX + r.camera.Width) / tileSize
	for y := 0; y < grid.Height(); y++ {
		for x := first; x <= last; x++ {
			for z := z1; z <= z2; z++ {
				tile := grid.Occupied(x, y, z)
				if tile == 0 {
					continue
				}
				sx, sy := r.camera.WorldToScreen(x*tileSize, y*tileSize, tileSize)
				op := &ebiten.DrawImageOptions{}
				op.GeoM.Translate(float64(sx), float64(sy))
				screen.DrawImage(r.sprites.Tile(tile), op)
			}
		}
	}
}

// RenderHUD draws the debug overlay: kinematics, contacts and the collision box
func (r *Renderer) RenderHUD(screen *ebiten.Image, p *Character, ticks int64) {
	n := p.Contacts
	hud := fmt.Sprintf("pos %d,%d  vel %d,%d\ndelta %d,%d  air %dms\nabove %t below %t left %t right %t\nstate %d  ticks %d",
		p.X, p.Y, p.VelX, p.VelY,
		p.DeltaX, p.DeltaY, p.AirborneTimer,
		n.Above, n.Below, n.Left, n.Right,
		p.SpriteState, ticks)
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.LineSpacing = 14
	op.ColorScale.ScaleWithColor(color.RGBA{180, 255, 200, 255})
	text.Draw(screen, hud, r.face, op)

	in := p.Insets
	bx, by := r.camera.WorldToScreen(p.X+in.Left, p.Y+in.Down, p.Height-in.Up-in.Down)
	w := p.Width - in.Left - in.Right
	h := p.Height - in.Up - in.Down
	vector.StrokeRect(screen, float32(bx), float32(by), float32(w), float32(h), 1, color.RGBA{255, 60, 60, 255}, false)
}
