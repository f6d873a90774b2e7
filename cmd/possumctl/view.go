package main

import "possum/game"

// view maps the level to terminal cells, one cell per tile. It scrolls
// horizontally with the same camera the window uses and keeps the world floor
// on the bottom row.
type view struct {
	camera   *game.Camera
	tileSize int
	cols     int
	rows     int
}

func newView(cols, rows, tileSize int) *view {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &view{
		camera:   game.NewCamera(cols*tileSize, rows*tileSize),
		tileSize: tileSize,
		cols:     cols,
		rows:     rows,
	}
}

// frame renders the visible tiles and the player's collision box, top row first.
// '#' is solid, '+' decoration, '<' '>' the player by facing and '^' airborne.
func (v *view) frame(grid *game.TileGrid, p *game.Character) [][]rune {
	ts := v.tileSize
	v.camera.Follow(p, grid.PixelWidth(ts))
	first := v.camera.OffsetX / ts

	out := make([][]rune, v.rows)
	for r := range out {
		out[r] = make([]rune, v.cols)
		y := v.row(r)
		for c := range out[r] {
			x := first + c
			ch := ' '
			switch {
			case grid.Solid(x, y):
				ch = '#'
			case grid.Occupied(x, y, game.LayerBackFar) != 0,
				grid.Occupied(x, y, game.LayerBackNear) != 0,
				grid.Occupied(x, y, game.LayerForeground) != 0:
				ch = '+'
			}
			out[r][c] = ch
		}
	}

	body := '>'
	if p.Facing == game.FacingLeft {
		body = '<'
	}
	if p.SpriteState == game.StateFlying {
		body = '^'
	}
	in := p.Insets
	x0 := (p.X+in.Left)/ts - first
	x1 := (p.X+p.Width-in.Right-1)/ts - first
	y0 := (p.Y + in.Down) / ts
	y1 := (p.Y + p.Height - in.Up - 1) / ts
	for y := y0; y <= y1; y++ {
		r := v.row(y)
		if r < 0 || r >= v.rows {
			continue
		}
		for c := x0; c <= x1; c++ {
			if c >= 0 && c < v.cols {
				out[r][c] = body
			}
		}
	}
	return out
}

// row converts between a world tile row and a screen row; the mapping is its
// own inverse
func (v *view) row(y int) int {
	return v.rows - 1 - y
}
