package game

// Probe scans the edges of the character's inset collision box against the
// collision layer and returns the neighbor flags. It reads but never mutates.
func Probe(c *Character, grid *TileGrid, tileSize int) Contacts {
	var n Contacts
	in := c.Insets

	// Below: the world floor is solid
	if c.Y == 0 {
		n.Below = true
		n.BelowLeft = true
		n.BelowRight = true
	} else {
		row := (c.Y + in.Down - 1) / tileSize
		n.Below = scanColumns(c, grid, tileSize, row)
	}

	// Above
	row := (c.Y + c.Height + 1 - in.Up) / tileSize
	n.Above = scanColumns(c, grid, tileSize, row)

	// Left
	col := (c.X + in.Left - 1) / tileSize
	n.Left = scanRows(c, grid, tileSize, col)

	// Right
	col = (c.X + c.Width + 1 - in.Right) / tileSize
	n.Right = scanRows(c, grid, tileSize, col)

	return n
}

// scanColumns checks every pixel column of the inset box against one cell row
func scanColumns(c *Character, grid *TileGrid, tileSize, row int) bool {
	for x := c.Insets.Left; x < c.Width-c.Insets.Right; x++ {
		if grid.Solid((c.X+x)/tileSize, row) {
			return true
		}
	}
	return false
}

// scanRows checks every pixel row of the inset box against one cell column
func scanRows(c *Character, grid *TileGrid, tileSize, col int) bool {
	for y := c.Insets.Down; y < c.Height-c.Insets.Up; y++ {
		if grid.Solid(col, (c.Y+y)/tileSize) {
			return true
		}
	}
	return false
}
