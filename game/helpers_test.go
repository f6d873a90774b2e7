package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const testTileSize = 16

// testInsets matches the default player body: 54x75 with a 38x59 collision box
var testInsets = Insets{Up: 12, Down: 4, Left: 8, Right: 8}

func newTestGrid(t *testing.T) *TileGrid {
	t.Helper()
	grid, err := NewTileGrid(MaxGridWidth, MaxGridHeight)
	require.NoError(t, err)
	return grid
}

func newTestPlayer(t *testing.T, x, y int) *Character {
	t.Helper()
	c, err := NewCharacter(x, y, 54, 75, testInsets)
	require.NoError(t, err)
	return c
}

// solidRow fills a whole row of the collision layer
func solidRow(grid *TileGrid, y int) {
	grid.Fill(0, y, grid.Width(), y+1, LayerCollision, 1)
}

// solidColumn fills rows [y0, y1) of a column of the collision layer
func solidColumn(grid *TileGrid, x, y0, y1 int) {
	grid.Fill(x, y0, x+1, y1, LayerCollision, 1)
}
