package game

import "fmt"

// Grid bounds and layer roles
const (
	MaxGridWidth  = 64
	MaxGridHeight = 64
	LayerCount    = 4

	// LayerBackFar and LayerBackNear are decoration drawn behind the player
	LayerBackFar  = 0
	LayerBackNear = 1
	// LayerCollision is the only layer the physics engine treats as solid
	LayerCollision = 2
	// LayerForeground is drawn on top of the player
	LayerForeground = 3
)

// TileGrid is the level's tile map: up to 64x64 cells, four layers per cell.
// Tile index 0 means empty. The engine only ever reads it.
type TileGrid struct {
	// Flat storage indexed by (x*MaxGridHeight+y)*LayerCount+layer
	tiles [MaxGridWidth * MaxGridHeight * LayerCount]uint8

	// Configured size in cells
	width  int
	height int
}

// NewTileGrid creates an empty grid of the given size in cells
func NewTileGrid(width, height int) (*TileGrid, error) {
	if width <= 0 || width > MaxGridWidth || height <= 0 || height > MaxGridHeight {
		return nil, fmt.Errorf("grid size %dx%d outside 1..%dx1..%d", width, height, MaxGridWidth, MaxGridHeight)
	}
	return &TileGrid{width: width, height: height}, nil
}

// Width returns the grid width in cells
func (g *TileGrid) Width() int { return g.width }

// Height returns the grid height in cells
func (g *TileGrid) Height() int { return g.height }

func (g *TileGrid) index(x, y, layer int) (int, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height || layer < 0 || layer >= LayerCount {
		return 0, false
	}
	return (x*MaxGridHeight+y)*LayerCount + layer, true
}

// Occupied returns the tile index at cell (x, y) on a layer, or 0 if the cell is
// outside the grid
func (g *TileGrid) Occupied(x, y, layer int) uint8 {
	i, ok := g.index(x, y, layer)
	if !ok {
		return 0
	}
	return g.tiles[i]
}

// Solid reports whether the collision layer holds a tile at cell (x, y)
func (g *TileGrid) Solid(x, y int) bool {
	return g.Occupied(x, y, LayerCollision) != 0
}

// Set places a tile. Writes outside the grid are ignored and reported as false.
// Mutations must happen between ticks.
func (g *TileGrid) Set(x, y, layer int, tile uint8) bool {
	i, ok := g.index(x, y, layer)
	if !ok {
		return false
	}
	g.tiles[i] = tile
	return true
}

// Fill sets a rectangle of cells [x0,x1)x[y0,y1) on one layer
func (g *TileGrid) Fill(x0, y0, x1, y1, layer int, tile uint8) {
	for x := x0; x < x1; x++ {
		for y := y0; y < y1; y++ {
			g.Set(x, y, layer, tile)
		}
	}
}

// Clear empties every layer of every cell, keeping the size
func (g *TileGrid) Clear() {
	g.tiles = [len(g.tiles)]uint8{}
}

// PixelWidth returns the world width in pixels for a tile size
func (g *TileGrid) PixelWidth(tileSize int) int {
	return g.width * tileSize
}

// PixelHeight returns the world height in pixels for a tile size
func (g *TileGrid) PixelHeight(tileSize int) int {
	return g.height * tileSize
}
