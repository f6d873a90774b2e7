package level

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"possum/game"
)

// Tiles placed by Parse
const (
	SolidTile      = 1
	BackdropTile   = 2
	ForegroundTile = 3
)

// Parse builds a level from text rows, top row first:
// '#' solid, 'b' backdrop, 'f' foreground, anything else empty.
// Rows may differ in length; the widest row sets the width.
func Parse(rows []string) (*game.TileGrid, error) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r))
	}
	grid, err := NewEmpty(width, len(rows))
	if err != nil {
		return nil, err
	}
	for i, r := range rows {
		y := len(rows) - 1 - i
		for x, ch := range []byte(r) {
			switch ch {
			case '#':
				grid.Set(x, y, game.LayerCollision, SolidTile)
			case 'b':
				grid.Set(x, y, game.LayerBackNear, BackdropTile)
			case 'f':
				grid.Set(x, y, game.LayerForeground, ForegroundTile)
			}
		}
	}
	return grid, nil
}

// ParseString splits s into lines and parses them. Blank lines before the
// first row and after the last are dropped; blank lines between rows are
// empty rows of air.
func ParseString(s string) (*game.TileGrid, error) {
	var rows []string
	sc := bufio.NewScanner(strings.NewReader(s))
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), " \t\r"))
	}
	for len(rows) > 0 && rows[0] == "" {
		rows = rows[1:]
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return Parse(rows)
}

// Dump prints the level top row first: '#' for solid cells, '+' for cells with
// decoration only, '.' for empty ones
func Dump(w io.Writer, grid *game.TileGrid) error {
	bw := bufio.NewWriter(w)
	for y := grid.Height() - 1; y >= 0; y-- {
		for x := 0; x < grid.Width(); x++ {
			ch := byte('.')
			switch {
			case grid.Solid(x, y):
				ch = '#'
			case grid.Occupied(x, y, game.LayerBackFar) != 0,
				grid.Occupied(x, y, game.LayerBackNear) != 0,
				grid.Occupied(x, y, game.LayerForeground) != 0:
				ch = '+'
			}
			bw.WriteByte(ch)
		}
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("dump level: %w", err)
	}
	return nil
}
