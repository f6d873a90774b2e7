// Package level reads and writes the binary level format.
//
// A level file starts with a 4 byte header: width and height in cells, each a
// big-endian uint16. Cell records follow row by row from the bottom row (y = 0)
// upward, x ascending within a row. Each record is 4 bytes, the tile index of
// layers 0 to 3.
package level

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"possum/game"
)

var (
	// ErrTooLarge is returned for levels beyond the 64x64 grid
	ErrTooLarge = errors.New("level too large")

	// ErrTruncated is returned when the file ends before all cells are read
	ErrTruncated = errors.New("level truncated")

	// ErrEmpty is returned for a header declaring zero width or height
	ErrEmpty = errors.New("level has no cells")
)

const (
	headerSize = 4
	recordSize = game.LayerCount
)

// Read decodes a level
func Read(r io.Reader) (*game.TileGrid, error) {
	var hdr [headerSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, fmt.Errorf("read header: %w", truncated(err))
	}
	width := int(binary.BigEndian.Uint16(hdr[0:2]))
	height := int(binary.BigEndian.Uint16(hdr[2:4]))
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, width, height)
	}
	if width > game.MaxGridWidth || height > game.MaxGridHeight {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrTooLarge, width, height, game.MaxGridWidth, game.MaxGridHeight)
	}

	grid, err := game.NewTileGrid(width, height)
	if err != nil {
		return nil, err
	}

	br := bufio.NewReader(r)
	var rec [recordSize]byte
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if _, err := io.ReadFull(br, rec[:]); err != nil {
				return nil, fmt.Errorf("read cell %d,%d: %w", x, y, truncated(err))
			}
			for z := 0; z < game.LayerCount; z++ {
				grid.Set(x, y, z, rec[z])
			}
		}
	}
	return grid, nil
}

// Write encodes a level
func Write(w io.Writer, grid *game.TileGrid) error {
	bw := bufio.NewWriter(w)

	var hdr [headerSize]byte
	binary.BigEndian.PutUint16(hdr[0:2], uint16(grid.Width()))
	binary.BigEndian.PutUint16(hdr[2:4], uint16(grid.Height()))
	if _, err := bw.Write(hdr[:]); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var rec [recordSize]byte
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			for z := 0; z < game.LayerCount; z++ {
				rec[z] = grid.Occupied(x, y, z)
			}
			if _, err := bw.Write(rec[:]); err != nil {
				return fmt.Errorf("write cell %d,%d: %w", x, y, err)
			}
		}
	}
	return bw.Flush()
}

// Load reads a level file
func Load(path string) (*game.TileGrid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", path, err)
	}
	defer f.Close()

	grid, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return grid, nil
}

// Save writes a level file, replacing any existing one
func Save(path string, grid *game.TileGrid) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create level %s: %w", path, err)
	}
	if err := Write(f, grid); err != nil {
		f.Close()
		return fmt.Errorf("level %s: %w", path, err)
	}
	return f.Close()
}

// NewEmpty creates a blank level of the given size, as the editor does when no
// file exists yet
func NewEmpty(width, height int) (*game.TileGrid, error) {
	if width > game.MaxGridWidth || height > game.MaxGridHeight {
		return nil, fmt.Errorf("%w: %dx%d exceeds %dx%d", ErrTooLarge, width, height, game.MaxGridWidth, game.MaxGridHeight)
	}
	return game.NewTileGrid(width, height)
}

func truncated(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrTruncated
	}
	return err
}
