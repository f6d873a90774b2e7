package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// Sprites holds the player animation frames for both facings and the tile set
type Sprites struct {
	player [2][SpriteFrames]*ebiten.Image
	tiles  []*ebiten.Image
}

// LoadSprites loads the sheets named in the config, generating placeholders for
// any that are not set
func LoadSprites(cfg Config) (*Sprites, error) {
	s := &Sprites{}
	p := cfg.Player

	sheets := [2]string{FacingLeft: p.SheetLeft, FacingRight: p.SheetRight}
	for dir, path := range sheets {
		if path == "" {
			for i := 0; i < SpriteFrames; i++ {
				s.player[dir][i] = ebiten.NewImageFromImage(placeholderPlayer(Direction(dir), i, p.Width, p.Height))
			}
			continue
		}
		frames, err := LoadSheet(path, p.Width, p.Height, SpriteFrames)
		if err != nil {
			return nil, err
		}
		copy(s.player[dir][:], frames)
	}

	ts := cfg.World.TileSize
	if cfg.World.TileSheet != "" {
		tiles, err := LoadSheet(cfg.World.TileSheet, ts, ts, cfg.World.TileCount)
		if err != nil {
			return nil, err
		}
		s.tiles = tiles
	} else {
		s.tiles = make([]*ebiten.Image, cfg.World.TileCount)
		for i := range s.tiles {
			s.tiles[i] = ebiten.NewImageFromImage(placeholderTile(i, ts))
		}
	}
	return s, nil
}

// LoadSheet slices count frames of width x height from a horizontal strip.
// PNG sheets are used as is; SVG sheets are rasterized to exactly count frames.
func LoadSheet(path string, width, height, count int) ([]*ebiten.Image, error) {
	var sheet *ebiten.Image
	if strings.EqualFold(filepath.Ext(path), ".svg") {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load sprite sheet %s: %w", path, err)
		}
		img, err := RasterizeSVG(data, width*count, height)
		if err != nil {
			return nil, fmt.Errorf("sprite sheet %s: %w", path, err)
		}
		sheet = ebiten.NewImageFromImage(img)
	} else {
		var err error
		sheet, _, err = ebitenutil.NewImageFromFile(path)
		if err != nil {
			return nil, fmt.Errorf("load sprite sheet %s: %w", path, err)
		}
	}
	b := sheet.Bounds()
	if b.Dx() < width*count || b.Dy() < height {
		return nil, fmt.Errorf("sprite sheet %s is %dx%d, need %dx%d", path, b.Dx(), b.Dy(), width*count, height)
	}
	frames := make([]*ebiten.Image, count)
	for i := range frames {
		rect := image.Rect(i*width, 0, (i+1)*width, height).Add(b.Min)
		frames[i] = sheet.SubImage(rect).(*ebiten.Image)
	}
	return frames, nil
}

// RasterizeSVG renders SVG data into a width x height RGBA image
func RasterizeSVG(data []byte, width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("svg target %dx%d must be positive", width, height)
	}
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse svg: %w", err)
	}
	icon.SetTarget(0, 0, float64(width), float64(height))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)
	return img, nil
}

// PlayerFrame returns the frame for a facing and sprite state
func (s *Sprites) PlayerFrame(dir Direction, state int) *ebiten.Image {
	if state < 0 || state >= SpriteFrames {
		state = StateIdleFirst
	}
	return s.player[dir&1][state]
}

// Tile returns the image for a tile index, wrapping indices past the set
func (s *Sprites) Tile(index uint8) *ebiten.Image {
	return s.tiles[int(index)%len(s.tiles)]
}

// placeholderTile draws a bordered square whose colour depends on the index
func placeholderTile(index, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	fill := color.RGBA{
		R: uint8(60 + (index*47)%160),
		G: uint8(60 + (index*83)%160),
		B: uint8(60 + (index*29)%160),
		A: 255,
	}
	edge := color.RGBA{fill.R / 2, fill.G / 2, fill.B / 2, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				img.Set(x, y, edge)
			} else {
				img.Set(x, y, fill)
			}
		}
	}
	return img
}

// placeholderPlayer draws a grey body with an eye on the facing side. Walk frames
// shift the feet; the flying frame spreads them.
func placeholderPlayer(dir Direction, state, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	body := color.RGBA{150, 150, 160, 255}
	dark := color.RGBA{40, 40, 50, 255}

	top := height / 6
	feet := height - height/8
	for y := top; y < feet; y++ {
		for x := width / 6; x < width-width/6; x++ {
			img.Set(x, y, body)
		}
	}

	// Breathing bob for idle frames
	if state <= StateIdleLast && state%2 == 1 {
		for x := width / 6; x < width-width/6; x++ {
			img.Set(x, top, color.Transparent)
		}
	}

	eyeX := width - width/3
	if dir == FacingLeft {
		eyeX = width / 3
	}
	for y := top + height/10; y < top+height/10+3; y++ {
		for x := eyeX - 1; x <= eyeX+1; x++ {
			img.Set(x, y, dark)
		}
	}

	stride := 0
	switch {
	case state >= StateWalkFirst && state <= StateWalkLast:
		stride = (state - StateWalkFirst - 1) * width / 12
	case state == StateFlying:
		stride = width / 6
	}
	left := width/3 - stride
	right := width - width/3 + stride
	for y := feet; y < height; y++ {
		for _, fx := range []int{left, right} {
			for x := fx - 2; x <= fx+2; x++ {
				if x >= 0 && x < width {
					img.Set(x, y, dark)
				}
			}
		}
	}
	return img
}
