package game

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const redSquare = `<svg xmlns="http://www.w3.org/2000/svg" width="10" height="10" viewBox="0 0 10 10">
  <rect x="0" y="0" width="10" height="10" fill="#ff0000"/>
</svg>`

func TestRasterizeSVG(t *testing.T) {
	img, err := RasterizeSVG([]byte(redSquare), 40, 20)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
	assert.Equal(t, 20, img.Bounds().Dy())

	c := img.RGBAAt(20, 10)
	assert.Greater(t, c.R, uint8(200))
	assert.Equal(t, uint8(255), c.A)
}

func TestRasterizeSVGErrors(t *testing.T) {
	_, err := RasterizeSVG([]byte(redSquare), 0, 10)
	assert.Error(t, err)

	_, err = RasterizeSVG([]byte(`<svg><rect width="1"`), 10, 10)
	assert.Error(t, err)
}

func TestPlaceholderTile(t *testing.T) {
	img := placeholderTile(3, 16)
	assert.Equal(t, 16, img.Bounds().Dx())

	edge := img.RGBAAt(0, 0)
	fill := img.RGBAAt(8, 8)
	assert.Equal(t, uint8(255), fill.A)
	assert.Equal(t, fill.R/2, edge.R)
	assert.NotEqual(t, placeholderTile(4, 16).RGBAAt(8, 8), fill, "tiles are told apart by colour")
}

func TestPlaceholderPlayerFacesDirection(t *testing.T) {
	w, h := 54, 75
	dark := color.RGBA{40, 40, 50, 255}
	eyeY := h/6 + h/10

	right := placeholderPlayer(FacingRight, StateIdleFirst, w, h)
	left := placeholderPlayer(FacingLeft, StateIdleFirst, w, h)
	assert.Equal(t, dark, right.RGBAAt(w-w/3, eyeY))
	assert.NotEqual(t, dark, right.RGBAAt(w/3, eyeY))
	assert.Equal(t, dark, left.RGBAAt(w/3, eyeY))
}
