package pngexport

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_Size(t *testing.T) {
	g := raster.Render([]drawing.Shape{drawing.NewRectangle("r", 0, 0, 6, 3)})

	img, err := Render(g, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, (6+4)*8, img.Bounds().Dx())
	assert.Equal(t, (3+4)*14, img.Bounds().Dy())
}

func TestRender_PaintsBorder(t *testing.T) {
	g := raster.Render([]drawing.Shape{drawing.NewRectangle("r", 0, 0, 4, 4)})
	opts := Options{CellWidth: 10, CellHeight: 10, Padding: 1}

	img, err := Render(g, opts)
	require.NoError(t, err)

	isWhite := func(x, y int) bool {
		r, gr, b, _ := img.At(x, y).RGBA()
		return r == 0xffff && gr == 0xffff && b == 0xffff
	}
	assert.True(t, isWhite(2, 2), "padding stays background")
	assert.False(t, isWhite(25, 15), "top border is stroked through the middle of the cell")
	assert.True(t, isWhite(25, 25), "interior stays background")
}

func TestRender_OffsetDrawingLandsInsidePadding(t *testing.T) {
	opts := Options{CellWidth: 10, CellHeight: 10, Padding: 1}
	at := func(x, y int) []color.Color {
		g := raster.Render([]drawing.Shape{drawing.NewRectangle("r", x, y, 4, 4)})
		img, err := Render(g, opts)
		require.NoError(t, err)
		var px []color.Color
		for _, p := range [][2]int{{2, 2}, {15, 15}, {25, 15}, {25, 25}, {45, 45}} {
			px = append(px, img.At(p[0], p[1]))
		}
		return px
	}
	assert.Equal(t, at(0, 0), at(-7, 12))
}

func TestRender_TooLarge(t *testing.T) {
	g := raster.Render([]drawing.Shape{drawing.NewRectangle("r", 0, 0, 100, 100)})
	_, err := Render(g, Options{CellWidth: 100, CellHeight: 100})
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.png")
	shapes := []drawing.Shape{drawing.NewText("t", 0, 0, "hi")}

	require.NoError(t, Save(path, shapes, Options{Foreground: color.RGBA{R: 255, A: 255}}))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 2*8, img.Bounds().Dx())
}

func TestSave_Empty(t *testing.T) {
	assert.ErrorIs(t, Save(filepath.Join(t.TempDir(), "x.png"), nil, DefaultOptions()), document.ErrEmpty)
}

func TestFromConfig(t *testing.T) {
	c := *config.Current
	c.Canvas.CellWidth = 10
	c.Canvas.CellHeight = 20
	c.Export.PNGFontSize = 16
	c.Export.PNGPadding = 0

	opts := FromConfig(&c)
	assert.Equal(t, 10.0, opts.CellWidth)
	assert.Equal(t, 20.0, opts.CellHeight)
	assert.Equal(t, 16.0, opts.FontSize)
	assert.Equal(t, 0, opts.Padding)
	assert.Equal(t, DefaultOptions().Background, opts.Background)
}
