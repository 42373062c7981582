// Package pngexport draws a rasterized drawing onto a PNG image.
package pngexport

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
)

// MaxPixels caps the size of an exported image.
const MaxPixels = 64 << 20

var ErrTooLarge = errors.New("image would be too large")

type Options struct {
	CellWidth  float64
	CellHeight float64
	FontSize   float64
	// Padding is the blank margin around the drawing, in cells.
	Padding    int
	Foreground color.Color
	Background color.Color
}

func DefaultOptions() Options {
	return Options{
		CellWidth:  8,
		CellHeight: 14,
		FontSize:   12,
		Padding:    2,
		Foreground: color.Black,
		Background: color.White,
	}
}

// FromConfig applies the configured cell size, font size and padding to the
// default options.
func FromConfig(c *config.Config) Options {
	opts := DefaultOptions()
	opts.CellWidth = float64(c.Canvas.CellWidth)
	opts.CellHeight = float64(c.Canvas.CellHeight)
	opts.FontSize = float64(c.Export.PNGFontSize)
	opts.Padding = c.Export.PNGPadding
	return opts
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.CellWidth <= 0 {
		o.CellWidth = d.CellWidth
	}
	if o.CellHeight <= 0 {
		o.CellHeight = d.CellHeight
	}
	if o.FontSize <= 0 {
		o.FontSize = d.FontSize
	}
	if o.Padding < 0 {
		o.Padding = 0
	}
	if o.Foreground == nil {
		o.Foreground = d.Foreground
	}
	if o.Background == nil {
		o.Background = d.Background
	}
	return o
}

func newFace(size float64) (font.Face, error) {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	}), nil
}

// Render draws every cell of the grid. Box drawing glyphs are stroked so they
// join up regardless of the font's coverage; everything else goes through the
// Go Mono face.
func Render(g *raster.Grid, opts Options) (image.Image, error) {
	opts = opts.withDefaults()
	cols := g.Width() + 2*opts.Padding
	rows := g.Height() + 2*opts.Padding
	width := max(1, int(float64(cols)*opts.CellWidth))
	height := max(1, int(float64(rows)*opts.CellHeight))
	if float64(width)*float64(height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d pixels", ErrTooLarge, width, height)
	}
	dc := gg.NewContext(width, height)
	dc.SetColor(opts.Background)
	dc.Clear()

	face, err := newFace(opts.FontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()
	dc.SetFontFace(face)
	dc.SetColor(opts.Foreground)
	dc.SetLineWidth(1)

	ascent := float64(face.Metrics().Ascent.Ceil())
	baseline := (opts.CellHeight-float64(face.Metrics().Height.Ceil()))/2 + ascent
	b := g.Bounds()
	// cell b.Min lands padding cells in from the image corner
	m := drawing.NewMapper(opts.CellWidth, opts.CellHeight)
	m.OriginX = float64(opts.Padding-b.Min.X) * opts.CellWidth
	m.OriginY = float64(opts.Padding-b.Min.Y) * opts.CellHeight
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			glyph := g.At(drawing.Point{X: x, Y: y})
			if glyph == "" || glyph == " " {
				continue
			}
			px, py := m.ToPixel(drawing.Point{X: x, Y: y})
			if !stroke(dc, glyph, px, py, opts.CellWidth, opts.CellHeight) {
				dc.DrawString(glyph, px, py+baseline)
			}
		}
	}
	return dc.Image(), nil
}

type segment struct{ x1, y1, x2, y2 float64 }

// strokes holds box glyphs as segments in a unit cell.
var strokes = map[string][]segment{
	raster.GlyphHorizontal:  {{0, .5, 1, .5}},
	raster.GlyphVertical:    {{.5, 0, .5, 1}},
	raster.GlyphTopLeft:     {{.5, .5, 1, .5}, {.5, .5, .5, 1}},
	raster.GlyphTopRight:    {{0, .5, .5, .5}, {.5, .5, .5, 1}},
	raster.GlyphBottomLeft:  {{.5, 0, .5, .5}, {.5, .5, 1, .5}},
	raster.GlyphBottomRight: {{.5, 0, .5, .5}, {0, .5, .5, .5}},
	raster.GlyphTeeRight:    {{.5, 0, .5, 1}, {.5, .5, 1, .5}},
	raster.GlyphTeeLeft:     {{.5, 0, .5, 1}, {0, .5, .5, .5}},
	raster.GlyphTeeDown:     {{0, .5, 1, .5}, {.5, .5, .5, 1}},
	raster.GlyphTeeUp:       {{0, .5, 1, .5}, {.5, 0, .5, .5}},
	raster.GlyphCross:       {{0, .5, 1, .5}, {.5, 0, .5, 1}},
	raster.GlyphFallDiag:    {{0, 0, 1, 1}},
	raster.GlyphRiseDiag:    {{0, 1, 1, 0}},
}

func stroke(dc *gg.Context, glyph string, x, y, w, h float64) bool {
	if glyph == raster.GlyphDot {
		dc.DrawCircle(x+w/2, y+h/2, min(w, h)/3)
		dc.Fill()
		return true
	}
	segments, ok := strokes[glyph]
	if !ok {
		return false
	}
	for _, s := range segments {
		dc.DrawLine(x+s.x1*w, y+s.y1*h, x+s.x2*w, y+s.y2*h)
	}
	dc.Stroke()
	return true
}

func Encode(w io.Writer, g *raster.Grid, opts Options) error {
	img, err := Render(g, opts)
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}

// Save rasterizes the shapes and writes them to path as a PNG.
func Save(path string, shapes []drawing.Shape, opts Options) error {
	if len(shapes) == 0 {
		return document.ErrEmpty
	}
	g := raster.Render(shapes)
	return document.WriteFileAtomic(path, func(w io.Writer) error {
		return Encode(w, g, opts)
	})
}
