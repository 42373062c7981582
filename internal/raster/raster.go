// Package raster projects drawing shapes onto a character grid using
// box-drawing glyphs.
package raster

import (
	"image"
	"slices"

	"github.com/idursun/asciidraw/internal/drawing"
)

const (
	GlyphTopLeft     = "┌"
	GlyphTopRight    = "┐"
	GlyphBottomLeft  = "└"
	GlyphBottomRight = "┘"
	GlyphHorizontal  = "─"
	GlyphVertical    = "│"
	GlyphTeeRight    = "├"
	GlyphTeeLeft     = "┤"
	GlyphTeeDown     = "┬"
	GlyphTeeUp       = "┴"
	GlyphCross       = "┼"
	GlyphFallDiag    = "╲"
	GlyphRiseDiag    = "╱"
	GlyphDot         = "●"
)

const (
	up = 1 << iota
	down
	left
	right
)

var lineGlyphs = [16]string{
	up:                       GlyphVertical,
	down:                     GlyphVertical,
	up | down:                GlyphVertical,
	left:                     GlyphHorizontal,
	right:                    GlyphHorizontal,
	left | right:             GlyphHorizontal,
	down | right:             GlyphTopLeft,
	down | left:              GlyphTopRight,
	up | right:               GlyphBottomLeft,
	up | left:                GlyphBottomRight,
	up | down | right:        GlyphTeeRight,
	up | down | left:         GlyphTeeLeft,
	left | right | down:      GlyphTeeDown,
	left | right | up:        GlyphTeeUp,
	up | down | left | right: GlyphCross,
}

// Bounds is the union of the cells covered by the shapes.
func Bounds(shapes []drawing.Shape) image.Rectangle {
	var r image.Rectangle
	for _, s := range shapes {
		r = r.Union(drawing.Bounds(s))
	}
	return r
}

// Render rasterizes the shapes onto a grid exactly covering their bounding
// box. Shapes are painted in layer order, so the input order only matters
// within a layer.
func Render(shapes []drawing.Shape) *Grid {
	r := Bounds(shapes)
	g := NewGrid(drawing.Point{X: r.Min.X, Y: r.Min.Y}, r.Dx(), r.Dy())
	g.PaintAll(shapes)
	return g
}

// Text is a shortcut for rendering shapes straight to a string.
func Text(shapes []drawing.Shape, trim bool) string {
	g := Render(shapes)
	if trim {
		return g.TrimmedString()
	}
	return g.String()
}

func (g *Grid) PaintAll(shapes []drawing.Shape) {
	layered := slices.Clone(shapes)
	slices.SortStableFunc(layered, func(a, b drawing.Shape) int {
		return drawing.Layer(a) - drawing.Layer(b)
	})
	for _, s := range layered {
		g.Paint(s)
	}
}

func (g *Grid) Paint(s drawing.Shape) {
	switch s := s.(type) {
	case *drawing.Rectangle:
		g.paintRectangle(s)
	case *drawing.Line:
		g.paintLine(s)
	case *drawing.Text:
		g.paintText(s)
	}
}

func (g *Grid) paintRectangle(r *drawing.Rectangle) {
	if r.Width < 1 || r.Height < 1 {
		return
	}
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.Width-1, r.Y+r.Height-1
	for x := x0 + 1; x < x1; x++ {
		g.Set(drawing.Point{X: x, Y: y0}, GlyphHorizontal, 1, r.ID)
		g.Set(drawing.Point{X: x, Y: y1}, GlyphHorizontal, 1, r.ID)
	}
	for y := y0 + 1; y < y1; y++ {
		g.Set(drawing.Point{X: x0, Y: y}, GlyphVertical, 1, r.ID)
		g.Set(drawing.Point{X: x1, Y: y}, GlyphVertical, 1, r.ID)
	}
	g.Set(drawing.Point{X: x0, Y: y0}, GlyphTopLeft, 1, r.ID)
	g.Set(drawing.Point{X: x1, Y: y0}, GlyphTopRight, 1, r.ID)
	g.Set(drawing.Point{X: x0, Y: y1}, GlyphBottomLeft, 1, r.ID)
	g.Set(drawing.Point{X: x1, Y: y1}, GlyphBottomRight, 1, r.ID)
}

func (g *Grid) paintLine(l *drawing.Line) {
	points := l.AbsPoints()
	for i, p := range points {
		var neighbours []drawing.Point
		if i > 0 {
			neighbours = append(neighbours, points[i-1])
		}
		if i < len(points)-1 {
			neighbours = append(neighbours, points[i+1])
		}
		g.Set(p, LineGlyph(p, neighbours...), 1, l.ID)
	}
}

// LineGlyph picks the glyph for a line cell from the directions towards its
// neighbouring cells.
func LineGlyph(p drawing.Point, neighbours ...drawing.Point) string {
	mask := 0
	diagonal := ""
	for _, n := range neighbours {
		dx, dy := n.X-p.X, n.Y-p.Y
		switch {
		case dx == 0 && dy < 0:
			mask |= up
		case dx == 0 && dy > 0:
			mask |= down
		case dy == 0 && dx < 0:
			mask |= left
		case dy == 0 && dx > 0:
			mask |= right
		case (dx > 0) == (dy > 0):
			diagonal = GlyphFallDiag
		default:
			diagonal = GlyphRiseDiag
		}
	}
	if mask != 0 {
		return lineGlyphs[mask]
	}
	if diagonal != "" {
		return diagonal
	}
	return GlyphDot
}

func (g *Grid) paintText(t *drawing.Text) {
	for row, line := range t.Lines() {
		x := t.X
		for _, glyph := range drawing.Glyphs(line) {
			g.Set(drawing.Point{X: x, Y: t.Y + row}, glyph.Text, glyph.Width, t.ID)
			x += glyph.Width
		}
	}
}
