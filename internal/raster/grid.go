package raster

import (
	"image"
	"strings"

	"github.com/idursun/asciidraw/internal/drawing"
)

type cell struct {
	text string
	// owner is the id of the shape that painted the cell last.
	owner string
	wide  bool
	cont  bool
}

// Grid is a rectangular character buffer positioned on the drawing plane.
// Cells outside the grid are silently clipped, so a viewport sized grid can
// be painted with shapes that only partly overlap it.
type Grid struct {
	origin drawing.Point
	width  int
	height int
	cells  []cell
}

func NewGrid(origin drawing.Point, width, height int) *Grid {
	width, height = max(width, 0), max(height, 0)
	g := &Grid{origin: origin, width: width, height: height, cells: make([]cell, width*height)}
	for i := range g.cells {
		g.cells[i].text = " "
	}
	return g
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Bounds returns the drawing-plane cells covered by the grid.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(g.origin.X, g.origin.Y, g.origin.X+g.width, g.origin.Y+g.height)
}

func (g *Grid) at(p drawing.Point) *cell {
	x, y := p.X-g.origin.X, p.Y-g.origin.Y
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return nil
	}
	return &g.cells[y*g.width+x]
}

// At returns the glyph at an absolute cell. The right half of a wide glyph
// reads as the empty string.
func (g *Grid) At(p drawing.Point) string {
	c := g.at(p)
	if c == nil || c.cont {
		return ""
	}
	return c.text
}

// Owner returns the id of the shape that last painted the cell.
func (g *Grid) Owner(p drawing.Point) string {
	if c := g.at(p); c != nil {
		return c.owner
	}
	return ""
}

// Cell returns the glyph at p with its display width and owner. The right
// half of a wide glyph has width 0 and no text.
func (g *Grid) Cell(p drawing.Point) (text string, width int, owner string) {
	c := g.at(p)
	switch {
	case c == nil:
		return "", 0, ""
	case c.cont:
		return "", 0, c.owner
	case c.wide:
		return c.text, 2, c.owner
	}
	return c.text, 1, c.owner
}

// Set writes a glyph of the given width (1 or 2) at p.
func (g *Grid) Set(p drawing.Point, text string, width int, owner string) {
	c := g.at(p)
	if c == nil {
		return
	}
	g.breakWide(p)
	if width < 2 {
		*c = cell{text: text, owner: owner}
		return
	}
	next := p.Add(1, 0)
	nc := g.at(next)
	if nc == nil {
		// no room for the right half
		*c = cell{text: " ", owner: owner}
		return
	}
	g.breakWide(next)
	*c = cell{text: text, owner: owner, wide: true}
	*nc = cell{owner: owner, cont: true}
}

// breakWide blanks the other half of a wide glyph that is about to lose one
// of its cells.
func (g *Grid) breakWide(p drawing.Point) {
	c := g.at(p)
	switch {
	case c.cont:
		if left := g.at(p.Add(-1, 0)); left != nil && left.wide {
			*left = cell{text: " ", owner: left.owner}
		}
	case c.wide:
		if right := g.at(p.Add(1, 0)); right != nil && right.cont {
			*right = cell{text: " ", owner: right.owner}
		}
	}
	*c = cell{text: " ", owner: c.owner}
}

func (g *Grid) row(y int) string {
	var sb strings.Builder
	for _, c := range g.cells[y*g.width : (y+1)*g.width] {
		if !c.cont {
			sb.WriteString(c.text)
		}
	}
	return sb.String()
}

func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = g.row(y)
	}
	return lines
}

// String joins the rows with newlines, without a trailing newline.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}

// TrimmedString is String with trailing spaces removed from every row.
func (g *Grid) TrimmedString() string {
	lines := g.Lines()
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return strings.Join(lines, "\n")
}
