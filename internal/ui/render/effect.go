package render

import (
	"image/color"

	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

// Effect modifies cells that were already drawn.
type Effect interface {
	Apply(buf uv.Screen)
	GetZ() int
	GetRect() layout.Rectangle
}

// AttrEffect turns on text attributes (uv.AttrBold, uv.AttrReverse, ...)
// for every cell in Rect.
type AttrEffect struct {
	Rect  layout.Rectangle
	Attrs uint8
	Z     int
}

func (e AttrEffect) Apply(buf uv.Screen) {
	iterateCells(buf, e.Rect, func(cell *uv.Cell) *uv.Cell {
		c := cell.Clone()
		c.Style.Attrs |= e.Attrs
		return c
	})
}

func (e AttrEffect) GetZ() int                 { return e.Z }
func (e AttrEffect) GetRect() layout.Rectangle { return e.Rect }

// HighlightEffect applies the background of Style. Without Force, cells that
// already have a background keep it.
type HighlightEffect struct {
	Rect  layout.Rectangle
	Style lipgloss.Style
	Z     int
	Force bool
}

func (e HighlightEffect) Apply(buf uv.Screen) {
	bg := toAnsiColor(e.Style.GetBackground())
	iterateCells(buf, e.Rect, func(cell *uv.Cell) *uv.Cell {
		if !e.Force && cell.Style.Bg != nil {
			return nil
		}
		c := cell.Clone()
		c.Style.Bg = bg
		return c
	})
}

func (e HighlightEffect) GetZ() int                 { return e.Z }
func (e HighlightEffect) GetRect() layout.Rectangle { return e.Rect }

type FillEffect struct {
	Rect  layout.Rectangle
	Char  rune
	Style uv.Style
	Z     int
}

func (e FillEffect) Apply(buf uv.Screen) {
	cell := &uv.Cell{Content: string(e.Char), Width: 1, Style: e.Style}
	bounds := buf.Bounds().Intersect(e.Rect)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			buf.SetCell(x, y, cell)
		}
	}
}

func (e FillEffect) GetZ() int                 { return e.Z }
func (e FillEffect) GetRect() layout.Rectangle { return e.Rect }

// Glyph is one grapheme placed at an absolute screen cell. Width is 1 or 2.
type Glyph struct {
	X, Y    int
	Content string
	Width   int
	Style   uv.Style
}

// GlyphsEffect writes individual cells. A glyph is skipped when any of the
// cells it covers falls outside Clip.
type GlyphsEffect struct {
	Clip   layout.Rectangle
	Glyphs []Glyph
	Z      int
}

func (e GlyphsEffect) Apply(buf uv.Screen) {
	clip := buf.Bounds().Intersect(e.Clip)
	for _, g := range e.Glyphs {
		width := max(g.Width, 1)
		if g.Y < clip.Min.Y || g.Y >= clip.Max.Y || g.X < clip.Min.X || g.X+width > clip.Max.X {
			continue
		}
		buf.SetCell(g.X, g.Y, &uv.Cell{Content: g.Content, Width: width, Style: g.Style})
	}
}

func (e GlyphsEffect) GetZ() int                 { return e.Z }
func (e GlyphsEffect) GetRect() layout.Rectangle { return e.Clip }

// toAnsiColor drops lipgloss.NoColor so unset colours stay unset in the
// cell style.
func toAnsiColor(c color.Color) ansi.Color {
	switch c.(type) {
	case nil, lipgloss.NoColor:
		return nil
	}
	return c
}

// StyleOf converts the colours and attributes of a lipgloss style into a
// cell style.
func StyleOf(ls lipgloss.Style) uv.Style {
	var cs uv.Style
	cs.Fg = toAnsiColor(ls.GetForeground())
	cs.Bg = toAnsiColor(ls.GetBackground())
	if ls.GetBold() {
		cs.Attrs |= uv.AttrBold
	}
	if ls.GetFaint() {
		cs.Attrs |= uv.AttrFaint
	}
	if ls.GetItalic() {
		cs.Attrs |= uv.AttrItalic
	}
	if ls.GetStrikethrough() {
		cs.Attrs |= uv.AttrStrikethrough
	}
	if ls.GetReverse() {
		cs.Attrs |= uv.AttrReverse
	}
	if ls.GetUnderline() {
		cs.Underline = uv.UnderlineSingle
	}
	return cs
}

// iterateCells applies transform to each cell of rect that is inside buf.
// Continuation cells of wide graphemes are skipped, since writing to them
// would blank the leading cell. A nil result leaves the cell unchanged.
func iterateCells(buf uv.Screen, rect layout.Rectangle, transform func(*uv.Cell) *uv.Cell) {
	rect = rect.Intersect(buf.Bounds())
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; {
			cell := buf.CellAt(x, y)
			if cell == nil || cell.Width == 0 {
				x++
				continue
			}
			if c := transform(cell); c != nil {
				buf.SetCell(x, y, c)
			}
			x += max(cell.Width, 1)
		}
	}
}
