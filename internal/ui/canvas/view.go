package canvas

import (
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

const originGlyph = "+"

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.view = box.R
	w, h := box.R.Dx(), box.R.Dy()
	if w <= 0 || h <= 0 {
		return
	}

	shapes := m.store.Shapes()
	kinds := make(map[string]drawing.Kind, len(shapes)+1)
	for _, s := range shapes {
		kinds[s.Head().ID] = s.Kind()
	}

	grid := raster.NewGrid(m.pan, w, h)
	grid.PaintAll(shapes)
	if p := m.pending(); p != nil {
		grid.Paint(p)
	}

	palette := common.DefaultPalette
	selectedSt := palette.Get("canvas selected")
	previewSt := palette.Get("canvas preview")
	styleFor := func(owner string) lipgloss.Style {
		switch owner {
		case previewID:
			return previewSt
		case m.selected:
			return selectedSt
		}
		return palette.KindStyle(kinds[owner])
	}

	glyphs := make([]render.Glyph, 0, w)
	origin := drawing.Point{}
	for y := m.pan.Y; y < m.pan.Y+h; y++ {
		for x := m.pan.X; x < m.pan.X+w; x++ {
			p := drawing.Point{X: x, Y: y}
			text, width, owner := grid.Cell(p)
			if width == 0 {
				continue
			}
			sx, sy := m.toScreen(p)
			if owner == "" {
				if p == origin {
					glyphs = append(glyphs, render.Glyph{X: sx, Y: sy, Content: originGlyph, Width: 1, Style: render.StyleOf(palette.Get("canvas origin"))})
				}
				continue
			}
			glyphs = append(glyphs, render.Glyph{X: sx, Y: sy, Content: text, Width: width, Style: render.StyleOf(styleFor(owner))})
		}
	}

	if s, ok := m.Selected(); ok {
		handleSt := render.StyleOf(palette.Get("canvas handle"))
		for _, hp := range drawing.Handles(s) {
			text, width, _ := grid.Cell(hp.Point)
			if width == 0 {
				continue
			}
			sx, sy := m.toScreen(hp.Point)
			glyphs = append(glyphs, render.Glyph{X: sx, Y: sy, Content: text, Width: width, Style: handleSt})
		}
	}
	dl.AddGlyphs(box.R, glyphs, render.ZCanvas)

	cx, cy := m.toScreen(m.cursor)
	if box.Contains(cx, cy) {
		dl.AddReverse(layout.Rect(cx, cy, 1, 1), render.ZCursor)
	}

	dl.AddInteraction(box.R, pressMsg{}, render.InteractionDrag, render.ZCanvas)
	dl.AddInteraction(box.R, scrollMsg{}, render.InteractionScroll, render.ZCanvas)
}
