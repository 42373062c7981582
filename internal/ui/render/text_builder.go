package render

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

// TextBuilder lays out styled segments on a single row, left to right.
type TextBuilder struct {
	dl       *DisplayContext
	segments []textSegment
	x, y, z  int
	maxX     int
}

type textSegment struct {
	text    string
	style   lipgloss.Style
	onClick tea.Msg
}

// Text starts a row at (x, y).
func (dl *DisplayContext) Text(x, y, z int) *TextBuilder {
	return &TextBuilder{dl: dl, x: x, y: y, z: z}
}

// Within drops segments that would run past the right edge of box.
func (tb *TextBuilder) Within(box layout.Box) *TextBuilder {
	tb.maxX = box.R.Max.X
	return tb
}

func (tb *TextBuilder) Write(text string) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text})
	return tb
}

func (tb *TextBuilder) Styled(text string, style lipgloss.Style) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style})
	return tb
}

func (tb *TextBuilder) Clickable(text string, style lipgloss.Style, onClick tea.Msg) *TextBuilder {
	tb.segments = append(tb.segments, textSegment{text: text, style: style, onClick: onClick})
	return tb
}

// Done emits the segments and returns the column after the last one.
func (tb *TextBuilder) Done() int {
	x := tb.x
	for _, seg := range tb.segments {
		width := runewidth.StringWidth(seg.text)
		if width == 0 {
			continue
		}
		if tb.maxX > 0 && x+width > tb.maxX {
			break
		}
		rect := layout.Rect(x, tb.y, width, 1)
		tb.dl.AddDraw(rect, seg.style.Render(seg.text), tb.z)
		if seg.onClick != nil {
			tb.dl.AddInteraction(rect, seg.onClick, InteractionClick, tb.z)
		}
		x += width
	}
	return x
}
