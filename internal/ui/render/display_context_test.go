package render

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

func TestDisplayContext_RenderOrdersByZ(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(layout.Rect(0, 0, 5, 1), "Front", 1)
	dl.AddDraw(layout.Rect(0, 0, 10, 1), "Background", 0)

	out := dl.RenderToString(10, 1)
	assert.True(t, strings.HasPrefix(out, "Frontround"), out)
}

func TestDisplayContext_EffectsApplyAfterDrawsOfSameZ(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddReverse(layout.Rect(0, 0, 3, 1), 0)
	dl.AddDraw(layout.Rect(0, 0, 6, 1), "Normal", 0)
	dl.AddBold(layout.Rect(3, 0, 3, 1), 1)

	buf := uv.NewScreenBuffer(6, 1)
	dl.Render(buf)

	// the reverse was added first so the draw replaces its cells
	assert.Zero(t, buf.CellAt(0, 0).Style.Attrs&uv.AttrReverse)
	assert.NotZero(t, buf.CellAt(4, 0).Style.Attrs&uv.AttrBold)
}

func TestDisplayContext_EffectsClipToBuffer(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(layout.Rect(0, 0, 5, 1), "Hello", 0)
	dl.AddDim(layout.Rect(3, 0, 20, 4), 1)

	buf := uv.NewScreenBuffer(10, 1)
	dl.Render(buf)
	assert.NotZero(t, buf.CellAt(4, 0).Style.Attrs&uv.AttrFaint)
	assert.Zero(t, buf.CellAt(2, 0).Style.Attrs&uv.AttrFaint)
}

func TestDisplayContext_HighlightKeepsWideCharacters(t *testing.T) {
	dl := NewDisplayContext()
	rect := layout.Rect(0, 0, 4, 1)
	dl.AddDraw(rect, "A日B", 0)
	dl.AddPaint(rect, lipgloss.NewStyle().Background(lipgloss.Color("4")), 1)

	out := dl.RenderToString(4, 1)
	assert.Contains(t, out, "日")
}

func TestDisplayContext_Glyphs(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddGlyphs(layout.Rect(1, 0, 4, 2), []Glyph{
		{X: 0, Y: 0, Content: "x", Width: 1},
		{X: 1, Y: 0, Content: "┌", Width: 1},
		{X: 2, Y: 0, Content: "日", Width: 2},
		{X: 4, Y: 0, Content: "日", Width: 2},
		{X: 1, Y: 1, Content: "│", Width: 1, Style: uv.Style{Attrs: uv.AttrBold}},
	}, 0)
	dl.AddGlyphs(layout.Rect(0, 0, 1, 1), nil, 0)
	assert.Equal(t, 1, dl.Len())

	buf := uv.NewScreenBuffer(6, 2)
	dl.Render(buf)

	assert.Equal(t, " ", buf.CellAt(0, 0).Content, "left of the clip")
	assert.Equal(t, "┌", buf.CellAt(1, 0).Content)
	assert.Equal(t, "日", buf.CellAt(2, 0).Content)
	assert.Equal(t, " ", buf.CellAt(4, 0).Content, "wide glyph crossing the clip edge")
	assert.NotZero(t, buf.CellAt(1, 1).Style.Attrs&uv.AttrBold)
}

func TestDisplayContext_Window(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddInteraction(layout.Rect(0, 0, 20, 10), testClickMsg{ID: 7}, InteractionClick, 0)
	box := dl.Window(layout.Rect(5, 2, 6, 3), lipgloss.NewStyle(), ZDialogs)
	assert.Equal(t, layout.Rect(5, 2, 6, 3), box.R)

	msg, handled := dl.ProcessMouseEvent(tea.MouseClickMsg{X: 6, Y: 3, Button: tea.MouseLeft})
	assert.True(t, handled)
	assert.Nil(t, msg)

	msg, _ = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	assert.Equal(t, testClickMsg{ID: 7}, msg)
}

type dragMsg struct{ X, Y int }

func (d dragMsg) SetDragStart(x, y int) tea.Msg { return dragMsg{X: x, Y: y} }

type scrollMsg struct {
	Delta      int
	Horizontal bool
}

func (s scrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	return scrollMsg{Delta: delta, Horizontal: horizontal}
}

func TestDisplayContext_ProcessMouseEvent(t *testing.T) {
	dl := NewDisplayContext()
	area := layout.Rect(0, 0, 10, 10)
	dl.AddInteraction(area, testClickMsg{ID: 1}, InteractionClick, 5)
	dl.AddInteraction(area, dragMsg{}, InteractionDrag, 0)
	dl.AddInteraction(area, scrollMsg{}, InteractionScroll, 0)

	msg, ok := dl.ProcessMouseEvent(tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseLeft})
	require.True(t, ok)
	assert.Equal(t, dragMsg{X: 3, Y: 4}, msg, "drag regions win over clicks")

	_, ok = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 3, Y: 4, Button: tea.MouseRight})
	assert.False(t, ok)

	msg, _ = dl.ProcessMouseEvent(tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelDown})
	assert.Equal(t, scrollMsg{Delta: 3}, msg)
	msg, _ = dl.ProcessMouseEvent(tea.MouseWheelMsg{X: 1, Y: 1, Button: tea.MouseWheelLeft})
	assert.Equal(t, scrollMsg{Delta: -3, Horizontal: true}, msg)

	_, ok = dl.ProcessMouseEvent(tea.MouseReleaseMsg{X: 1, Y: 1, Button: tea.MouseLeft})
	assert.False(t, ok)
}

func TestDisplayContext_Clear(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddDraw(layout.Rect(0, 0, 5, 1), "Frame1", 0)
	dl.AddBackdrop(layout.Rect(0, 0, 5, 1), 0)
	assert.Equal(t, 2, dl.Len())

	dl.Clear()
	assert.Zero(t, dl.Len())
}
