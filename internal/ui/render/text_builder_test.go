package render

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

type testClickMsg struct {
	ID int
}

func TestTextBuilder_Segments(t *testing.T) {
	dl := NewDisplayContext()
	bold := lipgloss.NewStyle().Bold(true)

	end := dl.Text(2, 1, 0).
		Write("A").
		Write("").
		Styled("日本", bold).
		Clickable("C", lipgloss.Style{}, testClickMsg{ID: 1}).
		Done()

	draws := dl.DrawList()
	require.Len(t, draws, 3)
	assert.Equal(t, 2, draws[0].Rect.Min.X)
	assert.Equal(t, 3, draws[1].Rect.Min.X)
	assert.Equal(t, 4, draws[1].Rect.Dx())
	assert.Equal(t, bold.Render("日本"), draws[1].Content)
	assert.Equal(t, 7, draws[2].Rect.Min.X)
	assert.Equal(t, 8, end)

	interactions := dl.InteractionsList()
	require.Len(t, interactions, 1)
	assert.Equal(t, InteractionClick, interactions[0].Type)
	assert.Equal(t, testClickMsg{ID: 1}, interactions[0].Msg)
}

func TestTextBuilder_Within(t *testing.T) {
	dl := NewDisplayContext()

	dl.Text(0, 0, 0).
		Within(layout.NewBox(layout.Rect(0, 0, 6, 1))).
		Write("one ").
		Write("two").
		Done()

	draws := dl.DrawList()
	require.Len(t, draws, 1)
	assert.Equal(t, "one ", draws[0].Content)
}

func TestTextBuilder_BackdropSwallowsClick(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddBackdrop(layout.Rect(0, 0, 50, 10), 10)
	dl.Text(5, 5, 20).Clickable("Click", lipgloss.Style{}, testClickMsg{ID: 1}).Done()

	msg, handled := dl.ProcessMouseEvent(tea.MouseClickMsg{X: 5, Y: 5, Button: tea.MouseLeft})
	require.True(t, handled)
	assert.Equal(t, testClickMsg{ID: 1}, msg)

	msg, handled = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 40, Y: 5, Button: tea.MouseLeft})
	assert.True(t, handled)
	assert.Nil(t, msg)

	_, handled = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 60, Y: 5, Button: tea.MouseLeft})
	assert.False(t, handled)
}

type testDragMsg struct{ X, Y int }

func (m testDragMsg) SetDragStart(x, y int) tea.Msg { return testDragMsg{X: x, Y: y} }

func TestProcessMouseEvent_DragBelowDialog(t *testing.T) {
	dl := NewDisplayContext()
	dl.AddInteraction(layout.Rect(0, 0, 50, 10), testDragMsg{}, InteractionDrag, ZCanvas)
	dl.Window(layout.Rect(10, 2, 20, 5), lipgloss.NewStyle(), ZDialogs)
	dl.Text(12, 4, ZDialogs+1).Clickable("Yes", lipgloss.Style{}, testClickMsg{ID: 7}).Done()
	dl.AddInteraction(layout.Rect(0, 9, 5, 1), testClickMsg{ID: 8}, InteractionClick, ZCanvas)

	msg, handled := dl.ProcessMouseEvent(tea.MouseClickMsg{X: 12, Y: 4, Button: tea.MouseLeft})
	require.True(t, handled)
	assert.Equal(t, testClickMsg{ID: 7}, msg)

	msg, handled = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 20, Y: 5, Button: tea.MouseLeft})
	assert.True(t, handled)
	assert.Nil(t, msg, "the window swallows the press")

	msg, _ = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 3, Y: 1, Button: tea.MouseLeft})
	assert.Equal(t, testDragMsg{X: 3, Y: 1}, msg)

	msg, _ = dl.ProcessMouseEvent(tea.MouseClickMsg{X: 1, Y: 9, Button: tea.MouseLeft})
	assert.Equal(t, testDragMsg{X: 1, Y: 9}, msg, "drag wins over a click at the same z")
}
