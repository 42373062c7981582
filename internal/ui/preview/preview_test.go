package preview

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/test"
)

func visibleModel() *Model {
	m := New()
	if !m.Visible() {
		m.Update(intents.TogglePreview{})
	}
	return m
}

func TestModel_RefreshRendersShapes(t *testing.T) {
	m := visibleModel()
	cmd := m.Refresh([]drawing.Shape{drawing.NewRectangle("r", 0, 0, 3, 2)})
	require.NotNil(t, cmd)

	m.Update(cmd())
	assert.Equal(t, "┌─┐\n└─┘", m.Content())
}

func TestModel_RefreshWhenHidden(t *testing.T) {
	m := visibleModel()
	m.Update(intents.TogglePreview{})
	assert.False(t, m.Visible())
	assert.Nil(t, m.Refresh(nil))
}

func TestModel_View(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		scroll   []scrollMsg
		width    int
		height   int
		expected []string
	}{
		{
			name:     "clips",
			content:  "+++++..\n+abcde.\n+++++..",
			width:    5,
			height:   2,
			expected: []string{"│++++", "│+abc"},
		},
		{
			name:     "scrolls down and right",
			content:  ".......\n.abcde.\n.......",
			scroll:   []scrollMsg{{Delta: 1}, {Delta: 1, Horizontal: true}},
			width:    5,
			height:   2,
			expected: []string{"│abcd", "│...."},
		},
		{
			name:     "scroll stops at the content edge",
			content:  "ab\ncd\nef",
			scroll:   []scrollMsg{{Delta: 10}, {Delta: 10, Horizontal: true}},
			width:    3,
			height:   2,
			expected: []string{"│cd", "│ef"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := visibleModel()
			test.RenderImmediate(m, tt.width, tt.height)
			m.Update(contentMsg{Content: tt.content})
			for _, msg := range tt.scroll {
				m.Update(msg)
			}
			output := test.RenderImmediate(m, tt.width, tt.height)
			lines := strings.Split(output, "\r\n")
			for i := range lines {
				lines[i] = strings.TrimRight(lines[i], " ")
			}
			assert.Equal(t, tt.expected, lines)
		})
	}
}

func TestModel_ViewEmpty(t *testing.T) {
	m := visibleModel()
	output := test.RenderImmediate(m, 30, 3)
	assert.Contains(t, output, emptyText)
}

func TestModel_Layout(t *testing.T) {
	m := visibleModel()
	body := layout.NewBox(layout.Rect(0, 0, 100, 10))
	canvas, pane := m.Layout(body)
	assert.Equal(t, 100, canvas.R.Dx()+pane.R.Dx())
	assert.InDelta(t, m.Percentage(), float64(pane.R.Dx()), 1)

	m.Update(intents.TogglePreview{})
	canvas, pane = m.Layout(body)
	assert.Equal(t, body, canvas)
	assert.True(t, pane.R.Empty())
}

func TestModel_DragDivider(t *testing.T) {
	m := visibleModel()
	body := layout.NewBox(layout.Rect(0, 0, 100, 10))
	_, pane := m.Layout(body)

	dl := test.Layout(m, 100, 10)
	dl.Clear()
	m.ViewRect(dl, pane)
	msg, ok := dl.ProcessMouseEvent(tea.MouseClickMsg{X: pane.R.Min.X, Y: 3, Button: tea.MouseLeft})
	require.True(t, ok)
	m.Update(msg)
	assert.True(t, m.Dragging())

	m.Update(tea.MouseMotionMsg{X: 70, Y: 3})
	assert.Equal(t, 30.0, m.Percentage())
	m.Update(tea.MouseReleaseMsg{X: 70, Y: 3})
	assert.False(t, m.Dragging())

	m.Update(intents.ResizePreview{Delta: 5})
	assert.Equal(t, 35.0, m.Percentage())
}
