package choose

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/test"
)

var paletteItems = []Item{
	{Action: "ui.export_json", Desc: "Export the drawing as JSON", Keys: "ctrl+s"},
	{Action: "ui.export_png", Desc: "Export the drawing as PNG", Keys: "ctrl+e"},
	{Action: "canvas.tool_line", Desc: "Line tool", Keys: "l"},
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func TestModel_View(t *testing.T) {
	m := New("Commands", paletteItems)
	test.SimulateModel(m, m.Init())

	output := test.RenderImmediate(m, 100, 20)
	assert.Contains(t, output, "Commands")
	for _, item := range paletteItems {
		assert.Contains(t, output, item.Action)
		assert.Contains(t, output, item.Keys)
	}
}

func TestModel_FuzzyFilter(t *testing.T) {
	m := New("Commands", paletteItems)
	m.Init()

	typeText(m, "png")
	require.NotEmpty(t, m.matches)
	assert.Equal(t, "ui.export_png", m.items[m.matches[0].Index].Action)

	typeText(m, "zzz")
	assert.Empty(t, m.matches)
	cmd := m.Update(intents.Apply{})
	assert.Equal(t, CancelledMsg{}, cmd())
}

func TestModel_NavigateAndApply(t *testing.T) {
	m := New("Commands", paletteItems)

	m.Update(intents.Navigate{Delta: 1})
	m.Update(intents.Navigate{Delta: 5})
	assert.Equal(t, 2, m.selected)
	m.Update(intents.Navigate{Delta: -1})

	cmd := m.Update(intents.Apply{})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Item: paletteItems[1]}, cmd())
}

func TestModel_Click(t *testing.T) {
	m := New("Commands", paletteItems)
	dl := test.Layout(m, 100, 20)

	var clicked tea.Msg
	for _, op := range dl.InteractionsList() {
		if msg, ok := op.Msg.(itemClickMsg); ok && msg.Index == 2 {
			clicked, _ = dl.ProcessMouseEvent(tea.MouseClickMsg{X: op.Rect.Min.X + 1, Y: op.Rect.Min.Y, Button: tea.MouseLeft})
		}
	}
	require.NotNil(t, clicked)
	cmd := m.Update(clicked)
	assert.Equal(t, SelectedMsg{Item: paletteItems[2]}, cmd())
}

func TestModel_Cancel(t *testing.T) {
	m := New("Commands", paletteItems)
	cmd := m.Update(intents.Cancel{})
	assert.Equal(t, CancelledMsg{}, cmd())
}
