package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

func TestApplySubmitsValueWithPurpose(t *testing.T) {
	m := New("export", "Export JSON", "drawing.json")
	m.Init()

	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})
	cmd := m.Update(intents.Apply{})
	require.NotNil(t, cmd)
	assert.Equal(t, SelectedMsg{Purpose: "export", Value: "drawing.jsonx"}, cmd())
}

func TestCancel(t *testing.T) {
	m := New("import", "", "")
	cmd := m.Update(intents.Cancel{})
	require.NotNil(t, cmd)
	assert.Equal(t, CancelledMsg{}, cmd())
}

func TestViewRect_CentersWindow(t *testing.T) {
	m := New("import", "Import JSON", "a.json")
	dl := render.NewDisplayContext()
	m.ViewRect(dl, layout.NewBox(layout.Rect(0, 0, 80, 24)))

	draws := dl.DrawList()
	require.Len(t, draws, 1)
	assert.Contains(t, draws[0].Content, "Import JSON")
	assert.Greater(t, draws[0].Rect.Min.X, 0)
	assert.Greater(t, draws[0].Rect.Min.Y, 0)

	_, handled := dl.ProcessMouseEvent(tea.MouseClickMsg{X: draws[0].Rect.Min.X, Y: draws[0].Rect.Min.Y, Button: tea.MouseLeft})
	assert.True(t, handled)
}
