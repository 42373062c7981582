package editor

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/test"
)

func TestNew_AppliesTypedText(t *testing.T) {
	m := New(drawing.Point{X: 3, Y: 4})
	m.Init()
	for _, r := range "hi" {
		m.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
	m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m.Update(tea.KeyPressMsg{Code: 'x', Text: "x"})

	cmd := m.Update(intents.Apply{})
	require.NotNil(t, cmd)
	assert.Equal(t, SavedMsg{At: drawing.Point{X: 3, Y: 4}, Text: "hi\nx"}, cmd())
}

func TestEdit_KeepsShapeIdentity(t *testing.T) {
	m := Edit(drawing.NewText("t1", 1, 2, "hello"))
	assert.Equal(t, "hello", m.Value())

	saved := m.Update(intents.Apply{})().(SavedMsg)
	assert.Equal(t, "t1", saved.ShapeID)
	assert.Equal(t, drawing.Point{X: 1, Y: 2}, saved.At)
}

func TestCancel(t *testing.T) {
	m := New(drawing.Point{})
	assert.Equal(t, CancelledMsg{}, m.Update(intents.Cancel{})())
}

func TestView(t *testing.T) {
	m := Edit(drawing.NewText("t1", 0, 0, "hello"))
	out := test.RenderImmediate(m, 80, 24)
	assert.Contains(t, out, "Edit text")
	assert.Contains(t, out, "hello")
}
