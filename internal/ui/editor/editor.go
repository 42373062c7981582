// Package editor is the multi-line text dialog used to create and edit text
// shapes.
package editor

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/ui/actions"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

// SavedMsg is sent when the user applies the text. ShapeID is empty for a
// new text shape anchored at At.
type SavedMsg struct {
	ShapeID string
	At      drawing.Point
	Text    string
}

type CancelledMsg struct{}

var (
	_ common.StackedModel = (*Model)(nil)
	_ common.Editable     = (*Model)(nil)
)

const (
	width  = 50
	height = 8
)

type Model struct {
	area    textarea.Model
	shapeID string
	at      drawing.Point
	title   string
	hint    string
	border  lipgloss.Style
	titleSt lipgloss.Style
	dimmed  lipgloss.Style
}

// New opens an editor for a new text shape at cell at.
func New(at drawing.Point) *Model {
	return newModel("", at, "", "New text")
}

// Edit opens an editor on an existing text shape.
func Edit(t *drawing.Text) *Model {
	return newModel(t.ID, t.Anchor(), t.Text, "Edit text")
}

func newModel(id string, at drawing.Point, text string, title string) *Model {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Placeholder = "Type text..."
	ta.SetWidth(width)
	ta.SetHeight(height)
	ta.SetValue(text)

	return &Model{
		area:    ta,
		shapeID: id,
		at:      at,
		title:   title,
		hint:    "ctrl+s apply • esc cancel",
		border:  common.DefaultPalette.GetBorder("editor border", lipgloss.RoundedBorder()),
		titleSt: common.DefaultPalette.Get("editor title"),
		dimmed:  common.DefaultPalette.Get("dimmed"),
	}
}

func (m *Model) Init() tea.Cmd {
	return m.area.Focus()
}

func (m *Model) StackedActionOwner() string {
	return actions.OwnerEditor
}

func (m *Model) IsEditing() bool {
	return true
}

func (m *Model) Value() string {
	return m.area.Value()
}

// SetHint replaces the key hint shown under the text area.
func (m *Model) SetHint(hint string) {
	m.hint = hint
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Apply:
		saved := SavedMsg{ShapeID: m.shapeID, At: m.at, Text: m.area.Value()}
		return func() tea.Msg { return saved }
	case intents.Cancel:
		return func() tea.Msg { return CancelledMsg{} }
	case tea.KeyMsg, tea.PasteMsg:
		var cmd tea.Cmd
		m.area, cmd = m.area.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.area.SetWidth(max(min(width, box.R.Dx()-4), 1))
	m.area.SetHeight(max(min(height, box.R.Dy()-6), 1))

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.titleSt.Render(m.title),
		m.area.View(),
		m.dimmed.Render(m.hint),
	)
	content = m.border.Padding(0, 1).Render(content)
	window := dl.Window(box.Center(lipgloss.Size(content)).R, lipgloss.NewStyle(), render.ZDialogs)
	dl.AddDraw(window.R, content, render.ZDialogs)
}
