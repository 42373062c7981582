// Package input is a one-line prompt dialog, used to ask for file paths.
package input

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/ui/actions"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

// Purpose tells the opener what a submitted value is for.
type Purpose string

// SelectedMsg carries the submitted value.
type SelectedMsg struct {
	Purpose Purpose
	Value   string
}

type CancelledMsg struct{}

var (
	_ common.StackedModel = (*Model)(nil)
	_ common.Editable     = (*Model)(nil)
)

const maxWidth = 60

type styles struct {
	border lipgloss.Style
	text   lipgloss.Style
	title  lipgloss.Style
}

type Model struct {
	input   textinput.Model
	title   string
	purpose Purpose
	styles  styles
}

// New returns a prompt pre-filled with value.
func New(purpose Purpose, title string, value string) *Model {
	s := styles{
		border: common.DefaultPalette.GetBorder("input border", lipgloss.RoundedBorder()),
		text:   common.DefaultPalette.Get("input text"),
		title:  common.DefaultPalette.Get("input title"),
	}
	ti := textinput.New()
	ti.Prompt = "> "
	ti.SetWidth(maxWidth - 4)
	is := ti.Styles()
	is.Focused.Prompt = s.text
	is.Blurred.Prompt = s.text
	ti.SetStyles(is)
	ti.SetValue(value)
	ti.CursorEnd()

	return &Model{input: ti, title: title, purpose: purpose, styles: s}
}

func (m *Model) IsEditing() bool { return true }

func (m *Model) StackedActionOwner() string {
	return actions.OwnerInput
}

func (m *Model) Value() string {
	return m.input.Value()
}

func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Apply:
		return newCmd(SelectedMsg{Purpose: m.purpose, Value: m.input.Value()})
	case intents.Cancel:
		return newCmd(CancelledMsg{})
	case tea.KeyMsg, tea.PasteMsg:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	m.input.SetWidth(max(min(box.R.Dx()-6, maxWidth-4), 1))

	var rows []string
	if m.title != "" {
		rows = append(rows, m.styles.title.Render(m.title))
	}
	rows = append(rows, m.input.View())
	content := m.styles.border.Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))

	window := dl.Window(box.Center(lipgloss.Size(content)).R, lipgloss.NewStyle(), render.ZDialogs)
	dl.AddDraw(window.R, content, render.ZDialogs)
}

func newCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
