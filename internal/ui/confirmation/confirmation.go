// Package confirmation asks the user to pick one of a few options before a
// destructive action runs.
package confirmation

import (
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/ui/actions"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

type CloseMsg struct{}

type SelectOptionMsg struct {
	Index int
}

var _ common.StackedModel = (*Model)(nil)

type option struct {
	label      string
	cmd        tea.Cmd
	keyBinding key.Binding
}

type Styles struct {
	Border   lipgloss.Style
	Selected lipgloss.Style
	Dimmed   lipgloss.Style
	Text     lipgloss.Style
}

type Model struct {
	options  []option
	selected int
	Styles   Styles
	messages []string
}

// Option is a function that configures a Model
type Option func(*Model)

// WithOption adds an option to the confirmation dialog. keyBinding picks it
// directly.
func WithOption(label string, cmd tea.Cmd, keyBinding key.Binding) Option {
	return func(m *Model) {
		m.options = append(m.options, option{label, cmd, keyBinding})
	}
}

func New(messages []string, opts ...Option) *Model {
	m := Model{messages: messages}
	for _, opt := range opts {
		opt(&m)
	}
	m.Styles = Styles{
		Border:   common.DefaultPalette.GetBorder("confirmation border", lipgloss.RoundedBorder()),
		Text:     common.DefaultPalette.Get("confirmation text"),
		Selected: common.DefaultPalette.Get("confirmation selected"),
		Dimmed:   common.DefaultPalette.Get("confirmation dimmed"),
	}
	return &m
}

func Close() tea.Msg {
	return CloseMsg{}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) StackedActionOwner() string {
	return actions.OwnerConfirm
}

func (m *Model) Selected() int {
	return m.selected
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SelectOptionMsg:
		if msg.Index < 0 || msg.Index >= len(m.options) {
			return nil
		}
		m.selected = msg.Index
		return m.options[m.selected].cmd
	case intents.Navigate:
		if len(m.options) == 0 {
			return nil
		}
		m.selected = min(max(m.selected+msg.Delta, 0), len(m.options)-1)
	case intents.Apply:
		if len(m.options) == 0 {
			return Close
		}
		return m.options[m.selected].cmd
	case intents.Cancel:
		return m.runOptionForKey("esc")
	case tea.KeyPressMsg:
		for _, option := range m.options {
			if key.Matches(msg, option.keyBinding) {
				return option.cmd
			}
		}
	}
	return nil
}

func (m *Model) runOptionForKey(bindingKey string) tea.Cmd {
	for _, option := range m.options {
		for _, keyName := range option.keyBinding.Keys() {
			if keyName == bindingKey {
				return option.cmd
			}
		}
	}
	return Close
}

// ViewRect centers the dialog in box. Messages come first, then one row of
// clickable options.
func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if box.R.Dx() <= 0 || box.R.Dy() <= 0 {
		return
	}

	optionsWidth := 0
	for _, option := range m.options {
		optionsWidth += lipgloss.Width(padded(option.label))
	}

	body := m.Styles.Text.Render(strings.Join(m.messages, "\n"))
	placeholder := strings.Repeat(" ", optionsWidth)
	content := lipgloss.JoinVertical(lipgloss.Left, body, "", placeholder)
	framed := m.Styles.Border.Padding(0, 1).Render(content)

	window := dl.Window(box.Center(lipgloss.Size(framed)).R, lipgloss.NewStyle(), render.ZDialogs)
	dl.AddDraw(window.R, framed, render.ZDialogs)

	// border and padding on the left, border on top
	x := window.R.Min.X + 2
	y := window.R.Min.Y + 1 + lipgloss.Height(body) + 1
	tb := dl.Text(x, y, render.ZDialogs+1)
	for i, option := range m.options {
		tb.Clickable(padded(option.label), m.optionStyle(i), SelectOptionMsg{Index: i})
	}
	tb.Done()
}

func (m *Model) optionStyle(i int) lipgloss.Style {
	if i == m.selected {
		return m.Styles.Selected
	}
	return m.Styles.Dimmed
}

func padded(label string) string {
	return "  " + label + "  "
}
