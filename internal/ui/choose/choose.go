// Package choose is the command palette: a fuzzy filtered list of actions.
package choose

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/sahilm/fuzzy"

	"github.com/idursun/asciidraw/internal/ui/actions"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

// Item is one palette entry.
type Item struct {
	Action string
	Desc   string
	// Keys lists the bound keys, shown right aligned.
	Keys string
}

func (i Item) label() string {
	if i.Desc == "" {
		return i.Action
	}
	return i.Action + "  " + i.Desc
}

type SelectedMsg struct {
	Item Item
}

type CancelledMsg struct{}

type itemClickMsg struct {
	Index int
}

type itemScrollMsg struct {
	Delta int
}

func (m itemScrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	if horizontal {
		return nil
	}
	m.Delta = delta
	return m
}

var (
	_ common.StackedModel = (*Model)(nil)
	_ common.Editable     = (*Model)(nil)
	_ fuzzy.Source        = items(nil)
)

type items []Item

func (s items) String(i int) string { return s[i].label() }
func (s items) Len() int            { return len(s) }

type styles struct {
	border   lipgloss.Style
	text     lipgloss.Style
	title    lipgloss.Style
	selected lipgloss.Style
	dimmed   lipgloss.Style
	matched  lipgloss.Style
}

const (
	maxVisibleItems = 15
	minWidth        = 30
)

type Model struct {
	items    items
	matches  fuzzy.Matches
	selected int
	offset   int
	title    string
	input    textinput.Model
	styles   styles
}

func New(title string, options []Item) *Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type to filter"
	ti.CharLimit = 100

	m := &Model{
		items: options,
		title: title,
		input: ti,
		styles: styles{
			border:   common.DefaultPalette.GetBorder("choose border", lipgloss.RoundedBorder()),
			text:     common.DefaultPalette.Get("choose text"),
			title:    common.DefaultPalette.Get("choose title"),
			selected: common.DefaultPalette.Get("choose selected"),
			dimmed:   common.DefaultPalette.Get("choose dimmed"),
			matched:  common.DefaultPalette.Get("matched"),
		},
	}
	m.filter()
	return m
}

func (m *Model) Init() tea.Cmd {
	return m.input.Focus()
}

func (m *Model) StackedActionOwner() string {
	return actions.OwnerChoose
}

func (m *Model) IsEditing() bool {
	return true
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Navigate:
		m.move(msg.Delta)
	case intents.Apply:
		return m.selectCurrent()
	case intents.Cancel:
		return newCmd(CancelledMsg{})
	case tea.KeyMsg, tea.PasteMsg:
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.filter()
		}
		return cmd
	case itemScrollMsg:
		m.offset = max(0, min(m.offset+msg.Delta, len(m.matches)-maxVisibleItems))
	case itemClickMsg:
		if msg.Index < 0 || msg.Index >= len(m.matches) {
			return nil
		}
		m.selected = msg.Index
		return m.selectCurrent()
	}
	return nil
}

// filter recomputes the matches. An empty query lists every item in order.
func (m *Model) filter() {
	query := strings.TrimSpace(m.input.Value())
	if query == "" {
		m.matches = make(fuzzy.Matches, len(m.items))
		for i := range m.items {
			m.matches[i] = fuzzy.Match{Str: m.items.String(i), Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(query, m.items)
	}
	m.selected = 0
	m.offset = 0
}

func (m *Model) move(delta int) {
	if len(m.matches) == 0 {
		return
	}
	m.selected = max(0, min(m.selected+delta, len(m.matches)-1))
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+maxVisibleItems {
		m.offset = m.selected - maxVisibleItems + 1
	}
}

func (m *Model) selectCurrent() tea.Cmd {
	if len(m.matches) == 0 {
		return newCmd(CancelledMsg{})
	}
	return newCmd(SelectedMsg{Item: m.items[m.matches[m.selected].Index]})
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	width := minWidth
	for _, item := range m.items {
		width = max(width, lipgloss.Width(item.label())+lipgloss.Width(item.Keys)+4)
	}
	width = min(width, box.R.Dx()-2)
	listHeight := min(len(m.items), maxVisibleItems)
	height := min(listHeight+2, box.R.Dy()-2)
	if width <= 0 || height <= 0 {
		return
	}

	frame := box.Center(width+2, height+2)
	dl.AddBackdrop(box.R, render.ZDialogs-1)
	dl.Window(frame.R, lipgloss.NewStyle(), render.ZDialogs)
	blank := lipgloss.NewStyle().Width(width).Height(height).Render("")
	dl.AddDraw(frame.R, m.styles.border.Render(blank), render.ZDialogs)

	content := frame.Inset(1)
	titleBox, rest := content.CutTop(1)
	dl.AddDraw(titleBox.R, m.styles.title.Render(m.title), render.ZDialogs+1)
	inputBox, listBox := rest.CutTop(1)
	m.input.SetWidth(max(inputBox.R.Dx()-3, 1))
	dl.AddDraw(inputBox.R, m.input.View(), render.ZDialogs+1)

	rows := listBox.R.Dy()
	for row := range rows {
		index := m.offset + row
		if index >= len(m.matches) {
			break
		}
		rect := layout.Rect(listBox.R.Min.X, listBox.R.Min.Y+row, listBox.R.Dx(), 1)
		dl.AddDraw(rect, m.renderRow(index, rect.Dx()), render.ZDialogs+1)
		dl.AddInteraction(rect, itemClickMsg{Index: index}, render.InteractionClick, render.ZDialogs+1)
	}
	dl.AddInteraction(listBox.R, itemScrollMsg{}, render.InteractionScroll, render.ZDialogs+1)
}

func (m *Model) renderRow(index int, width int) string {
	match := m.matches[index]
	item := m.items[match.Index]
	base := m.styles.text
	if index == m.selected {
		base = m.styles.selected
	}

	matched := make(map[int]bool, len(match.MatchedIndexes))
	for _, i := range match.MatchedIndexes {
		matched[i] = true
	}
	var sb strings.Builder
	sb.WriteString(base.Render(" "))
	for i, r := range match.Str {
		if matched[i] {
			sb.WriteString(m.styles.matched.Inherit(base).Render(string(r)))
		} else {
			sb.WriteString(base.Render(string(r)))
		}
	}
	left := sb.String()
	keys := m.styles.dimmed.Inherit(base).Render(item.Keys + " ")
	gap := max(width-lipgloss.Width(left)-lipgloss.Width(keys), 0)
	return left + base.Render(strings.Repeat(" ", gap)) + keys
}

func newCmd(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}
