// Package status renders the bottom bar: mode, canvas info and key hints.
package status

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/helpkeys"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

var _ common.ImmediateModel = (*Model)(nil)

type Model struct {
	mode      string
	info      []string
	entries   []helpkeys.Entry
	styles    styles
	truncated bool
}

type styles struct {
	background lipgloss.Style
	mode       lipgloss.Style
	shortcut   lipgloss.Style
	dimmed     lipgloss.Style
	text       lipgloss.Style
}

func New() *Model {
	return &Model{
		styles: styles{
			background: common.DefaultPalette.Get("status"),
			mode:       common.DefaultPalette.Get("status mode"),
			shortcut:   common.DefaultPalette.Get("status shortcut"),
			dimmed:     common.DefaultPalette.Get("status dimmed"),
			text:       common.DefaultPalette.Get("status text"),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) SetMode(mode string) {
	m.mode = mode
}

func (m *Model) Mode() string {
	return m.mode
}

// SetInfo replaces the segments shown after the mode, such as the cursor
// cell and the selected shape.
func (m *Model) SetInfo(segments ...string) {
	m.info = segments
}

func (m *Model) SetHelp(entries []helpkeys.Entry) {
	m.entries = entries
}

func (m *Model) Help() []helpkeys.Entry {
	return m.entries
}

// Truncated reports whether the last frame had to drop key hints.
func (m *Model) Truncated() bool {
	return m.truncated
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	width := box.R.Dx()
	if width <= 0 || box.R.Dy() <= 0 {
		return
	}
	row := layout.Rect(box.R.Min.X, box.R.Min.Y, width, 1)
	dl.AddFill(row, ' ', m.styles.background, render.ZChrome)

	modeWidth := max(10, lipgloss.Width(m.mode)+2)
	mode := m.styles.mode.Width(modeWidth).Render(" " + m.mode)

	var info string
	if len(m.info) > 0 {
		info = m.styles.text.Render(" "+strings.Join(m.info, "  ")) + m.styles.dimmed.Render(" │ ")
	} else {
		info = m.styles.text.Render(" ")
	}

	available := max(0, width-lipgloss.Width(mode)-lipgloss.Width(info))
	help, truncated := m.helpView(m.entries, available)
	m.truncated = truncated

	dl.AddDraw(row, mode+info+help, render.ZChrome)
}

func (m *Model) helpView(entries []helpkeys.Entry, maxWidth int) (string, bool) {
	separator := m.styles.dimmed.Render(" • ")
	moreHint := separator + m.styles.dimmed.Render("…")

	rendered, truncated := m.collectHelpEntriesWithLimit(entries, maxWidth, lipgloss.Width(separator), lipgloss.Width(moreHint))

	result := strings.Join(rendered, separator)
	if truncated && len(rendered) > 0 {
		result += moreHint
	}
	return result, truncated
}

// collectHelpEntriesWithLimit gathers help entries that fit within maxWidth,
// accounting for separators and the "more" hint when truncation occurs.
func (m *Model) collectHelpEntriesWithLimit(entries []helpkeys.Entry, maxWidth, separatorWidth, moreHintWidth int) ([]string, bool) {
	var rendered []string
	currentWidth := 0

	for i, entry := range entries {
		if entry.Label == "" || entry.Desc == "" {
			continue
		}

		e := m.styles.shortcut.Render(entry.Label) + m.styles.dimmed.PaddingLeft(1).Render(entry.Desc)
		addedWidth := lipgloss.Width(e)
		if len(rendered) > 0 {
			addedWidth += separatorWidth
		}

		reservedWidth := 0
		if i < len(entries)-1 {
			reservedWidth = moreHintWidth
		}

		if currentWidth+addedWidth+reservedWidth > maxWidth {
			return rendered, true
		}

		rendered = append(rendered, e)
		currentWidth += addedWidth
	}

	return rendered, false
}
