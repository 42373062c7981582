// Package toolbar renders the row of tool buttons above the canvas.
package toolbar

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

var _ common.ImmediateModel = (*Model)(nil)

type button struct {
	label  string
	intent intents.Intent
	tool   intents.Tool
}

var buttons = []button{
	{label: "Select", intent: intents.SelectTool{Tool: intents.ToolSelect}, tool: intents.ToolSelect},
	{label: "Rectangle", intent: intents.SelectTool{Tool: intents.ToolRectangle}, tool: intents.ToolRectangle},
	{label: "Line", intent: intents.SelectTool{Tool: intents.ToolLine}, tool: intents.ToolLine},
	{label: "Text", intent: intents.SelectTool{Tool: intents.ToolText}, tool: intents.ToolText},
}

var actions = []button{
	{label: "Preview", intent: intents.TogglePreview{}},
	{label: "Copy", intent: intents.CopyAll{}},
	{label: "Save", intent: intents.ExportJSON{}},
	{label: "Open", intent: intents.ImportJSON{}},
	{label: "PNG", intent: intents.ExportPNG{}},
	{label: "Commands", intent: intents.OpenCommandPalette{}},
}

type Model struct {
	active intents.Tool
	styles styles
}

type styles struct {
	background lipgloss.Style
	button     lipgloss.Style
	active     lipgloss.Style
	dimmed     lipgloss.Style
}

func New() *Model {
	return &Model{
		active: intents.ToolSelect,
		styles: styles{
			background: common.DefaultPalette.Get("toolbar"),
			button:     common.DefaultPalette.Get("toolbar button"),
			active:     common.DefaultPalette.Get("toolbar active"),
			dimmed:     common.DefaultPalette.Get("toolbar dimmed"),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(tea.Msg) tea.Cmd {
	return nil
}

func (m *Model) SetActive(tool intents.Tool) {
	m.active = tool
}

// ViewRect lays out the buttons. A click delivers the button's intent.
func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if box.R.Dx() <= 0 || box.R.Dy() <= 0 {
		return
	}
	row := layout.Rect(box.R.Min.X, box.R.Min.Y, box.R.Dx(), 1)
	dl.AddFill(row, ' ', m.styles.background, render.ZChrome)

	tb := dl.Text(row.Min.X, row.Min.Y, render.ZChrome).Within(layout.NewBox(row))
	for _, b := range buttons {
		style := m.styles.button
		if b.tool == m.active {
			style = m.styles.active
		}
		tb.Clickable(" "+b.label+" ", style, b.intent)
	}
	tb.Styled(" │ ", m.styles.dimmed)
	for _, b := range actions {
		tb.Clickable(" "+b.label+" ", m.styles.button, b.intent)
	}
	tb.Done()
}
