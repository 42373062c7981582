// Package preview shows the drawing rendered as plain text next to the
// canvas.
package preview

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

const (
	debounceID       = "preview-refresh"
	debounceDuration = 50 * time.Millisecond
	emptyText        = "Nothing to preview"
)

var _ common.ImmediateModel = (*Model)(nil)

type contentMsg struct {
	Content string
}

type scrollMsg struct {
	Delta      int
	Horizontal bool
}

func (scrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	return scrollMsg{Delta: delta, Horizontal: horizontal}
}

type dividerMsg struct{}

func (dividerMsg) SetDragStart(int, int) tea.Msg { return dividerMsg{} }

type Model struct {
	visible  bool
	split    *layout.Split
	lines    []string
	xOffset  int
	yOffset  int
	dragging bool
	// body is the box shared with the canvas in the last frame.
	body    layout.Box
	content layout.Rectangle
	styles  styles
}

type styles struct {
	text   lipgloss.Style
	border lipgloss.Style
	dimmed lipgloss.Style
}

func New() *Model {
	return &Model{
		visible: config.Current.UI.ShowPreview,
		split:   layout.NewSplit(config.Current.UI.PreviewWidthPercentage, false),
		styles: styles{
			text:   common.DefaultPalette.Get("preview"),
			border: common.DefaultPalette.Get("preview border"),
			dimmed: common.DefaultPalette.Get("preview dimmed"),
		},
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Visible() bool { return m.visible }

func (m *Model) Dragging() bool { return m.dragging }

func (m *Model) Percentage() float64 { return m.split.Percentage }

// Content returns the text currently shown.
func (m *Model) Content() string {
	return strings.Join(m.lines, "\n")
}

// Refresh re-renders the shapes after a short delay. Bursts of calls, as
// produced by a mouse drag, collapse into one render. The shapes must not be
// mutated afterwards.
func (m *Model) Refresh(shapes []drawing.Shape) tea.Cmd {
	if !m.visible {
		return nil
	}
	return common.Debounce(debounceID, debounceDuration, func() tea.Msg {
		return contentMsg{Content: raster.Text(shapes, false)}
	})
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.TogglePreview:
		m.visible = !m.visible
		m.xOffset, m.yOffset = 0, 0
	case intents.ResizePreview:
		m.split.Resize(msg.Delta)
	case contentMsg:
		m.lines = nil
		if msg.Content != "" {
			m.lines = strings.Split(msg.Content, "\n")
		}
		m.clampOffsets()
	case scrollMsg:
		if msg.Horizontal {
			m.xOffset += msg.Delta
		} else {
			m.yOffset += msg.Delta
		}
		m.clampOffsets()
	case dividerMsg:
		m.dragging = true
	case tea.MouseMotionMsg:
		if m.dragging {
			mouse := msg.Mouse()
			m.split.DragTo(m.body, mouse.X, mouse.Y)
		}
	case tea.MouseReleaseMsg:
		m.dragging = false
	}
	return nil
}

func (m *Model) clampOffsets() {
	width := 0
	for _, line := range m.lines {
		width = max(width, ansi.StringWidth(line))
	}
	m.xOffset = max(0, min(m.xOffset, width-m.content.Dx()))
	m.yOffset = max(0, min(m.yOffset, len(m.lines)-m.content.Dy()))
}

// Layout splits body between the canvas and the preview pane. The pane is
// empty when the preview is hidden.
func (m *Model) Layout(body layout.Box) (canvas, pane layout.Box) {
	m.body = body
	if !m.visible {
		return body, layout.Box{}
	}
	return m.split.Apply(body)
}

func (m *Model) ViewRect(dl *render.DisplayContext, box layout.Box) {
	if !m.visible || box.R.Empty() {
		return
	}

	divider := box.R
	divider.Max.X = divider.Min.X + 1
	bar := strings.TrimSuffix(strings.Repeat("│\n", divider.Dy()), "\n")
	dl.AddDraw(divider, m.styles.border.Render(bar), render.ZPreview)
	dl.AddInteraction(divider, dividerMsg{}, render.InteractionDrag, render.ZPreview)

	content := box.R
	content.Min.X++
	m.content = content
	if content.Empty() {
		return
	}
	if len(m.lines) == 0 {
		dl.AddDraw(content, m.styles.dimmed.Render(ansi.Truncate(emptyText, content.Dx(), "")), render.ZPreview)
		return
	}

	end := min(len(m.lines), m.yOffset+content.Dy())
	visible := make([]string, 0, end-m.yOffset)
	for _, line := range m.lines[m.yOffset:end] {
		visible = append(visible, ansi.Cut(line, m.xOffset, m.xOffset+content.Dx()))
	}
	dl.AddDraw(content, m.styles.text.Render(strings.Join(visible, "\n")), render.ZPreview)
	dl.AddInteraction(content, scrollMsg{}, render.InteractionScroll, render.ZPreview)
}
