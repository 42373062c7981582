// Package canvas is the drawing surface: it owns the shape store, the active
// tool, the grid cursor, the viewport offset and the selection.
package canvas

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
)

var _ common.ImmediateModel = (*Model)(nil)

// ChangedMsg is sent after every mutation of the store.
type ChangedMsg struct{}

// OpenEditorMsg asks for the text editor. Text is nil for a new text shape at
// At.
type OpenEditorMsg struct {
	Text *drawing.Text
	At   drawing.Point
}

type Model struct {
	store     *drawing.Store
	tool      intents.Tool
	cursor    drawing.Point
	pan       drawing.Point
	selected  string
	clipboard drawing.Shape
	// anchor is the first corner of a keyboard gesture started with Press.
	anchor *drawing.Point
	drag   *drag
	// view is the screen area of the last frame.
	view      layout.Rectangle
	lastClick click
	now       func() time.Time
}

func New(store *drawing.Store) *Model {
	if store == nil {
		store = drawing.NewStore()
	}
	return &Model{
		store: store,
		tool:  intents.ToolSelect,
		now:   time.Now,
	}
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Store() *drawing.Store { return m.store }

func (m *Model) Tool() intents.Tool { return m.tool }

func (m *Model) Cursor() drawing.Point { return m.cursor }

func (m *Model) Pan() drawing.Point { return m.pan }

// Selected returns the selected shape, if any.
func (m *Model) Selected() (drawing.Shape, bool) {
	if m.selected == "" {
		return nil, false
	}
	return m.store.Get(m.selected)
}

// Busy reports whether a mouse drag or keyboard gesture is in progress.
func (m *Model) Busy() bool {
	return m.drag != nil || m.anchor != nil
}

func (m *Model) Dragging() bool {
	return m.drag != nil
}

// Replace swaps in a new store, for example after an import, and resets the
// selection and gestures.
func (m *Model) Replace(store *drawing.Store) tea.Cmd {
	m.store = store
	m.selected = ""
	m.anchor = nil
	m.drag = nil
	return changed
}

// Snapshot deep-copies the shapes so they can be rendered off the update
// loop.
func (m *Model) Snapshot() []drawing.Shape {
	shapes := m.store.Shapes()
	out := make([]drawing.Shape, len(shapes))
	for i, s := range shapes {
		out[i] = drawing.Clone(s, s.Head().ID)
	}
	return out
}

// mapper converts screen cells to drawing cells for the current viewport.
// Terminal cells are 1x1.
func (m *Model) mapper() drawing.Mapper {
	mp := drawing.NewMapper(1, 1)
	mp.OriginX = float64(m.view.Min.X - m.pan.X)
	mp.OriginY = float64(m.view.Min.Y - m.pan.Y)
	return mp
}

func (m *Model) toCell(x, y int) drawing.Point {
	return m.mapper().ToCell(float64(x), float64(y))
}

func (m *Model) toScreen(p drawing.Point) (int, int) {
	x, y := m.mapper().ToPixel(p)
	return int(x), int(y)
}

func changed() tea.Msg { return ChangedMsg{} }

func flash(text string) tea.Cmd {
	return func() tea.Msg { return intents.AddMessage{Text: text} }
}

func flashError(err error) tea.Cmd {
	return func() tea.Msg { return intents.AddMessage{Err: err} }
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case intents.Intent:
		return m.handleIntent(msg)
	case pressMsg:
		return m.mousePress(m.toCell(msg.X, msg.Y))
	case tea.MouseMotionMsg:
		if m.drag != nil {
			mouse := msg.Mouse()
			return m.dragTo(m.toCell(mouse.X, mouse.Y))
		}
	case tea.MouseReleaseMsg:
		if m.drag != nil {
			mouse := msg.Mouse()
			return m.release(m.toCell(mouse.X, mouse.Y))
		}
	case scrollMsg:
		if msg.Horizontal {
			m.panBy(msg.Delta, 0)
		} else {
			m.panBy(0, msg.Delta)
		}
	}
	return nil
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.MoveCursor:
		m.moveCursor(intent.DX, intent.DY)
	case intents.Press:
		return m.keyPress()
	case intents.SelectTool:
		m.setTool(intent.Tool)
	case intents.MoveSelection:
		return m.moveSelection(intent.DX, intent.DY)
	case intents.ResizeSelection:
		return m.resizeSelection(intent.DX, intent.DY)
	case intents.EditText:
		if t, ok := m.selectedText(); ok {
			return openEditor(t, t.Anchor())
		}
	case intents.DeleteSelection:
		return m.deleteSelection()
	case intents.Copy:
		return m.copySelection()
	case intents.Paste:
		return m.paste()
	case intents.SelectLast:
		if last, ok := m.store.Last(); ok {
			m.selected = last.Head().ID
		}
	case intents.Cancel:
		m.cancel()
	case intents.Pan:
		step := max(config.Current.Canvas.PanStep, 1)
		m.panBy(intent.DX*step, intent.DY*step)
	case intents.ClearCanvas:
		if m.store.Len() == 0 {
			return nil
		}
		m.store.Clear()
		m.selected = ""
		return changed
	}
	return nil
}

func (m *Model) setTool(tool intents.Tool) {
	switch tool {
	case intents.ToolSelect, intents.ToolRectangle, intents.ToolLine, intents.ToolText:
	default:
		slog.Warn("unknown tool", "tool", tool)
		return
	}
	m.tool = tool
	m.selected = ""
	m.anchor = nil
	m.drag = nil
}

// cancel drops the gesture in progress, or the selection when there is none.
func (m *Model) cancel() {
	switch {
	case m.drag != nil:
		m.drag.abort(m.store)
		m.drag = nil
	case m.anchor != nil:
		m.anchor = nil
	default:
		m.selected = ""
	}
}

func (m *Model) moveCursor(dx, dy int) {
	m.cursor = m.cursor.Add(dx, dy)
	m.follow()
}

// follow pans so the cursor stays inside the viewport.
func (m *Model) follow() {
	w, h := m.view.Dx(), m.view.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	switch {
	case m.cursor.X < m.pan.X:
		m.pan.X = m.cursor.X
	case m.cursor.X >= m.pan.X+w:
		m.pan.X = m.cursor.X - w + 1
	}
	switch {
	case m.cursor.Y < m.pan.Y:
		m.pan.Y = m.cursor.Y
	case m.cursor.Y >= m.pan.Y+h:
		m.pan.Y = m.cursor.Y - h + 1
	}
}

// panBy scrolls the viewport and drags the cursor along when it would leave
// the visible area.
func (m *Model) panBy(dx, dy int) {
	m.pan = m.pan.Add(dx, dy)
	w, h := m.view.Dx(), m.view.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	m.cursor.X = max(m.pan.X, min(m.cursor.X, m.pan.X+w-1))
	m.cursor.Y = max(m.pan.Y, min(m.cursor.Y, m.pan.Y+h-1))
}

func (m *Model) selectedText() (*drawing.Text, bool) {
	s, ok := m.Selected()
	if !ok {
		return nil, false
	}
	t, ok := s.(*drawing.Text)
	return t, ok
}

func (m *Model) moveSelection(dx, dy int) tea.Cmd {
	if m.selected == "" {
		return nil
	}
	if err := m.store.Move(m.selected, dx, dy); err != nil {
		return flashError(err)
	}
	return changed
}

// resizeSelection drags the south-east corner of a rectangle or the end of a
// line.
func (m *Model) resizeSelection(dx, dy int) tea.Cmd {
	s, ok := m.Selected()
	if !ok {
		return nil
	}
	handle := drawing.HandleSE
	if s.Kind() == drawing.KindLine {
		handle = drawing.HandleEnd
	}
	err := m.store.Resize(m.selected, handle, dx, dy)
	switch {
	case errors.Is(err, drawing.ErrDegenerate):
		return nil
	case errors.Is(err, drawing.ErrNotResizable):
		return flash("Text cannot be resized")
	case err != nil:
		return flashError(err)
	}
	return changed
}

func (m *Model) deleteSelection() tea.Cmd {
	if m.selected == "" {
		return nil
	}
	m.store.Remove(m.selected)
	m.selected = ""
	return changed
}

func (m *Model) copySelection() tea.Cmd {
	s, ok := m.Selected()
	if !ok {
		return flash("Nothing selected")
	}
	m.clipboard = drawing.Clone(s, "")
	return flash("Copied " + string(s.Kind()))
}

// paste adds a copy of the clipboard offset by one cell down and right and
// selects it. Pasting again places the next copy at the same offset.
func (m *Model) paste() tea.Cmd {
	if m.clipboard == nil {
		return flash("Clipboard is empty")
	}
	shape := drawing.Clone(m.clipboard, drawing.NewID())
	head := shape.Head()
	head.X++
	head.Y++
	if err := m.store.Add(shape); err != nil {
		return flashError(err)
	}
	m.selected = head.ID
	return changed
}

// ApplyText stores the result of the text editor. Editing a text to blank
// deletes it; a blank new text is dropped.
func (m *Model) ApplyText(id string, at drawing.Point, text string) tea.Cmd {
	text = strings.TrimSpace(text)
	if id == "" {
		t := drawing.NewText(drawing.NewID(), at.X, at.Y, text)
		if drawing.Validate(t) != nil {
			return nil
		}
		if err := m.store.Add(t); err != nil {
			return flashError(err)
		}
		m.selected = t.ID
		return changed
	}

	existing, ok := m.store.Get(id)
	if !ok {
		return nil
	}
	edited := drawing.Clone(existing, id).(*drawing.Text)
	edited.Text = text
	if drawing.Validate(edited) != nil {
		m.store.Remove(id)
		if m.selected == id {
			m.selected = ""
		}
		return changed
	}
	if err := m.store.Replace(edited); err != nil {
		return flashError(err)
	}
	return changed
}

func openEditor(t *drawing.Text, at drawing.Point) tea.Cmd {
	return func() tea.Msg { return OpenEditorMsg{Text: t, At: at} }
}
