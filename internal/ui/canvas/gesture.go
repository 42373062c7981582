package canvas

import (
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/render"
)

const doubleClickInterval = 400 * time.Millisecond

// previewID owns the cells of the shape being drawn. It can never collide
// with a stored id.
const previewID = "\x00preview"

var (
	_ render.DragStartCarrier   = pressMsg{}
	_ render.ScrollDeltaCarrier = scrollMsg{}
)

type pressMsg struct{ X, Y int }

func (pressMsg) SetDragStart(x, y int) tea.Msg { return pressMsg{X: x, Y: y} }

type scrollMsg struct {
	Delta      int
	Horizontal bool
}

func (scrollMsg) SetDelta(delta int, horizontal bool) tea.Msg {
	return scrollMsg{Delta: delta, Horizontal: horizontal}
}

type click struct {
	at   time.Time
	cell drawing.Point
}

type dragKind int

const (
	dragCreate dragKind = iota
	dragMove
	dragResize
)

// drag is a mouse gesture between press and release. Move and resize keep
// the shape as it was at press time and re-apply the total delta on every
// motion, so rounding never accumulates.
type drag struct {
	kind     dragKind
	origin   drawing.Point
	current  drawing.Point
	snapshot drawing.Shape
	handle   drawing.Handle
}

func (d *drag) abort(store *drawing.Store) {
	if d.snapshot != nil {
		_ = store.Replace(d.snapshot)
	}
}

func (m *Model) mousePress(p drawing.Point) tea.Cmd {
	m.cursor = p
	m.anchor = nil
	now := m.now()
	double := m.lastClick.cell == p && !m.lastClick.at.IsZero() && now.Sub(m.lastClick.at) <= doubleClickInterval
	m.lastClick = click{at: now, cell: p}

	switch m.tool {
	case intents.ToolRectangle, intents.ToolLine:
		m.drag = &drag{kind: dragCreate, origin: p, current: p}
		return nil
	case intents.ToolText:
		return openEditor(nil, p)
	}

	if double {
		if s, ok := m.store.FindAt(p); ok {
			if t, ok := s.(*drawing.Text); ok {
				m.selected = t.ID
				m.lastClick = click{}
				return openEditor(t, t.Anchor())
			}
		}
	}

	if s, ok := m.Selected(); ok {
		if h := drawing.HandleAt(s, p); h != drawing.HandleNone {
			m.drag = &drag{kind: dragResize, origin: p, current: p, snapshot: drawing.Clone(s, s.Head().ID), handle: h}
			return nil
		}
	}
	s, ok := m.store.FindAt(p)
	if !ok {
		m.selected = ""
		return nil
	}
	m.selected = s.Head().ID
	m.drag = &drag{kind: dragMove, origin: p, current: p, snapshot: drawing.Clone(s, s.Head().ID)}
	return nil
}

func (m *Model) dragTo(p drawing.Point) tea.Cmd {
	d := m.drag
	if d.current == p {
		return nil
	}
	d.current = p
	m.cursor = p
	dx, dy := p.X-d.origin.X, p.Y-d.origin.Y

	switch d.kind {
	case dragMove:
		moved := drawing.Clone(d.snapshot, d.snapshot.Head().ID)
		head := moved.Head()
		head.X += dx
		head.Y += dy
		if err := m.store.Replace(moved); err != nil {
			return flashError(err)
		}
		return changed
	case dragResize:
		resized, err := drawing.Resized(d.snapshot, d.handle, dx, dy)
		if errors.Is(err, drawing.ErrDegenerate) {
			return nil
		}
		if err != nil {
			return flashError(err)
		}
		if err := m.store.Replace(resized); err != nil {
			return flashError(err)
		}
		return changed
	}
	return nil
}

func (m *Model) release(p drawing.Point) tea.Cmd {
	cmd := m.dragTo(p)
	d := m.drag
	m.drag = nil
	if d.kind != dragCreate {
		return cmd
	}
	return m.create(d.origin, d.current)
}

// keyPress starts a keyboard gesture at the cursor or finishes the one in
// progress.
func (m *Model) keyPress() tea.Cmd {
	if m.anchor != nil {
		a := *m.anchor
		m.anchor = nil
		return m.create(a, m.cursor)
	}
	switch m.tool {
	case intents.ToolRectangle, intents.ToolLine:
		a := m.cursor
		m.anchor = &a
		return nil
	case intents.ToolText:
		return openEditor(nil, m.cursor)
	}
	if s, ok := m.store.FindAt(m.cursor); ok {
		m.selected = s.Head().ID
	} else {
		m.selected = ""
	}
	return nil
}

// create adds the shape spanned by a and b for the current tool. Gestures
// that would give an invalid shape are ignored.
func (m *Model) create(a, b drawing.Point) tea.Cmd {
	shape := m.spanned(drawing.NewID(), a, b)
	if shape == nil || drawing.Validate(shape) != nil {
		return nil
	}
	if err := m.store.Add(shape); err != nil {
		return flashError(err)
	}
	m.selected = shape.Head().ID
	return changed
}

func (m *Model) spanned(id string, a, b drawing.Point) drawing.Shape {
	switch m.tool {
	case intents.ToolRectangle:
		return drawing.RectangleFromCorners(id, a, b)
	case intents.ToolLine:
		return drawing.NewLine(id, a, b)
	}
	return nil
}

// pending is the shape the current gesture would create, if any.
func (m *Model) pending() drawing.Shape {
	switch {
	case m.drag != nil && m.drag.kind == dragCreate:
		return m.spanned(previewID, m.drag.origin, m.drag.current)
	case m.anchor != nil:
		return m.spanned(previewID, *m.anchor, m.cursor)
	}
	return nil
}
