package render

import (
	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

// InteractionType is a bit set of the inputs a region responds to.
type InteractionType int

const (
	InteractionClick InteractionType = 1 << iota
	InteractionScroll
	InteractionDrag
)

// InteractionOp is an interactive region in absolute screen coordinates.
type InteractionOp struct {
	Rect layout.Rectangle
	Msg  tea.Msg
	Type InteractionType
	Z    int
}

func (op InteractionOp) contains(x, y int) bool {
	return x >= op.Rect.Min.X && x < op.Rect.Max.X && y >= op.Rect.Min.Y && y < op.Rect.Max.Y
}

// ScrollDeltaCarrier messages receive the wheel delta before delivery.
type ScrollDeltaCarrier interface {
	SetDelta(delta int, horizontal bool) tea.Msg
}

// DragStartCarrier messages receive the press position before delivery.
type DragStartCarrier interface {
	SetDragStart(x, y int) tea.Msg
}

const wheelStep = 3

func processMouseEvent(interactions []interactionOp, msg tea.MouseMsg) (tea.Msg, bool) {
	mouse := msg.Mouse()
	hit := func(typ InteractionType) (InteractionOp, bool) {
		for _, interaction := range interactions {
			if interaction.Type&typ != 0 && interaction.contains(mouse.X, mouse.Y) {
				return interaction.InteractionOp, true
			}
		}
		return InteractionOp{}, false
	}

	switch msg.(type) {
	case tea.MouseClickMsg:
		if mouse.Button != tea.MouseLeft {
			return nil, false
		}
		// a drag region wins over a click region at the same z, but not over
		// one stacked above it
		click, clicked := hit(InteractionClick)
		if op, ok := hit(InteractionDrag); ok && (!clicked || op.Z >= click.Z) {
			if carrier, ok := op.Msg.(DragStartCarrier); ok {
				return carrier.SetDragStart(mouse.X, mouse.Y), true
			}
			return op.Msg, true
		}
		if clicked {
			return click.Msg, true
		}
	case tea.MouseWheelMsg:
		var delta int
		var horizontal bool
		switch mouse.Button {
		case tea.MouseWheelUp:
			delta = -wheelStep
		case tea.MouseWheelDown:
			delta = wheelStep
		case tea.MouseWheelLeft:
			delta, horizontal = -wheelStep, true
		case tea.MouseWheelRight:
			delta, horizontal = wheelStep, true
		default:
			return nil, false
		}
		if op, ok := hit(InteractionScroll); ok {
			if carrier, ok := op.Msg.(ScrollDeltaCarrier); ok {
				return carrier.SetDelta(delta, horizontal), true
			}
			return op.Msg, true
		}
	}
	return nil, false
}
