package common

import (
	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

// ImmediateModel is a component that lays itself out and paints into a
// display context every frame.
type ImmediateModel interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	ViewRect(dl *render.DisplayContext, box layout.Box)
}
