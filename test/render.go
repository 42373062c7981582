// Package test holds helpers for driving and rendering UI models in tests.
package test

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/render"
)

type immediateView interface {
	ViewRect(dl *render.DisplayContext, box layout.Box)
}

// RenderImmediate renders an immediate model into a fixed-size buffer and
// returns the plain text, one line per row.
func RenderImmediate(model immediateView, width, height int) string {
	dl := Layout(model, width, height)
	buf := uv.NewScreenBuffer(width, height)
	dl.Render(buf)
	return buf.Render()
}

// Layout runs the layout pass of model and returns the display context, so
// tests can inspect draws and interactions.
func Layout(model immediateView, width, height int) *render.DisplayContext {
	dl := render.NewDisplayContext()
	model.ViewRect(dl, layout.NewBox(layout.Rect(0, 0, width, height)))
	return dl
}
