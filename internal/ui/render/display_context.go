package render

import (
	"sort"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/idursun/asciidraw/internal/ui/layout"
)

// Draw paints a pre-rendered (possibly ANSI styled) string into Rect.
type Draw struct {
	Rect    layout.Rectangle
	Content string
	Z       int
}

// DisplayContext collects the operations of one frame. Draws, effects and
// interactions are accumulated while components lay themselves out and are
// executed by Render ordered by Z, then by insertion.
type DisplayContext struct {
	draws        []drawOp
	effects      []effectOp
	interactions []interactionOp
	orderCounter int
}

func NewDisplayContext() *DisplayContext {
	return &DisplayContext{
		draws:        make([]drawOp, 0, 32),
		effects:      make([]effectOp, 0, 16),
		interactions: make([]interactionOp, 0, 16),
	}
}

func (dl *DisplayContext) nextOrder() int {
	dl.orderCounter++
	return dl.orderCounter
}

func (dl *DisplayContext) AddDraw(rect layout.Rectangle, content string, z int) {
	dl.draws = append(dl.draws, drawOp{
		Draw:  Draw{Rect: rect, Content: content, Z: z},
		order: dl.nextOrder(),
	})
}

// AddFill fills a rectangle with ch in the given style.
func (dl *DisplayContext) AddFill(rect layout.Rectangle, ch rune, style lipgloss.Style, z int) {
	if rect.Dx() <= 0 || rect.Dy() <= 0 {
		return
	}
	dl.AddEffect(FillEffect{Rect: rect, Char: ch, Style: StyleOf(style), Z: z})
}

func (dl *DisplayContext) AddEffect(effect Effect) {
	dl.effects = append(dl.effects, effectOp{
		effect: effect,
		order:  dl.nextOrder(),
		z:      effect.GetZ(),
	})
}

func (dl *DisplayContext) AddReverse(rect layout.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: uv.AttrReverse, Z: z})
}

func (dl *DisplayContext) AddDim(rect layout.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: uv.AttrFaint, Z: z})
}

func (dl *DisplayContext) AddBold(rect layout.Rectangle, z int) {
	dl.AddEffect(AttrEffect{Rect: rect, Attrs: uv.AttrBold, Z: z})
}

// AddHighlight sets the background of cells that have none.
func (dl *DisplayContext) AddHighlight(rect layout.Rectangle, style lipgloss.Style, z int) {
	dl.AddEffect(HighlightEffect{Rect: rect, Style: style, Z: z})
}

// AddPaint sets the background of every cell, replacing existing ones.
func (dl *DisplayContext) AddPaint(rect layout.Rectangle, style lipgloss.Style, z int) {
	dl.AddEffect(HighlightEffect{Rect: rect, Style: style, Z: z, Force: true})
}

// AddGlyphs places individual cells, clipped to clip.
func (dl *DisplayContext) AddGlyphs(clip layout.Rectangle, glyphs []Glyph, z int) {
	if len(glyphs) == 0 {
		return
	}
	dl.AddEffect(GlyphsEffect{Clip: clip, Glyphs: glyphs, Z: z})
}

func (dl *DisplayContext) AddInteraction(rect layout.Rectangle, msg tea.Msg, typ InteractionType, z int) {
	dl.interactions = append(dl.interactions, interactionOp{
		InteractionOp: InteractionOp{Rect: rect, Msg: msg, Type: typ, Z: z},
		order:         dl.nextOrder(),
	})
}

// AddBackdrop swallows clicks and scrolls in a region.
func (dl *DisplayContext) AddBackdrop(rect layout.Rectangle, z int) {
	dl.AddInteraction(rect, nil, InteractionClick|InteractionScroll, z)
}

// Window clears rect to style and blocks the mouse from reaching what is
// underneath it. Dialogs draw their content on top of the returned box.
func (dl *DisplayContext) Window(rect layout.Rectangle, style lipgloss.Style, z int) layout.Box {
	dl.AddFill(rect, ' ', style, z)
	dl.AddBackdrop(rect, z)
	return layout.NewBox(rect)
}

// Clear drops every operation so the context can be reused for the next
// frame.
func (dl *DisplayContext) Clear() {
	dl.draws = dl.draws[:0]
	dl.effects = dl.effects[:0]
	dl.interactions = dl.interactions[:0]
	dl.orderCounter = 0
}

func (dl *DisplayContext) Len() int {
	return len(dl.draws) + len(dl.effects) + len(dl.interactions)
}

// Render executes draws and effects onto buf.
func (dl *DisplayContext) Render(buf uv.Screen) {
	ops := make([]renderOp, 0, len(dl.draws)+len(dl.effects))
	for _, op := range dl.draws {
		ops = append(ops, renderOp{z: op.Z, order: op.order, draw: &op.Draw})
	}
	for _, op := range dl.effects {
		ops = append(ops, renderOp{z: op.z, order: op.order, effect: op.effect})
	}
	sort.SliceStable(ops, func(i, j int) bool {
		if ops[i].z != ops[j].z {
			return ops[i].z < ops[j].z
		}
		return ops[i].order < ops[j].order
	})

	for _, op := range ops {
		if op.draw != nil {
			uv.NewStyledString(op.draw.Content).Draw(buf, op.draw.Rect)
			continue
		}
		op.effect.Apply(buf)
	}
}

func (dl *DisplayContext) RenderToString(width, height int) string {
	buf := uv.NewScreenBuffer(width, height)
	dl.Render(buf)
	return buf.Render()
}

// DrawList returns the draws in insertion order.
func (dl *DisplayContext) DrawList() []Draw {
	result := make([]Draw, len(dl.draws))
	for i, op := range dl.draws {
		result[i] = op.Draw
	}
	return result
}

// InteractionsList returns the interactions, highest Z first.
func (dl *DisplayContext) InteractionsList() []InteractionOp {
	sorted := dl.sortedInteractions()
	result := make([]InteractionOp, len(sorted))
	for i, op := range sorted {
		result[i] = op.InteractionOp
	}
	return result
}

func (dl *DisplayContext) sortedInteractions() []interactionOp {
	sorted := make([]interactionOp, len(dl.interactions))
	copy(sorted, dl.interactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Z != sorted[j].Z {
			return sorted[i].Z > sorted[j].Z
		}
		return sorted[i].order < sorted[j].order
	})
	return sorted
}

// ProcessMouseEvent maps a click or wheel event to the message of the
// topmost interaction under the pointer.
func (dl *DisplayContext) ProcessMouseEvent(msg tea.MouseMsg) (tea.Msg, bool) {
	switch msg.(type) {
	case tea.MouseClickMsg, tea.MouseWheelMsg:
		return processMouseEvent(dl.sortedInteractions(), msg)
	}
	return nil, false
}

type drawOp struct {
	Draw
	order int
}

type effectOp struct {
	effect Effect
	order  int
	z      int
}

type interactionOp struct {
	InteractionOp
	order int
}

type renderOp struct {
	z      int
	order  int
	draw   *Draw
	effect Effect
}
