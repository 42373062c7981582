package ui

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"github.com/atotto/clipboard"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/document"
	"github.com/idursun/asciidraw/internal/drawing"
	"github.com/idursun/asciidraw/internal/raster"
	"github.com/idursun/asciidraw/internal/ui/actionmeta"
	"github.com/idursun/asciidraw/internal/ui/actions"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
	"github.com/idursun/asciidraw/internal/ui/canvas"
	"github.com/idursun/asciidraw/internal/ui/choose"
	"github.com/idursun/asciidraw/internal/ui/common"
	"github.com/idursun/asciidraw/internal/ui/confirmation"
	"github.com/idursun/asciidraw/internal/ui/dispatch"
	"github.com/idursun/asciidraw/internal/ui/editor"
	"github.com/idursun/asciidraw/internal/ui/flash"
	"github.com/idursun/asciidraw/internal/ui/helpkeys"
	"github.com/idursun/asciidraw/internal/ui/input"
	"github.com/idursun/asciidraw/internal/ui/intents"
	"github.com/idursun/asciidraw/internal/ui/layout"
	"github.com/idursun/asciidraw/internal/ui/preview"
	"github.com/idursun/asciidraw/internal/ui/render"
	"github.com/idursun/asciidraw/internal/ui/status"
	"github.com/idursun/asciidraw/internal/ui/toolbar"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

const (
	scopeUi     keybindings.Scope = "ui"
	scopeCanvas keybindings.Scope = "canvas"
)

type Model struct {
	canvas         *canvas.Model
	preview        *preview.Model
	toolbar        *toolbar.Model
	status         *status.Model
	flash          *flash.Model
	stacked        common.StackedModel
	resolver       *dispatch.Resolver
	sequenceHelp   []helpkeys.Entry
	displayContext *render.DisplayContext
	width          int
	height         int
	fileName       string
	exportTrim     bool
	// saved is the document snapshot taken when the drawing was last loaded
	// or saved, used to tell whether quitting loses work.
	saved string
	now   func() time.Time
}

// confirmedMsg runs intent once the user agreed to it.
type confirmedMsg struct {
	intent intents.Intent
}

func NewUI(store *drawing.Store, fileName string) *Model {
	if store == nil {
		store = drawing.NewStore()
	}
	m := &Model{
		canvas:   canvas.New(store),
		preview:  preview.New(),
		toolbar:  toolbar.New(),
		status:   status.New(),
		flash:    flash.New(),
		fileName: fileName,
		now:      time.Now,
	}
	m.saved = document.Snapshot(store.Shapes())
	m.initResolver()
	return m
}

func (m *Model) initResolver() {
	bindings := config.BindingsToRuntime(config.Current.Bindings)
	dispatcher, err := dispatch.NewDispatcher(bindings)
	if err != nil {
		slog.Error("key bindings rejected", "err", err)
		return
	}
	m.resolver = dispatch.NewResolver(dispatcher)
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.canvas.Init(), m.preview.Refresh(m.canvas.Snapshot()))
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return nil
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	case tea.PasteMsg:
		if m.stacked != nil {
			return m.stacked.Update(msg)
		}
		return nil
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case intents.Intent:
		return m.handleIntent(msg)
	case confirmedMsg:
		m.stacked = nil
		if _, ok := msg.intent.(intents.Quit); ok {
			return tea.Quit
		}
		return m.canvas.Update(msg.intent)
	case confirmation.CloseMsg:
		m.stacked = nil
	case canvas.ChangedMsg:
		return m.preview.Refresh(m.canvas.Snapshot())
	case canvas.OpenEditorMsg:
		return m.openEditor(msg)
	case editor.SavedMsg:
		m.stacked = nil
		return m.canvas.ApplyText(msg.ShapeID, msg.At, msg.Text)
	case editor.CancelledMsg, input.CancelledMsg, choose.CancelledMsg:
		m.stacked = nil
	case input.SelectedMsg:
		m.stacked = nil
		return m.submitPath(msg.Purpose, strings.TrimSpace(msg.Value))
	case choose.SelectedMsg:
		m.stacked = nil
		return m.dispatchAction(keybindings.Action(msg.Item.Action), nil)
	case savedMsg:
		if msg.done.Err == nil {
			m.fileName = msg.path
			m.saved = msg.snapshot
		}
		return m.flash.Update(msg.done)
	case importedMsg:
		return m.finishImport(msg)
	case flash.JobDoneMsg, spinner.TickMsg:
		return m.flash.Update(msg)
	}

	var cmds []tea.Cmd
	cmds = append(cmds, m.flash.Update(msg))
	cmds = append(cmds, m.preview.Update(msg))
	cmds = append(cmds, m.canvas.Update(msg))
	if m.stacked != nil {
		cmds = append(cmds, m.stacked.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if editing, ok := m.stacked.(common.Editable); ok && editing.IsEditing() && isText(msg) {
		return m.stacked.Update(msg)
	}
	if m.resolver != nil {
		result := m.resolver.ResolveKey(msg, m.dispatchScopes())
		if result.Pending {
			m.sequenceHelp = helpkeys.BuildFromContinuations(result.Continuations)
			return nil
		}
		m.sequenceHelp = nil
		if result.Intent != nil {
			return m.routeIntent(result.Owner, result.Intent)
		}
		if result.Consumed {
			return nil
		}
	}
	// unbound keys are text for the open dialog
	if m.stacked != nil {
		return m.stacked.Update(msg)
	}
	return nil
}

// isText reports whether msg types a character rather than a shortcut.
func isText(msg tea.KeyPressMsg) bool {
	return msg.Text != "" && msg.Mod&^tea.ModShift == 0
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.(type) {
	case tea.MouseMotionMsg, tea.MouseReleaseMsg:
		switch {
		case m.canvas.Dragging():
			return m.canvas.Update(msg)
		case m.preview.Dragging():
			return m.preview.Update(msg)
		}
		return nil
	}
	if m.displayContext == nil {
		return nil
	}
	interactionMsg, handled := m.displayContext.ProcessMouseEvent(msg)
	if !handled || interactionMsg == nil {
		return nil
	}
	return m.Update(interactionMsg)
}

// dispatchScopes returns the binding scopes keys resolve in, innermost first.
// An open dialog takes every key.
func (m *Model) dispatchScopes() []keybindings.Scope {
	if m.stacked != nil {
		return []keybindings.Scope{keybindings.Scope(m.stacked.StackedActionOwner())}
	}
	return []keybindings.Scope{scopeCanvas, scopeUi}
}

func (m *Model) dispatchAction(action keybindings.Action, args map[string]any) tea.Cmd {
	if m.resolver == nil {
		return nil
	}
	result := m.resolver.ResolveAction(action, args)
	if result.Intent == nil {
		return nil
	}
	return m.routeIntent(result.Owner, result.Intent)
}

func (m *Model) routeIntent(owner string, intent intents.Intent) tea.Cmd {
	switch {
	case dispatch.IsDialogOwner(owner):
		if m.stacked == nil {
			return nil
		}
		return m.stacked.Update(intent)
	case owner == actions.OwnerCanvas:
		return m.routeCanvas(intent)
	}
	return m.handleIntent(intent)
}

func (m *Model) routeCanvas(intent intents.Intent) tea.Cmd {
	switch intent.(type) {
	case intents.Cancel:
		_, selected := m.canvas.Selected()
		if !m.canvas.Busy() && !selected && m.flash.Any() {
			m.flash.DeleteOldest()
			return nil
		}
	case intents.ClearCanvas:
		if m.canvas.Store().Len() > 0 {
			return m.confirm("Clear the drawing?", "Clear", intent)
		}
	}
	return m.canvas.Update(intent)
}

func (m *Model) handleIntent(intent intents.Intent) tea.Cmd {
	switch intent := intent.(type) {
	case intents.Quit:
		if m.dirty() {
			return m.confirm("Quit without saving?", "Quit", intent)
		}
		return tea.Quit
	case intents.OpenCommandPalette:
		return m.openStacked(choose.New("Commands", m.paletteItems()))
	case intents.TogglePreview, intents.ResizePreview:
		cmd := m.preview.Update(intent)
		return tea.Batch(cmd, m.preview.Refresh(m.canvas.Snapshot()))
	case intents.AddMessage, intents.DismissOldest:
		return m.flash.Update(intent)
	case intents.ExportJSON:
		return m.promptPath(purposeExportJSON, "Save drawing as", m.jsonPath())
	case intents.ImportJSON:
		return m.promptPath(purposeImportJSON, "Open drawing", m.fileName)
	case intents.ExportPNG:
		return m.promptPath(purposeExportPNG, "Export PNG to", m.exportPath(".png"))
	case intents.ExportText:
		m.exportTrim = m.trim(intent.Trim)
		return m.promptPath(purposeExportText, "Export text to", m.exportPath(".txt"))
	case intents.CopyAll:
		return m.copyAll(m.trim(intent.Trim))
	}
	return m.canvas.Update(intent)
}

// confirm asks before running intent. label names the accepting option.
func (m *Model) confirm(question string, label string, intent intents.Intent) tea.Cmd {
	accept := func() tea.Msg { return confirmedMsg{intent: intent} }
	return m.openStacked(confirmation.New(
		[]string{question},
		confirmation.WithOption(label, accept, key.NewBinding(key.WithKeys("y"))),
		confirmation.WithOption("Cancel", confirmation.Close, key.NewBinding(key.WithKeys("n", "esc"))),
	))
}

func (m *Model) openStacked(model common.StackedModel) tea.Cmd {
	m.sequenceHelp = nil
	if m.resolver != nil {
		m.resolver.ResetSequence()
	}
	m.stacked = model
	return m.stacked.Init()
}

func (m *Model) openEditor(msg canvas.OpenEditorMsg) tea.Cmd {
	var e *editor.Model
	if msg.Text != nil {
		e = editor.Edit(msg.Text)
	} else {
		e = editor.New(msg.At)
	}
	if hint := formatHelp(m.scopeHelp(keybindings.Scope(e.StackedActionOwner()))); hint != "" {
		e.SetHint(hint)
	}
	return m.openStacked(e)
}

func (m *Model) paletteItems() []choose.Item {
	var items []choose.Item
	for _, meta := range actionmeta.PaletteActions() {
		items = append(items, choose.Item{
			Action: meta.Action,
			Desc:   meta.Desc,
			Keys:   m.keysFor(meta.Action),
		})
	}
	return items
}

func (m *Model) keysFor(action string) string {
	var labels []string
	for _, b := range config.Current.Bindings {
		if strings.TrimSpace(b.Action) != action || len(b.Args) > 0 {
			continue
		}
		if label := helpkeys.BindingLabel(b); label != "" {
			labels = append(labels, label)
		}
	}
	return strings.Join(labels, ", ")
}

func (m *Model) dirty() bool {
	return document.Snapshot(m.canvas.Snapshot()) != m.saved
}

func (m *Model) trim(arg *bool) bool {
	if arg != nil {
		return *arg
	}
	return config.Current.Export.TrimTrailingSpace
}

func (m *Model) copyAll(trim bool) tea.Cmd {
	shapes := m.canvas.Snapshot()
	if len(shapes) == 0 {
		return intents.Invoke(intents.AddMessage{Text: "Nothing to copy"})
	}
	if err := writeClipboard(raster.Text(shapes, trim)); err != nil {
		return intents.Invoke(intents.AddMessage{Err: fmt.Errorf("copy to clipboard: %w", err)})
	}
	return intents.Invoke(intents.AddMessage{Text: fmt.Sprintf("Copied %d shapes as text", len(shapes))})
}

func (m *Model) statusMode() string {
	if m.stacked != nil {
		switch owner := m.stacked.StackedActionOwner(); owner {
		case actions.OwnerChoose:
			return "commands"
		default:
			return owner
		}
	}
	return string(m.canvas.Tool())
}

func (m *Model) statusInfo() []string {
	cursor := m.canvas.Cursor()
	info := []string{fmt.Sprintf("%d,%d", cursor.X, cursor.Y)}
	if s, ok := m.canvas.Selected(); ok {
		b := drawing.Bounds(s)
		info = append(info, fmt.Sprintf("%s %dx%d", s.Kind(), b.Dx(), b.Dy()))
	}
	info = append(info, fmt.Sprintf("%d shapes", m.canvas.Store().Len()))
	if m.fileName != "" {
		name := filepath.Base(m.fileName)
		if m.dirty() {
			name += "*"
		}
		info = append(info, name)
	}
	return info
}

func (m *Model) scopeHelp(scopes ...keybindings.Scope) []helpkeys.Entry {
	return helpkeys.BuildFromBindings(scopes, config.Current.Bindings)
}

func formatHelp(entries []helpkeys.Entry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, e.Label+" "+e.Desc)
	}
	return strings.Join(parts, " • ")
}

func (m *Model) updateStatus() {
	m.status.SetMode(m.statusMode())
	m.status.SetInfo(m.statusInfo()...)
	switch {
	case m.sequenceHelp != nil:
		m.status.SetHelp(m.sequenceHelp)
	default:
		m.status.SetHelp(m.scopeHelp(m.dispatchScopes()...))
	}
	m.toolbar.SetActive(m.canvas.Tool())
}

func (m *Model) windowTitle() string {
	if m.fileName == "" {
		return "asciidraw"
	}
	return "asciidraw - " + filepath.Base(m.fileName)
}

func (m *Model) View() tea.View {
	var v tea.View
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = m.windowTitle()
	if m.width == 0 || m.height == 0 {
		return v
	}

	m.displayContext = render.NewDisplayContext()
	m.updateStatus()

	box := layout.NewBox(layout.Rect(0, 0, m.width, m.height))
	rows := box.V(layout.Fixed(1), layout.Fill(1), layout.Fixed(1))
	if len(rows) == 3 {
		m.toolbar.ViewRect(m.displayContext, rows[0])
		canvasBox, pane := m.preview.Layout(rows[1])
		m.canvas.ViewRect(m.displayContext, canvasBox)
		if m.preview.Visible() {
			m.preview.ViewRect(m.displayContext, pane)
		}
		m.status.ViewRect(m.displayContext, rows[2])
	}
	if m.stacked != nil {
		// the canvas and preview stay visible but don't take the mouse
		m.displayContext.AddBackdrop(box.R, render.ZModal)
		m.stacked.ViewRect(m.displayContext, box)
	}
	m.flash.ViewRect(m.displayContext, box)

	v.SetContent(m.displayContext.RenderToString(m.width, m.height))
	return v
}

var _ tea.Model = (*wrapper)(nil)

type (
	frameTickMsg struct{}
	// wrapper limits rendering to one frame per tick, so bursts of mouse
	// motion do not repaint the whole screen for every event.
	wrapper struct {
		ui                 *Model
		scheduledNextFrame bool
		render             bool
		cachedFrame        tea.View
	}
)

func (w *wrapper) Init() tea.Cmd {
	w.render = true
	return w.ui.Init()
}

func (w *wrapper) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(frameTickMsg); ok {
		w.render = true
		w.scheduledNextFrame = false
		return w, nil
	}
	cmd := w.ui.Update(msg)
	if !w.scheduledNextFrame {
		w.scheduledNextFrame = true
		return w, tea.Batch(cmd, tea.Tick(time.Millisecond*8, func(time.Time) tea.Msg {
			return frameTickMsg{}
		}))
	}
	return w, cmd
}

func (w *wrapper) View() tea.View {
	if w.render {
		w.cachedFrame = w.ui.View()
		w.render = false
	}
	return w.cachedFrame
}

// New returns the editor program model for store, which was loaded from
// fileName when that is not empty.
func New(store *drawing.Store, fileName string) tea.Model {
	return &wrapper{ui: NewUI(store, fileName)}
}
