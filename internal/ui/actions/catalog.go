package actions

import (
	"strings"

	"github.com/idursun/asciidraw/internal/ui/actionargs"
	"github.com/idursun/asciidraw/internal/ui/actionmeta"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
	"github.com/idursun/asciidraw/internal/ui/intents"
)

const (
	OwnerUi      = "ui"
	OwnerCanvas  = "canvas"
	OwnerInput   = "input"
	OwnerEditor  = "editor"
	OwnerChoose  = "choose"
	OwnerConfirm = "confirm"
)

const (
	UiQuit           keybindings.Action = "ui.quit"
	UiCommandPalette keybindings.Action = "ui.command_palette"
	UiTogglePreview  keybindings.Action = "ui.toggle_preview"
	UiPreviewExpand  keybindings.Action = "ui.preview_expand"
	UiPreviewShrink  keybindings.Action = "ui.preview_shrink"
	UiExportJSON     keybindings.Action = "ui.export_json"
	UiImportJSON     keybindings.Action = "ui.import_json"
	UiExportPNG      keybindings.Action = "ui.export_png"
	UiExportText     keybindings.Action = "ui.export_text"
	UiCopyAll        keybindings.Action = "ui.copy_all"

	CanvasMoveCursor      keybindings.Action = "canvas.move_cursor"
	CanvasPress           keybindings.Action = "canvas.press"
	CanvasToolSelect      keybindings.Action = "canvas.tool_select"
	CanvasToolRectangle   keybindings.Action = "canvas.tool_rectangle"
	CanvasToolLine        keybindings.Action = "canvas.tool_line"
	CanvasToolText        keybindings.Action = "canvas.tool_text"
	CanvasSetTool         keybindings.Action = "canvas.set_tool"
	CanvasMoveSelection   keybindings.Action = "canvas.move_selection"
	CanvasResizeSelection keybindings.Action = "canvas.resize_selection"
	CanvasEditText        keybindings.Action = "canvas.edit_text"
	CanvasDelete          keybindings.Action = "canvas.delete"
	CanvasCopy            keybindings.Action = "canvas.copy"
	CanvasPaste           keybindings.Action = "canvas.paste"
	CanvasSelectLast      keybindings.Action = "canvas.select_last"
	CanvasCancel          keybindings.Action = "canvas.cancel"
	CanvasPan             keybindings.Action = "canvas.pan"
	CanvasClear           keybindings.Action = "canvas.clear"

	InputApply  keybindings.Action = "input.apply"
	InputCancel keybindings.Action = "input.cancel"

	EditorApply  keybindings.Action = "editor.apply"
	EditorCancel keybindings.Action = "editor.cancel"

	ChooseMoveUp   keybindings.Action = "choose.move_up"
	ChooseMoveDown keybindings.Action = "choose.move_down"
	ChooseApply    keybindings.Action = "choose.apply"
	ChooseCancel   keybindings.Action = "choose.cancel"

	ConfirmMoveLeft  keybindings.Action = "confirm.move_left"
	ConfirmMoveRight keybindings.Action = "confirm.move_right"
	ConfirmApply     keybindings.Action = "confirm.apply"
	ConfirmCancel    keybindings.Action = "confirm.cancel"
)

const previewStep = 5

// ResolveByAction maps an action to its intent using the first owner listed
// for it in the action metadata.
func ResolveByAction(action keybindings.Action, args map[string]any) (intents.Intent, string, bool) {
	name := keybindings.Action(strings.TrimSpace(string(action)))
	for _, owner := range actionmeta.ActionOwners(string(name)) {
		if intent, ok := ResolveIntent(owner, name, args); ok {
			return intent, owner, true
		}
	}
	return nil, "", false
}

// ResolveIntent maps an action owned by owner to its intent.
func ResolveIntent(owner string, action keybindings.Action, args map[string]any) (intents.Intent, bool) {
	switch owner {
	case OwnerUi:
		return resolveUi(action, args)
	case OwnerCanvas:
		return resolveCanvas(action, args)
	case OwnerInput:
		switch action {
		case InputApply:
			return intents.Apply{}, true
		case InputCancel:
			return intents.Cancel{}, true
		}
	case OwnerEditor:
		switch action {
		case EditorApply:
			return intents.Apply{}, true
		case EditorCancel:
			return intents.Cancel{}, true
		}
	case OwnerChoose:
		switch action {
		case ChooseMoveUp:
			return intents.Navigate{Delta: -1}, true
		case ChooseMoveDown:
			return intents.Navigate{Delta: 1}, true
		case ChooseApply:
			return intents.Apply{}, true
		case ChooseCancel:
			return intents.Cancel{}, true
		}
	case OwnerConfirm:
		switch action {
		case ConfirmMoveLeft:
			return intents.Navigate{Delta: -1}, true
		case ConfirmMoveRight:
			return intents.Navigate{Delta: 1}, true
		case ConfirmApply:
			return intents.Apply{}, true
		case ConfirmCancel:
			return intents.Cancel{}, true
		}
	}
	return nil, false
}

func resolveUi(action keybindings.Action, args map[string]any) (intents.Intent, bool) {
	switch action {
	case UiQuit:
		return intents.Quit{}, true
	case UiCommandPalette:
		return intents.OpenCommandPalette{}, true
	case UiTogglePreview:
		return intents.TogglePreview{}, true
	case UiPreviewExpand:
		return intents.ResizePreview{Delta: previewStep}, true
	case UiPreviewShrink:
		return intents.ResizePreview{Delta: -previewStep}, true
	case UiExportJSON:
		return intents.ExportJSON{}, true
	case UiImportJSON:
		return intents.ImportJSON{}, true
	case UiExportPNG:
		return intents.ExportPNG{}, true
	case UiExportText:
		return intents.ExportText{Trim: actionargs.BoolArg(args, "trim")}, true
	case UiCopyAll:
		return intents.CopyAll{Trim: actionargs.BoolArg(args, "trim")}, true
	}
	return nil, false
}

func resolveCanvas(action keybindings.Action, args map[string]any) (intents.Intent, bool) {
	dx := actionargs.IntArg(args, "dx", 0)
	dy := actionargs.IntArg(args, "dy", 0)
	switch action {
	case CanvasMoveCursor:
		return intents.MoveCursor{DX: dx, DY: dy}, true
	case CanvasPress:
		return intents.Press{}, true
	case CanvasToolSelect:
		return intents.SelectTool{Tool: intents.ToolSelect}, true
	case CanvasToolRectangle:
		return intents.SelectTool{Tool: intents.ToolRectangle}, true
	case CanvasToolLine:
		return intents.SelectTool{Tool: intents.ToolLine}, true
	case CanvasToolText:
		return intents.SelectTool{Tool: intents.ToolText}, true
	case CanvasSetTool:
		tool := intents.Tool(actionargs.StringArg(args, "tool", string(intents.ToolSelect)))
		return intents.SelectTool{Tool: tool}, true
	case CanvasMoveSelection:
		return intents.MoveSelection{DX: dx, DY: dy}, true
	case CanvasResizeSelection:
		return intents.ResizeSelection{DX: dx, DY: dy}, true
	case CanvasEditText:
		return intents.EditText{}, true
	case CanvasDelete:
		return intents.DeleteSelection{}, true
	case CanvasCopy:
		return intents.Copy{}, true
	case CanvasPaste:
		return intents.Paste{}, true
	case CanvasSelectLast:
		return intents.SelectLast{}, true
	case CanvasCancel:
		return intents.Cancel{}, true
	case CanvasPan:
		return intents.Pan{DX: dx, DY: dy}, true
	case CanvasClear:
		return intents.ClearCanvas{}, true
	}
	return nil, false
}
