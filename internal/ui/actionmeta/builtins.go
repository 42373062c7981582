// Package actionmeta describes the built-in actions that bindings may refer to.
package actionmeta

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

type ArgKind string

const (
	ArgBool   ArgKind = "bool"
	ArgInt    ArgKind = "int"
	ArgString ArgKind = "string"
)

type ArgSpec struct {
	Kind     ArgKind
	Required bool
	Accepted []string
}

type ActionMetadata struct {
	Action string
	Desc   string
	Owners []string
	Args   map[string]ArgSpec
	// Palette lists the action in the command palette.
	Palette bool
}

var deltaArgs = map[string]ArgSpec{
	"dx": {Kind: ArgInt},
	"dy": {Kind: ArgInt},
}

var trimArgs = map[string]ArgSpec{
	"trim": {Kind: ArgBool},
}

var builtins = []ActionMetadata{
	{Action: "ui.quit", Desc: "quit", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.command_palette", Desc: "commands", Owners: []string{"ui"}},
	{Action: "ui.toggle_preview", Desc: "toggle preview", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.preview_expand", Desc: "expand preview", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.preview_shrink", Desc: "shrink preview", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.export_json", Desc: "export json", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.import_json", Desc: "import json", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.export_png", Desc: "export png", Owners: []string{"ui"}, Palette: true},
	{Action: "ui.export_text", Desc: "export text", Owners: []string{"ui"}, Args: trimArgs, Palette: true},
	{Action: "ui.copy_all", Desc: "copy as text", Owners: []string{"ui"}, Args: trimArgs, Palette: true},

	{Action: "canvas.move_cursor", Desc: "move cursor", Owners: []string{"canvas"}, Args: deltaArgs},
	{Action: "canvas.press", Desc: "press", Owners: []string{"canvas"}},
	{Action: "canvas.tool_select", Desc: "select tool", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.tool_rectangle", Desc: "rectangle tool", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.tool_line", Desc: "line tool", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.tool_text", Desc: "text tool", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.set_tool", Desc: "tool", Owners: []string{"canvas"}, Args: map[string]ArgSpec{
		"tool": {Kind: ArgString, Required: true, Accepted: []string{"select", "rectangle", "line", "text"}},
	}},
	{Action: "canvas.move_selection", Desc: "move", Owners: []string{"canvas"}, Args: deltaArgs},
	{Action: "canvas.resize_selection", Desc: "resize", Owners: []string{"canvas"}, Args: deltaArgs},
	{Action: "canvas.edit_text", Desc: "edit text", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.delete", Desc: "delete", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.copy", Desc: "copy", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.paste", Desc: "paste", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.select_last", Desc: "select last", Owners: []string{"canvas"}, Palette: true},
	{Action: "canvas.cancel", Desc: "cancel", Owners: []string{"canvas"}},
	{Action: "canvas.pan", Desc: "pan", Owners: []string{"canvas"}, Args: deltaArgs},
	{Action: "canvas.clear", Desc: "clear drawing", Owners: []string{"canvas"}, Palette: true},

	{Action: "input.apply", Desc: "accept", Owners: []string{"input"}},
	{Action: "input.cancel", Desc: "cancel", Owners: []string{"input"}},

	{Action: "editor.apply", Desc: "save text", Owners: []string{"editor"}},
	{Action: "editor.cancel", Desc: "cancel", Owners: []string{"editor"}},

	{Action: "choose.move_up", Desc: "up", Owners: []string{"choose"}},
	{Action: "choose.move_down", Desc: "down", Owners: []string{"choose"}},
	{Action: "choose.apply", Desc: "run", Owners: []string{"choose"}},
	{Action: "choose.cancel", Desc: "cancel", Owners: []string{"choose"}},

	{Action: "confirm.move_left", Desc: "previous", Owners: []string{"confirm"}},
	{Action: "confirm.move_right", Desc: "next", Owners: []string{"confirm"}},
	{Action: "confirm.apply", Desc: "confirm", Owners: []string{"confirm"}},
	{Action: "confirm.cancel", Desc: "cancel", Owners: []string{"confirm"}},
}

var byAction = func() map[string]ActionMetadata {
	m := make(map[string]ActionMetadata, len(builtins))
	for _, meta := range builtins {
		m[meta.Action] = meta
	}
	return m
}()

// BuiltInActions returns every built-in action name, sorted.
func BuiltInActions() []string {
	out := make([]string, 0, len(builtins))
	for _, meta := range builtins {
		out = append(out, meta.Action)
	}
	sort.Strings(out)
	return out
}

// PaletteActions returns the actions offered by the command palette in
// declaration order.
func PaletteActions() []ActionMetadata {
	var out []ActionMetadata
	for _, meta := range builtins {
		if meta.Palette {
			out = append(out, meta)
		}
	}
	return out
}

func IsBuiltInAction(action string) bool {
	_, ok := byAction[strings.TrimSpace(action)]
	return ok
}

func ActionMetadataFor(action string) (ActionMetadata, bool) {
	meta, ok := byAction[strings.TrimSpace(action)]
	return meta, ok
}

func ActionOwners(action string) []string {
	meta, ok := byAction[strings.TrimSpace(action)]
	if !ok {
		return nil
	}
	return meta.Owners
}

// ValidateBuiltInActionArgs checks args against the declared arg specs of a
// built-in action.
func ValidateBuiltInActionArgs(action string, args map[string]any) error {
	meta, ok := ActionMetadataFor(action)
	if !ok {
		return fmt.Errorf("unknown action %q", action)
	}
	for name := range args {
		if _, ok := meta.Args[name]; !ok {
			return fmt.Errorf("action %q does not take arg %q", action, name)
		}
	}
	names := make([]string, 0, len(meta.Args))
	for name := range meta.Args {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		spec := meta.Args[name]
		raw, present := args[name]
		if !present {
			if spec.Required {
				return fmt.Errorf("action %q requires arg %q", action, name)
			}
			continue
		}
		if err := checkKind(spec, raw); err != nil {
			return fmt.Errorf("action %q arg %q: %w", action, name, err)
		}
	}
	return nil
}

func checkKind(spec ArgSpec, raw any) error {
	switch spec.Kind {
	case ArgBool:
		if _, ok := raw.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", raw)
		}
	case ArgInt:
		switch v := raw.(type) {
		case int, int64:
		case float64:
			if v != float64(int64(v)) {
				return fmt.Errorf("expected integer, got %v", v)
			}
		default:
			return fmt.Errorf("expected integer, got %T", raw)
		}
	case ArgString:
		s, ok := raw.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", raw)
		}
		if len(spec.Accepted) > 0 && !slices.Contains(spec.Accepted, s) {
			return fmt.Errorf("%q is not accepted; accepted values are %s", s, strings.Join(spec.Accepted, ", "))
		}
	}
	return nil
}
