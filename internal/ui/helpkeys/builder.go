// Package helpkeys turns bindings into the "key description" pairs shown in
// the status bar.
package helpkeys

import (
	"cmp"
	"slices"
	"strings"

	"github.com/idursun/asciidraw/internal/config"
	"github.com/idursun/asciidraw/internal/ui/actionmeta"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
	"github.com/idursun/asciidraw/internal/ui/dispatch"
)

// Entry is a status-help key entry rendered as "key description".
type Entry struct {
	Label string
	Desc  string
}

var arrows = map[string]string{
	"up":    "↑",
	"down":  "↓",
	"left":  "←",
	"right": "→",
}

// BuildFromBindings returns help entries for a scope chain ordered from
// innermost to outermost. An outer scope does not repeat an action name an
// inner scope already showed, so input.cancel hides behind editor.cancel.
// Keys of one action share an entry unless the binding has its own desc,
// which makes the arrows read "↑/↓/←/→ move cursor".
func BuildFromBindings(scopes []keybindings.Scope, bindings []config.BindingConfig) []Entry {
	var entries []Entry
	shown := make(map[string]bool)
	for _, scope := range scopes {
		scoped := inScope(bindings, scope)
		byAction := make(map[string]int)
		for _, b := range scoped {
			action := strings.TrimSpace(b.Action)
			label := BindingLabel(b)
			if action == "" || label == "" || shown[actionToken(action)] {
				continue
			}
			if i, ok := byAction[action]; ok && strings.TrimSpace(b.Desc) == "" {
				entries[i].Label += "/" + label
				continue
			}
			byAction[action] = len(entries)
			entries = append(entries, Entry{Label: label, Desc: describe(b.Desc, action)})
		}
		for _, b := range scoped {
			shown[actionToken(strings.TrimSpace(b.Action))] = true
		}
	}
	return entries
}

// BuildFromContinuations lists the keys that can follow a pending sequence,
// sorted by key. Keys that lead further into a sequence end in "...".
func BuildFromContinuations(continuations []dispatch.Continuation) []Entry {
	if len(continuations) == 0 {
		return nil
	}
	entries := make([]Entry, 0, len(continuations))
	for _, c := range continuations {
		desc := describe(c.Desc, string(c.Action))
		if !c.IsLeaf {
			desc += " ..."
		}
		entries = append(entries, Entry{Label: NormalizeDisplayKey(c.Key), Desc: desc})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Or(strings.Compare(a.Label, b.Label), strings.Compare(a.Desc, b.Desc))
	})
	return entries
}

// BindingLabel joins alternative keys with "/" and sequence keys with a space.
func BindingLabel(b config.BindingConfig) string {
	if len(b.Key) > 0 {
		return joinKeys(b.Key, "/")
	}
	return joinKeys(b.Seq, " ")
}

func NormalizeDisplayKey(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if arrow, ok := arrows[strings.ToLower(key)]; ok {
		return arrow
	}
	return key
}

func joinKeys(keys []string, sep string) string {
	pretty := make([]string, len(keys))
	for i, k := range keys {
		pretty[i] = NormalizeDisplayKey(k)
	}
	return strings.Join(pretty, sep)
}

func inScope(bindings []config.BindingConfig, scope keybindings.Scope) []config.BindingConfig {
	var out []config.BindingConfig
	for _, b := range bindings {
		if keybindings.Scope(strings.TrimSpace(b.Scope)) == scope {
			out = append(out, b)
		}
	}
	return out
}

// describe prefers the configured desc, then the built-in action desc, then
// the last segment of the action name with underscores as spaces.
func describe(desc string, action string) string {
	if desc = strings.TrimSpace(desc); desc != "" {
		return desc
	}
	if meta, ok := actionmeta.ActionMetadataFor(action); ok && meta.Desc != "" {
		return meta.Desc
	}
	return strings.ReplaceAll(actionToken(action), "_", " ")
}

func actionToken(action string) string {
	if token := action[strings.LastIndexByte(action, '.')+1:]; token != "" {
		return token
	}
	return action
}
