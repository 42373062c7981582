package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/idursun/asciidraw/internal/ui/actionmeta"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
)

// StringList accepts either a single string or an array of strings, so
// key = "q" and key = ["q", "ctrl+c"] both work.
type StringList []string

func (l *StringList) UnmarshalTOML(value any) error {
	if s, ok := value.(string); ok {
		*l = StringList{s}
		return nil
	}
	items, ok := value.([]any)
	if !ok {
		return fmt.Errorf("expected string or list of strings, got %T", value)
	}
	out := make(StringList, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return fmt.Errorf("expected string in list, got %T", item)
		}
		out[i] = s
	}
	*l = out
	return nil
}

// BindingConfig is one [[bindings]] table.
type BindingConfig struct {
	Action string         `toml:"action"`
	Desc   string         `toml:"desc"`
	Key    StringList     `toml:"key"`
	Seq    StringList     `toml:"seq"`
	Scope  string         `toml:"scope"`
	Args   map[string]any `toml:"args"`
}

func (b BindingConfig) runtime() keybindings.Binding {
	return keybindings.Binding{
		Action: keybindings.Action(strings.TrimSpace(b.Action)),
		Scope:  keybindings.Scope(strings.TrimSpace(b.Scope)),
		Key:    append([]string(nil), b.Key...),
		Seq:    append([]string(nil), b.Seq...),
		Args:   keybindings.CloneArgs(b.Args),
		Desc:   strings.TrimSpace(b.Desc),
	}
}

// ValidateBindings checks the shape of every binding, that it names a
// built-in action and that its args fit that action. All problems are
// reported together.
func (c *Config) ValidateBindings() error {
	names := actionmeta.BuiltInActions()
	known := make([]keybindings.Action, len(names))
	for i, name := range names {
		known[i] = keybindings.Action(name)
	}
	actions := keybindings.NewActions(known...)

	var errs []error
	for i, b := range c.Bindings {
		rb := b.runtime()
		if err := rb.Check(); err != nil {
			errs = append(errs, fmt.Errorf("bindings[%d]: %w", i, err))
			continue
		}
		if err := actions.Check(rb.Action); err != nil {
			errs = append(errs, fmt.Errorf("bindings[%d]: %w", i, err))
			continue
		}
		if err := actionmeta.ValidateBuiltInActionArgs(string(rb.Action), b.Args); err != nil {
			errs = append(errs, fmt.Errorf("bindings[%d]: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// BindingsToRuntime converts config bindings to runtime bindings, skipping
// entries with empty scope or action.
func BindingsToRuntime(bindings []BindingConfig) []keybindings.Binding {
	out := make([]keybindings.Binding, 0, len(bindings))
	for _, b := range bindings {
		rb := b.runtime()
		if rb.Scope == "" || rb.Action == "" {
			continue
		}
		out = append(out, rb)
	}
	return out
}
