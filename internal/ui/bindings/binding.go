// Package bindings is the runtime form of the [[bindings]] config entries.
package bindings

import (
	"errors"
	"fmt"
	"maps"
)

var ErrInvalid = errors.New("invalid binding")

// Action is a dotted action name such as "canvas.paste".
type Action string

// Scope names the component that is allowed to receive a binding.
type Scope string

// Binding maps a key (or key sequence) to an action in a scope.
type Binding struct {
	Action Action
	Scope  Scope
	Key    []string
	Seq    []string
	Args   map[string]any
	Desc   string
}

// Paths lists the key paths that trigger b: one single-key path for each
// entry of Key, or Seq as a whole.
func (b Binding) Paths() [][]string {
	if len(b.Seq) > 0 {
		return [][]string{b.Seq}
	}
	paths := make([][]string, 0, len(b.Key))
	for _, key := range b.Key {
		paths = append(paths, []string{key})
	}
	return paths
}

// Check returns every problem found in b, joined.
func (b Binding) Check() error {
	var errs []error
	if b.Action == "" {
		errs = append(errs, errors.New("action is required"))
	}
	if b.Scope == "" {
		errs = append(errs, errors.New("scope is required"))
	}
	if (len(b.Key) > 0) == (len(b.Seq) > 0) {
		errs = append(errs, errors.New("exactly one of key or seq must be set"))
	}
	if len(b.Seq) == 1 {
		errs = append(errs, errors.New("seq has only one key, use key instead"))
	}
	for _, path := range b.Paths() {
		for _, key := range path {
			if key == "" {
				errs = append(errs, errors.New("empty key"))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q in scope %q: %w", ErrInvalid, b.Action, b.Scope, errors.Join(errs...))
}

func Validate(bindings []Binding) error {
	var errs []error
	for i, binding := range bindings {
		if err := binding.Check(); err != nil {
			errs = append(errs, fmt.Errorf("binding %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// Actions is the set of action names a binding may refer to.
type Actions map[Action]struct{}

func NewActions(names ...Action) Actions {
	actions := make(Actions, len(names))
	for _, name := range names {
		if name != "" {
			actions[name] = struct{}{}
		}
	}
	return actions
}

func (a Actions) Has(action Action) bool {
	_, ok := a[action]
	return ok
}

func (a Actions) Check(action Action) error {
	if !a.Has(action) {
		return fmt.Errorf("%w: unknown action %q", ErrInvalid, action)
	}
	return nil
}

// CloneArgs returns a shallow copy so resolved args can't alias config state.
func CloneArgs(args map[string]any) map[string]any {
	if len(args) == 0 {
		return nil
	}
	return maps.Clone(args)
}
