package dispatch

import (
	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/ui/actions"
	keybindings "github.com/idursun/asciidraw/internal/ui/bindings"
	"github.com/idursun/asciidraw/internal/ui/intents"
)

// Result is a key press resolved all the way to an intent and the component
// that owns it.
type Result struct {
	Intent        intents.Intent
	Owner         string
	Args          map[string]any
	Pending       bool
	Consumed      bool
	Continuations []Continuation
}

var dialogOwners = map[string]bool{
	actions.OwnerInput:   true,
	actions.OwnerEditor:  true,
	actions.OwnerChoose:  true,
	actions.OwnerConfirm: true,
}

// IsDialogOwner reports whether intents of owner go to the stacked dialog.
func IsDialogOwner(owner string) bool {
	return dialogOwners[owner]
}

type Resolver struct {
	dispatcher *Dispatcher
}

func NewResolver(d *Dispatcher) *Resolver {
	return &Resolver{dispatcher: d}
}

func (r *Resolver) ResolveKey(msg tea.KeyMsg, scopes []keybindings.Scope) Result {
	if r.dispatcher == nil {
		return Result{}
	}

	resolved := r.dispatcher.Resolve(msg, scopes)
	switch {
	case resolved.Pending:
		return Result{Pending: true, Consumed: true, Continuations: resolved.Continuations}
	case resolved.Action != "":
		return r.ResolveAction(resolved.Action, resolved.Args)
	default:
		return Result{Consumed: resolved.Consumed}
	}
}

// ResolveAction resolves an action picked without a key, e.g. from the
// command palette. An action nothing handles resolves to the zero Result.
func (r *Resolver) ResolveAction(action keybindings.Action, args map[string]any) Result {
	intent, owner, ok := actions.ResolveByAction(action, args)
	if !ok {
		return Result{}
	}
	return Result{Intent: intent, Owner: owner, Args: args, Consumed: true}
}

func (r *Resolver) ResetSequence() {
	if r.dispatcher != nil {
		r.dispatcher.ResetSequence()
	}
}
