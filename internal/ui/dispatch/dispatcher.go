package dispatch

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/idursun/asciidraw/internal/ui/bindings"
)

// Continuation is a key that extends the sequence typed so far.
type Continuation struct {
	Key    string
	Desc   string
	Action bindings.Action
	IsLeaf bool
}

// ResolveResult is the outcome of resolving a key press.
type ResolveResult struct {
	Action        bindings.Action
	Scope         bindings.Scope
	Args          map[string]any
	Pending       bool
	Consumed      bool
	Continuations []Continuation
}

// keyNode is one step of a key path. Nodes one step below a root carry
// single-key bindings, deeper nodes carry the bindings that end a sequence.
type keyNode struct {
	binding *bindings.Binding
	// first sequence that reached this node, used for help text
	via  *bindings.Binding
	next map[string]*keyNode
	keys []string
}

func (n *keyNode) step(key string) *keyNode {
	if n == nil {
		return nil
	}
	return n.next[key]
}

func (n *keyNode) insert(path []string, b *bindings.Binding) {
	at := n
	for _, key := range path {
		key = normalizeKey(key)
		child := at.step(key)
		if child == nil {
			if at.next == nil {
				at.next = make(map[string]*keyNode)
			}
			child = &keyNode{via: b}
			at.next[key] = child
			at.keys = append(at.keys, key)
		}
		at = child
	}
	// later bindings replace earlier ones on the same path
	at.binding = b
}

type cursor struct {
	scope bindings.Scope
	node  *keyNode
}

// Dispatcher resolves key presses against a chain of scopes. A key that
// starts a sequence in any active scope enters sequence mode, which lasts
// until the sequence completes, esc is pressed or a key matches nothing.
type Dispatcher struct {
	roots  map[bindings.Scope]*keyNode
	typed  []string
	active []cursor
}

func NewDispatcher(available []bindings.Binding) (*Dispatcher, error) {
	if err := bindings.Validate(available); err != nil {
		return nil, err
	}

	d := &Dispatcher{roots: make(map[bindings.Scope]*keyNode)}
	for _, b := range available {
		root, ok := d.roots[b.Scope]
		if !ok {
			root = &keyNode{}
			d.roots[b.Scope] = root
		}
		for _, path := range b.Paths() {
			root.insert(path, &b)
		}
	}
	return d, nil
}

func (d *Dispatcher) ResetSequence() {
	d.typed = nil
	d.active = nil
}

// Resolve applies dispatch rules for a key in the provided scope chain.
// Scopes must be ordered from innermost to outermost.
func (d *Dispatcher) Resolve(msg tea.KeyMsg, scopes []bindings.Scope) ResolveResult {
	key := normalizeKey(msg.String())
	if key == "" {
		return ResolveResult{}
	}
	if len(d.active) > 0 {
		return d.advance(key)
	}

	var starts []cursor
	for _, scope := range scopes {
		if n := d.roots[scope].step(key); n != nil && len(n.next) > 0 {
			starts = append(starts, cursor{scope: scope, node: n})
		}
	}
	if len(starts) > 0 {
		d.typed = []string{key}
		d.active = starts
		return d.pending()
	}

	for _, scope := range scopes {
		if n := d.roots[scope].step(key); n != nil && n.binding != nil {
			return matched(scope, n.binding)
		}
	}
	return ResolveResult{}
}

func (d *Dispatcher) advance(key string) ResolveResult {
	if key == "esc" {
		d.ResetSequence()
		return ResolveResult{Consumed: true}
	}

	var next []cursor
	for _, c := range d.active {
		if n := c.node.step(key); n != nil {
			next = append(next, cursor{scope: c.scope, node: n})
		}
	}
	if len(next) == 0 {
		// the key is swallowed, it belonged to the abandoned sequence
		d.ResetSequence()
		return ResolveResult{Consumed: true}
	}

	for _, c := range next {
		if c.node.binding != nil {
			d.ResetSequence()
			return matched(c.scope, c.node.binding)
		}
	}

	d.typed = append(d.typed, key)
	d.active = next
	return d.pending()
}

func (d *Dispatcher) pending() ResolveResult {
	seen := make(map[string]struct{})
	var continuations []Continuation
	for _, c := range d.active {
		for _, key := range c.node.keys {
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}

			n := c.node.next[key]
			b := n.binding
			if b == nil {
				b = n.via
			}
			continuations = append(continuations, Continuation{
				Key:    key,
				Desc:   b.Desc,
				Action: b.Action,
				IsLeaf: n.binding != nil,
			})
		}
	}
	return ResolveResult{Pending: true, Consumed: true, Continuations: continuations}
}

func matched(scope bindings.Scope, b *bindings.Binding) ResolveResult {
	return ResolveResult{Action: b.Action, Scope: scope, Args: bindings.CloneArgs(b.Args), Consumed: true}
}

func normalizeKey(key string) string {
	if strings.EqualFold(key, "space") {
		return " "
	}
	return key
}
