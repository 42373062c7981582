package test

import (
	"reflect"
	"time"

	tea "charm.land/bubbletea/v2"
)

// cmdTimeout bounds commands such as tea.Tick that would otherwise block the
// test; their messages are dropped.
const cmdTimeout = 50 * time.Millisecond

const maxSteps = 100

type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

// SimulateModel runs cmd and feeds every message it produces back into the
// model, following batches and sequences, until no commands are left. It
// returns the messages that were delivered.
func SimulateModel(model updater, cmd tea.Cmd) []tea.Msg {
	var delivered []tea.Msg
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < maxSteps; steps++ {
		next := queue[0]
		queue = queue[1:]
		msg, ok := run(next)
		if !ok {
			continue
		}
		switch msg := msg.(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
			continue
		}
		if cmds, ok := sequence(msg); ok {
			queue = append(queue, cmds...)
			continue
		}
		delivered = append(delivered, msg)
		queue = append(queue, model.Update(msg))
	}
	return delivered
}

// Run executes cmd and returns its message, or nil when it produced nothing
// in time.
func Run(cmd tea.Cmd) tea.Msg {
	msg, _ := run(cmd)
	return msg
}

func run(cmd tea.Cmd) (tea.Msg, bool) {
	if cmd == nil {
		return nil, false
	}
	result := make(chan tea.Msg, 1)
	go func() { result <- cmd() }()
	select {
	case msg := <-result:
		return msg, msg != nil
	case <-time.After(cmdTimeout):
		return nil, false
	}
}

var cmdType = reflect.TypeOf(tea.Cmd(nil))

// sequence unpacks the message produced by tea.Sequence, whose type is not
// exported.
func sequence(msg tea.Msg) ([]tea.Cmd, bool) {
	v := reflect.ValueOf(msg)
	if v.Kind() != reflect.Slice || v.Type().Elem() != cmdType {
		return nil, false
	}
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds, true
}
