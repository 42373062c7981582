package common

import (
	"context"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
)

var (
	debounceMu sync.Mutex
	debouncers = map[string]context.CancelFunc{}
	// generation identifies the latest call per key.
	generations = map[string]uint64{}
)

// Debounce delays cmd by duration. A newer call with the same key cancels the
// pending one, so only the last call of a burst produces a message.
func Debounce(key string, duration time.Duration, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	debounceMu.Lock()
	if previous, ok := debouncers[key]; ok {
		previous()
	}
	debouncers[key] = cancel
	generations[key]++
	gen := generations[key]
	debounceMu.Unlock()

	isLatest := func() bool {
		debounceMu.Lock()
		defer debounceMu.Unlock()
		return generations[key] == gen
	}

	return func() tea.Msg {
		defer func() {
			debounceMu.Lock()
			if generations[key] == gen {
				delete(debouncers, key)
			}
			debounceMu.Unlock()
			cancel()
		}()

		timer := time.NewTimer(duration)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return nil
		}
		if !isLatest() {
			return nil
		}
		msg := cmd()
		if ctx.Err() != nil || !isLatest() {
			return nil
		}
		return msg
	}
}
