package intents

import tea "charm.land/bubbletea/v2"

// Intent represents a high-level action the editor can perform.
// It decouples inputs (keyboard, mouse, command palette) from the capability.
type Intent interface {
	isIntent()
}

func Invoke(intent Intent) tea.Cmd {
	return func() tea.Msg {
		return intent
	}
}
