package messages

import (
	"github.com/andersonjoseph/loopdrill/internal/debugger"
	tea "github.com/charmbracelet/bubbletea"
)

type Error error

func ErrorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		return Error(err)
	}
}

type FocusedWindow int
type IsFocused bool

// StateUpdated carries the stop location after a step, restart or start.
type StateUpdated debugger.State

type DebuggerRestarted struct{}

type DebuggerStdoutReceived string
type DebuggerStderrReceived string

// UpdatedHint replaces the key hints in the status bar; empty restores the
// defaults.
type UpdatedHint string
