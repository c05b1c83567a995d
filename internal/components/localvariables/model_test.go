package localvariables

import (
	"testing"

	"github.com/andersonjoseph/loopdrill/internal/debugger"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	"github.com/andersonjoseph/loopdrill/internal/types"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestLocalVariablesFollowState(t *testing.T) {
	m := New(1, "Counters")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 6})

	vars := []types.Variable{{Name: "a", Value: "2"}, {Name: "b", Value: "1"}}
	m, _ = m.Update(messages.StateUpdated(debugger.State{Vars: vars}))

	assert.Equal(t, vars, m.Items())
	view := m.View()
	assert.Contains(t, view, "[1] Counters")
	assert.Contains(t, view, "a = 2")
	assert.Contains(t, view, "b = 1")

	m, _ = m.Update(messages.StateUpdated(debugger.State{}))
	assert.Empty(t, m.Items())
}

func TestLocalVariablesKeysNeedFocus(t *testing.T) {
	m := New(1, "Counters")
	m, _ = m.Update(tea.WindowSizeMsg{Width: 30, Height: 6})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Nil(t, cmd)

	m, _ = m.Update(messages.IsFocused(true))
	assert.True(t, m.isFocused)
}
