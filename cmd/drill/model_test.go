package main

import (
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/andersonjoseph/loopdrill/internal/debugger"
	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestModel(t *testing.T) model {
	t.Helper()
	m := newModel(debugger.NewStepper(zap.NewNop()), zap.NewNop())
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next, _ = next.Update(m.refresh()())
	return next.(model)
}

// press sends a key and feeds the resulting message back into the model.
func press(t *testing.T, m model, k string) model {
	t.Helper()
	next, cmd := m.Update(key(k))
	require.NotNil(t, cmd)
	next, _ = next.Update(cmd())
	return next.(model)
}

func TestModelStepsThroughProgram(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "n")
	assert.Equal(t, "line 1/42 · greeting", m.status.Progress())
	assert.False(t, m.busy)

	m = press(t, m, "n")
	assert.Equal(t, "line 2/42 · range", m.status.Progress())
	assert.Equal(t, "i", m.sidebar.localVariables.Items()[0].Name)

	m = press(t, m, "c")
	assert.Equal(t, "line 7/42 · start-end", m.status.Progress())
	assert.Contains(t, m.View(), "[2] Source")
}

func TestModelBusyUntilFirstState(t *testing.T) {
	m := newModel(debugger.NewStepper(zap.NewNop()), zap.NewNop())

	next, cmd := m.Update(key("n"))
	assert.Nil(t, cmd)

	next, _ = next.Update(m.refresh()())
	_, cmd = next.Update(key("n"))
	assert.NotNil(t, cmd)
}

func TestModelSourceTitleFollowsLine(t *testing.T) {
	m := newTestModel(t)

	m = press(t, m, "n")
	line := m.sourceCode.CurrentLine()
	assert.Positive(t, line)
	assert.True(t, strings.HasSuffix(m.sourceWindow.Title, "loops.go:"+strconv.Itoa(line)), m.sourceWindow.Title)
}

func TestModelIgnoresKeysWhileBusy(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(key("n"))
	require.NotNil(t, cmd)
	m = next.(model)
	assert.True(t, m.busy)

	_, cmd = m.Update(key("n"))
	assert.Nil(t, cmd)
}

func TestModelRunsToExitAndRestarts(t *testing.T) {
	m := newTestModel(t)

	for range len(loops.Blocks) + 1 {
		m = press(t, m, "c")
	}
	assert.Contains(t, m.View(), "program finished")

	next, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	assert.Equal(t, messages.DebuggerRestarted{}, cmd())

	next, cmd = next.Update(messages.DebuggerRestarted{})
	require.NotNil(t, cmd)
	m = next.(model)
	assert.Equal(t, 0, m.output.Len())
}

func TestModelFocus(t *testing.T) {
	m := newTestModel(t)

	next, cmd := m.Update(key("3"))
	assert.Nil(t, cmd)
	m = next.(model)
	assert.Equal(t, outputWindowID, m.focusedWindow)
	assert.True(t, m.outputWindow.IsFocused)
	assert.False(t, m.sourceWindow.IsFocused)
}

func TestModelShowsErrors(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(messages.Error(errors.New("error continuing: boom")))
	m = next.(model)
	assert.Contains(t, m.View(), "boom")

	next, _ = m.Update(key("j"))
	assert.NotContains(t, next.View(), "boom")
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestSidebarCalcSize(t *testing.T) {
	var s sidebar

	s.calcSize(200, 50)
	assert.Equal(t, 40, s.width)
	assert.Equal(t, 47, s.height)

	s.calcSize(30, 4)
	assert.Equal(t, 20, s.width)
	assert.Equal(t, 3, s.height)
}

func TestModelFocusUpdatesHint(t *testing.T) {
	m := newTestModel(t)

	next, _ := m.Update(key("3"))
	assert.Contains(t, next.View(), "x: clear")

	next, _ = next.Update(key("2"))
	assert.Contains(t, next.View(), "g/G: top/bottom")
}
