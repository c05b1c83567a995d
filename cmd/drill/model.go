package main

import (
	"errors"
	"strconv"

	"github.com/andersonjoseph/loopdrill/internal/components/alert"
	"github.com/andersonjoseph/loopdrill/internal/components/localvariables"
	"github.com/andersonjoseph/loopdrill/internal/components/output"
	"github.com/andersonjoseph/loopdrill/internal/components/sourcecode"
	"github.com/andersonjoseph/loopdrill/internal/components/status"
	"github.com/andersonjoseph/loopdrill/internal/components/window"
	"github.com/andersonjoseph/loopdrill/internal/debugger"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	"github.com/andersonjoseph/loopdrill/internal/paths"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"
)

const (
	countersWindowID = 1
	sourceWindowID   = 2
	outputWindowID   = 3

	statusHeight = 1
)

var windowHints = map[int]string{
	countersWindowID: "up/down: select, n: next line, c: next block, q: quit",
	sourceWindowID:   "j/k: scroll, g/G: top/bottom, n: next line, c: next block, q: quit",
	outputWindowID:   "j/k: scroll, x: clear, n: next line, c: next block, q: quit",
}

type model struct {
	session       debugger.Session
	logger        *zap.Logger
	root          string
	sidebar       sidebar
	sourceWindow  window.Model
	sourceCode    sourcecode.Model
	outputWindow  window.Model
	output        output.Model
	status        status.Model
	alert         alert.Model
	focusedWindow int
	busy          bool
}

func newModel(session debugger.Session, logger *zap.Logger) model {
	return model{
		session: session,
		logger:  logger,
		sidebar: sidebar{
			localVariables: localvariables.New(countersWindowID, "Counters"),
		},
		sourceWindow: window.New(sourceWindowID, "Source"),
		sourceCode:   sourcecode.New(sourceWindowID),
		outputWindow: window.New(outputWindowID, "Output"),
		output:       output.New(outputWindowID, session.Output()),
		status:       status.New(),
		alert:        alert.New(),
		// cleared by the first StateUpdated from Init
		busy: true,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(
		m.refresh(),
		func() tea.Msg {
			return messages.FocusedWindow(sourceWindowID)
		},
		m.output.Init(),
	)
}

func (m model) refresh() tea.Cmd {
	return func() tea.Msg {
		st, err := m.session.State()
		if err != nil {
			return messages.Error(err)
		}
		return messages.StateUpdated(st)
	}
}

func (m model) step(f func() (debugger.State, error)) tea.Cmd {
	return func() tea.Msg {
		st, err := f()
		if err != nil && !errors.Is(err, debugger.ErrExited) {
			return messages.Error(err)
		}
		return messages.StateUpdated(st)
	}
}

func (m model) restart() tea.Cmd {
	return func() tea.Msg {
		if err := m.session.Restart(); err != nil {
			return messages.Error(err)
		}
		return messages.DebuggerRestarted{}
	}
}

func sourceTitle(file string, line, width int) string {
	suffix := ":" + strconv.Itoa(line)
	return "Source " + paths.Trunc(file, max(width-12-len(suffix), 10)) + suffix
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg)
		return m, nil

	case messages.FocusedWindow:
		m.updateFocus(int(msg))
		return m, nil

	case messages.StateUpdated:
		m.busy = false
		m.logger.Debug("state updated",
			zap.Int("seq", msg.Seq),
			zap.String("block", msg.Block),
			zap.Bool("exited", msg.Exited))

		m.sidebar.localVariables, cmd = m.sidebar.localVariables.Update(msg)
		cmds = append(cmds, cmd)

		m.sourceCode, cmd = m.sourceCode.Update(msg)
		cmds = append(cmds, cmd)

		if msg.File != "" {
			m.sourceWindow.Title = sourceTitle(paths.Rel(m.root, msg.File), m.sourceCode.CurrentLine(), m.sourceWindow.Width)
		}

		m.status, cmd = m.status.Update(msg)
		cmds = append(cmds, cmd)

		return m, tea.Batch(cmds...)

	case messages.DebuggerRestarted:
		m.output, cmd = m.output.Update(msg)
		return m, tea.Batch(cmd, m.refresh())

	case messages.Error:
		m.busy = false
		if msg != nil {
			m.logger.Warn("error", zap.Error(msg))
		}
		m.alert, cmd = m.alert.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		m.alert, _ = m.alert.Update(msg)
		return m, m.handleKey(msg)

	default:
		m.output, cmd = m.output.Update(msg)
		return m, cmd
	}
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd

	switch key := msg.String(); key {
	case "q", "ctrl+c":
		return tea.Quit

	case "n", "c", "r":
		if m.busy {
			return nil
		}
		m.busy = true

		switch key {
		case "n":
			return m.step(m.session.Next)
		case "c":
			return m.step(m.session.Continue)
		default:
			return m.restart()
		}

	case "1", "2", "3":
		id, _ := strconv.Atoi(key)
		m.updateFocus(id)
		return nil
	}

	switch m.focusedWindow {
	case countersWindowID:
		m.sidebar.localVariables, cmd = m.sidebar.localVariables.Update(msg)
	case sourceWindowID:
		m.sourceCode, cmd = m.sourceCode.Update(msg)
	case outputWindowID:
		m.output, cmd = m.output.Update(msg)
	}

	return cmd
}

func (m *model) updateFocus(focusedWindow int) {
	m.focusedWindow = focusedWindow

	m.sidebar.localVariables, _ = m.sidebar.localVariables.Update(messages.IsFocused(focusedWindow == countersWindowID))
	m.sourceCode, _ = m.sourceCode.Update(messages.IsFocused(focusedWindow == sourceWindowID))
	m.output, _ = m.output.Update(messages.IsFocused(focusedWindow == outputWindowID))

	m.sourceWindow, _ = m.sourceWindow.Update(messages.FocusedWindow(focusedWindow))
	m.outputWindow, _ = m.outputWindow.Update(messages.FocusedWindow(focusedWindow))

	m.status, _ = m.status.Update(messages.UpdatedHint(windowHints[focusedWindow]))
}

func (m model) View() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			m.sidebar.localVariables.View(),
			lipgloss.JoinVertical(
				lipgloss.Left,
				m.sourceWindow.Render(m.sourceCode.View()),
				m.outputWindow.Render(m.output.View()),
			),
		),
		m.alert.View(),
		m.status.View(),
	)
}

func (m *model) handleResize(msg tea.WindowSizeMsg) {
	m.sidebar.calcSize(msg.Width, msg.Height)

	// the counters list draws its own border
	m.sidebar.localVariables, _ = m.sidebar.localVariables.Update(tea.WindowSizeMsg{
		Width:  m.sidebar.width - 2,
		Height: m.sidebar.height - 2,
	})

	mainWidth := max(msg.Width-m.sidebar.width, 10)
	available := max(msg.Height-statusHeight, 8)
	sourceHeight := available * 2 / 3
	outputHeight := available - sourceHeight

	m.sourceWindow, _ = m.sourceWindow.Update(tea.WindowSizeMsg{Width: mainWidth, Height: sourceHeight})
	m.sourceCode, _ = m.sourceCode.Update(m.sourceWindow.Inner())

	m.outputWindow, _ = m.outputWindow.Update(tea.WindowSizeMsg{Width: mainWidth, Height: outputHeight})
	m.output, _ = m.output.Update(m.outputWindow.Inner())

	m.status, _ = m.status.Update(tea.WindowSizeMsg{Width: msg.Width, Height: statusHeight})
	m.alert, _ = m.alert.Update(tea.WindowSizeMsg{Width: msg.Width})
}
