package output

import (
	"strings"

	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/andersonjoseph/loopdrill/internal/debugger"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	outputContentStyle lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorWhite)

	stdoutLabelStyle lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorGrey)
	stderrLabelStyle lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorOrange)
)

// Model is the scrolling pane of everything the program printed.
type Model struct {
	ID        int
	IsFocused bool
	lines     []string
	viewport  viewport.Model
	source    <-chan debugger.Output
}

func New(id int, source <-chan debugger.Output) Model {
	return Model{
		ID:       id,
		source:   source,
		viewport: viewport.New(30, 5),
	}
}

func waitForDebuggerOutput(c <-chan debugger.Output) tea.Cmd {
	return func() tea.Msg {
		o, ok := <-c
		if !ok {
			return nil
		}
		if o.Source == debugger.SourceStderr {
			return messages.DebuggerStderrReceived(o.Content)
		}
		return messages.DebuggerStdoutReceived(o.Content)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForDebuggerOutput(m.source)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.IsFocused:
		m.IsFocused = bool(msg)
		return m, nil

	case messages.DebuggerRestarted:
		m.lines = nil
		m.viewport.SetContent("")
		return m, nil

	case messages.DebuggerStdoutReceived:
		m.appendLine(stdoutLabelStyle.Render("[stdout] ") + string(msg))
		return m, waitForDebuggerOutput(m.source)

	case messages.DebuggerStderrReceived:
		m.appendLine(stderrLabelStyle.Render("[stderr] ") + string(msg))
		return m, waitForDebuggerOutput(m.source)

	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if !m.IsFocused {
			return m, nil
		}

		if msg.String() == "x" {
			m.lines = nil
			m.viewport.SetContent("")
			return m, nil
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Len is the number of lines received since the last restart.
func (m Model) Len() int {
	return len(m.lines)
}

func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	m.viewport.SetContent(strings.Join(m.lines, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	return outputContentStyle.Render(m.viewport.View())
}
