package status

import (
	"fmt"

	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/andersonjoseph/loopdrill/internal/loops"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultHint = "n: next line, c: next block, r: restart, 1-3: focus, q: quit"

var (
	exitedStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder(), true).
			BorderForeground(components.ColorOrange).
			Foreground(components.ColorOrange)

	hintStyle = lipgloss.NewStyle().
			Foreground(components.ColorPurple)

	progressStyle = lipgloss.NewStyle().
			Foreground(components.ColorGreen).
			Bold(true)
)

// Model is the bottom bar: progress through the program and key hints.
type Model struct {
	width  int
	hint   string
	seq    int
	block  string
	exited bool
}

func New() Model {
	return Model{hint: defaultHint}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case messages.StateUpdated:
		m.seq = msg.Seq
		m.block = msg.Block
		m.exited = msg.Exited
		return m, nil

	case messages.UpdatedHint:
		m.hint = string(msg)
		if m.hint == "" {
			m.hint = defaultHint
		}
		return m, nil
	}

	return m, nil
}

func (m Model) Progress() string {
	if m.block == "" {
		return fmt.Sprintf("line %d/%d", m.seq, loops.TotalLines)
	}
	return fmt.Sprintf("line %d/%d · %s", m.seq, loops.TotalLines, m.block)
}

func (m Model) View() string {
	if m.exited {
		return exitedStyle.Width(max(m.width-2, 0)).Render("program finished, press r to restart or q to quit")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		progressStyle.Render(m.Progress()),
		hintStyle.Render("  "+m.hint),
	)
}
