package alert

import (
	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	alertStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(components.ColorOrange).Foreground(components.ColorOrange)
)

// Model shows the last error until any key is pressed.
type Model struct {
	message   string
	IsVisible bool
	width     int
}

func New() Model {
	return Model{}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		m.IsVisible = false
		return m, nil

	case messages.Error:
		if msg == nil {
			return m, nil
		}
		m.message = msg.Error()
		m.IsVisible = true
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if !m.IsVisible {
		return ""
	}

	width := max(m.width-2, 10)
	return alertStyle.Width(width).Render(wordwrap.String(m.message, width))
}
