package window

import (
	"fmt"
	"strings"

	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	windowFocusedStyle = lipgloss.NewStyle().Foreground(components.ColorGreen)
	windowDefaultStyle = lipgloss.NewStyle()
)

// Model draws a numbered frame around a pane. Width and Height are the
// inner size available to the pane.
type Model struct {
	ID        int
	Title     string
	IsFocused bool
	Width     int
	Height    int
}

func New(id int, title string) Model {
	return Model{
		ID:    id,
		Title: title,
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.FocusedWindow:
		m.IsFocused = int(msg) == m.ID

	case tea.WindowSizeMsg:
		m.Width = max(msg.Width-2, 0)
		m.Height = max(msg.Height-2, 0)
	}

	return m, nil
}

// Inner is the size message to forward to the framed pane.
func (m Model) Inner() tea.WindowSizeMsg {
	return tea.WindowSizeMsg{Width: m.Width, Height: m.Height}
}

func (m Model) Render(content string) string {
	style := windowDefaultStyle
	if m.IsFocused {
		style = windowFocusedStyle
	}

	title := style.Render(fmt.Sprintf("[%d] %s", m.ID, m.Title))
	titleWidth := lipgloss.Width(title)
	topBorder := style.Render("┌") + title + style.Render(strings.Repeat("─", max(m.Width-titleWidth, 0))) + style.Render("┐")

	return lipgloss.JoinVertical(lipgloss.Top,
		topBorder,
		style.
			Width(m.Width).
			Height(m.Height).
			Border(lipgloss.NormalBorder()).
			BorderForeground(style.GetForeground()).
			BorderTop(false).
			Render(content),
	)
}
