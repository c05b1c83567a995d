package sourcecode

import (
	"fmt"
	"strings"

	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorFocusedStyle = lipgloss.NewStyle().Background(components.ColorPurple).Foreground(components.ColorWhite).Bold(true)
	cursorDefaultStyle = lipgloss.NewStyle().Background(components.ColorGrey).Foreground(components.ColorBlack)

	lineNumberStyle = lipgloss.NewStyle().Foreground(components.ColorGrey)
)

type viewportWithCursorModel struct {
	isFocused bool
	width     int
	height    int
	cursor    int
	viewport  viewport.Model
	content   []string
}

func newViewportWithCursor() viewportWithCursorModel {
	return viewportWithCursorModel{
		viewport: viewport.New(0, 0),
	}
}

func (m viewportWithCursorModel) Update(msg tea.Msg) (viewportWithCursorModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		m.viewport.Width = m.width
		m.viewport.Height = m.height

		m.ensureCursorVisible()
		m.updateContent()
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			m.viewport.ScrollDown(1)
		case "k", "up":
			m.viewport.ScrollUp(1)
		case "g":
			m.viewport.GotoTop()
		case "G":
			m.viewport.GotoBottom()
		}
	}

	return m, nil
}

func (m viewportWithCursorModel) View() string {
	return m.viewport.View()
}

func (m *viewportWithCursorModel) setFocus(f bool) {
	m.isFocused = f
	m.updateContent()
}

// CurrentLineNumber is 1-based.
func (m viewportWithCursorModel) CurrentLineNumber() int {
	return m.cursor + 1
}

func (m *viewportWithCursorModel) jumpToLine(line int) {
	if len(m.content) == 0 {
		return
	}

	m.cursor = min(max(line-1, 0), len(m.content)-1)
	m.ensureCursorVisible()
	m.updateContent()
}

func (m *viewportWithCursorModel) updateContent() {
	if len(m.content) == 0 {
		m.viewport.SetContent("")
		return
	}

	cursorStyle := cursorDefaultStyle
	if m.isFocused {
		cursorStyle = cursorFocusedStyle
	}

	lines := make([]string, len(m.content))
	for i, line := range m.content {
		lineNumber := fmt.Sprintf("%4d │ ", i+1)
		if m.cursor == i {
			lineNumber = cursorStyle.Render(lineNumber)
		} else {
			lineNumber = lineNumberStyle.Render(lineNumber)
		}

		// reset ANSI codes so highlighting does not bleed into the next line
		lines[i] = lineNumber + line + "\033[0m"
	}

	m.viewport.SetContent(strings.Join(lines, "\n"))
}

// ensureCursorVisible keeps the cursor in the middle third of the viewport.
func (m *viewportWithCursorModel) ensureCursorVisible() {
	if m.viewport.Height <= 0 {
		return
	}

	top := m.viewport.YOffset
	bottom := top + m.viewport.Height - 1

	if m.cursor < top || m.cursor > bottom {
		m.viewport.SetYOffset(max(m.cursor-m.viewport.Height/3, 0))
	}
}

func (m *viewportWithCursorModel) setContent(content []string) {
	m.content = content
	if m.cursor >= len(content) {
		m.cursor = max(len(content)-1, 0)
	}
	m.viewport.Width = m.width
	m.viewport.Height = m.height
	m.updateContent()
}
