package sourcecode

import (
	"github.com/andersonjoseph/loopdrill/internal/messages"
	tea "github.com/charmbracelet/bubbletea"
)

// Model shows the source file the program is stopped in, with the current
// line under the cursor.
type Model struct {
	ID             int
	currentFile    string
	Error          error
	viewport       viewportWithCursorModel
	contentManager contentManager
}

func New(id int) Model {
	return Model{
		ID:             id,
		viewport:       newViewportWithCursor(),
		contentManager: newContentManager(),
	}
}

func (m Model) Init() tea.Cmd { return nil }
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case messages.StateUpdated:
		if msg.File == "" {
			return m, nil
		}
		if err := m.show(msg.File, msg.Line); err != nil {
			m.Error = err
			return m, messages.ErrorCmd(err)
		}
		return m, nil

	case messages.IsFocused:
		m.viewport.setFocus(bool(msg))
		return m, nil

	case tea.WindowSizeMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.viewport.isFocused {
			return m, nil
		}
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	return m.viewport.View()
}

// CurrentLine is the 1-based line under the cursor.
func (m Model) CurrentLine() int {
	return m.viewport.CurrentLineNumber()
}

func (m *Model) show(filename string, line int) error {
	content, err := m.contentManager.getSourceCode(filename)
	if err != nil {
		return err
	}

	m.Error = nil
	if filename != m.currentFile {
		m.currentFile = filename
		m.viewport.setContent(content)
	}
	m.viewport.jumpToLine(line)

	return nil
}
