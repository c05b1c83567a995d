package localvariables

import (
	"fmt"
	"io"
	"strings"

	"github.com/andersonjoseph/loopdrill/internal/components"
	"github.com/andersonjoseph/loopdrill/internal/messages"
	"github.com/andersonjoseph/loopdrill/internal/types"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/paginator"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type variableStyle struct {
	name  lipgloss.Style
	value lipgloss.Style
}

var (
	noItemsStyle lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorGrey)

	paginatorStyleFocused lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorGreen).PaddingRight(2)
	paginatorStyleDefault lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorWhite).PaddingRight(2)

	variableStyleDefault variableStyle = variableStyle{
		name:  lipgloss.NewStyle().Foreground(components.ColorGrey),
		value: lipgloss.NewStyle().Foreground(components.ColorGrey),
	}
	variableFocusedStyle variableStyle = variableStyle{
		name:  lipgloss.NewStyle().Foreground(components.ColorPurple).Bold(true),
		value: lipgloss.NewStyle().Foreground(components.ColorGreen).Bold(true),
	}

	listFocusedStyle lipgloss.Style = lipgloss.NewStyle().Foreground(components.ColorGreen)
	listDefaultStyle lipgloss.Style = lipgloss.NewStyle()
)

// Model lists the loop counters in scope at the current stop.
type Model struct {
	ID        int
	title     string
	isFocused bool
	width     int
	height    int
	list      list.Model
}

func New(id int, title string) Model {
	l := list.New([]list.Item{}, listDelegate{}, 0, 0)
	l.SetShowHelp(false)
	l.SetShowFilter(false)
	l.SetFilteringEnabled(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.Styles.PaginationStyle = paginatorStyleDefault
	l.Styles.NoItems = noItemsStyle
	l.SetStatusBarItemName("counter", "counters")
	l.Paginator = setupPagination(0)

	return Model{
		ID:    id,
		title: title,
		list:  l,
	}
}

func setupPagination(totalItems int) paginator.Model {
	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = 5
	p.SetTotalPages(totalItems)
	p.ArabicFormat = lipgloss.NewStyle().
		Margin(0).Padding(0).
		Align(lipgloss.Right).
		Render("%d of %d ")

	return p
}

func (m Model) Init() tea.Cmd { return nil }
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.handleResize(msg.Width, msg.Height)
		return m, nil

	case messages.StateUpdated:
		m.list.SetItems(variablesToListItems(msg.Vars))
		return m, nil

	case messages.IsFocused:
		m.isFocused = bool(msg)
		if m.isFocused {
			m.list.Styles.PaginationStyle = paginatorStyleFocused
		} else {
			m.list.Styles.PaginationStyle = paginatorStyleDefault
		}
		return m, nil

	case tea.KeyMsg:
		if !m.isFocused {
			return m, nil
		}

		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	return m, nil
}

// Items returns the counters currently listed.
func (m Model) Items() []types.Variable {
	items := m.list.Items()
	vars := make([]types.Variable, 0, len(items))
	for _, it := range items {
		if li, ok := it.(listItem); ok {
			vars = append(vars, li.variable)
		}
	}

	return vars
}

func (m Model) View() string {
	var style lipgloss.Style
	if m.isFocused {
		style = listFocusedStyle
	} else {
		style = listDefaultStyle
	}

	width := m.list.Width()
	titleText := style.Render(fmt.Sprintf("[%d] %s", m.ID, m.title))
	titleWidth := lipgloss.Width(titleText)

	topBorder := style.Render("┌") + titleText + style.Render(strings.Repeat("─", max(width-titleWidth, 1))) + style.Render("┐")
	bottomBorder := style.Render("└" + strings.Repeat("─", width) + "┘")
	verticalBorder := style.Render("│")

	lines := strings.Split(m.list.View(), "\n")
	renderedLines := []string{topBorder}

	for _, line := range lines {
		renderedLines = append(renderedLines, verticalBorder+lipgloss.NewStyle().Width(width).Render(line)+verticalBorder)
	}

	renderedLines = append(renderedLines, bottomBorder)
	return strings.Join(renderedLines, "\n")
}

func (m *Model) handleResize(w, h int) {
	m.width = w
	m.height = h
	m.list.SetWidth(w)
	m.list.SetHeight(h)
	m.list.Styles.NoItems = noItemsStyle.Width(w)
}

type listDelegate struct{}

func (d listDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	li, ok := item.(listItem)
	if !ok {
		return
	}

	li.isFocused = m.Index() == index
	fmt.Fprint(w, li.Render(m.Width()))
}

func (d listDelegate) Height() int                               { return 1 }
func (d listDelegate) Spacing() int                              { return 0 }
func (d listDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }

type listItem struct {
	variable  types.Variable
	isFocused bool
}

func (i listItem) FilterValue() string { return i.variable.Name }

func (i listItem) Render(width int) string {
	style := variableStyleDefault
	if i.isFocused {
		style = variableFocusedStyle
	}

	name := style.name.Render(i.variable.Name + " = ")
	value := style.value.Render(i.variable.Value)

	return lipgloss.NewStyle().
		Width(width).
		Render(name + value)
}

func variablesToListItems(vars []types.Variable) []list.Item {
	items := make([]list.Item, len(vars))

	for i := range vars {
		items[i] = listItem{
			variable: vars[i],
		}
	}

	return items
}
