package components

import "github.com/charmbracelet/lipgloss"

// ANSI 256 palette shared by every pane.
const (
	ColorBlack  = lipgloss.Color("0")
	ColorWhite  = lipgloss.Color("15")
	ColorGrey   = lipgloss.Color("7")
	ColorPurple = lipgloss.Color("5")
	ColorGreen  = lipgloss.Color("10")
	ColorOrange = lipgloss.Color("208")
)
