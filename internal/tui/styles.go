package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleTitle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Bold(true)
	styleFocused = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	styleHelp    = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))

	styleButton = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62"))
	styleButtonBusy = styleButton.
			Background(lipgloss.Color("238")).
			Foreground(lipgloss.Color("245"))
)
