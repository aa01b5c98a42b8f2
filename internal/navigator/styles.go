package navigator

import "github.com/charmbracelet/lipgloss"

var (
	unfocusedBorderColor = lipgloss.Color("240")
	focusedBorderColor   = lipgloss.Color("39")

	headerStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)
	containerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	leafStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// PanelStyle returns the bordered panel style for the focus state.
func PanelStyle(focused bool) lipgloss.Style {
	color := unfocusedBorderColor
	if focused {
		color = focusedBorderColor
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(color)
}
