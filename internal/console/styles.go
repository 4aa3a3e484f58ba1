package console

import "github.com/charmbracelet/lipgloss"

var (
	barStyle       = lipgloss.NewStyle().Background(lipgloss.Color("#27272a")).Foreground(lipgloss.Color("#a1a1aa"))
	stepStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#bbf7d0"))
	promptStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	bannerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	botStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#bae6fd"))
	optionNumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#fde68a"))
	optionStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#d4d4d8"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#71717a")).Italic(true)
	echoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#a1a1aa"))
)
