package ui

import "github.com/charmbracelet/lipgloss"

// Styles shared by the prompts, the listing and the commit report
var (
	accentColor  = lipgloss.Color("170") // Purple
	appliedColor = lipgloss.Color("42")  // Green
	failedColor  = lipgloss.Color("196") // Red
	noticeColor  = lipgloss.Color("214") // Orange
	mutedColor   = lipgloss.Color("241") // Gray

	// Directory heading and dialog titles
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	// Report summaries and messages
	SuccessStyle = lipgloss.NewStyle().Foreground(appliedColor)
	ErrorStyle   = lipgloss.NewStyle().Foreground(failedColor)
	WarningStyle = lipgloss.NewStyle().Foreground(noticeColor)
	SubtleStyle  = lipgloss.NewStyle().Foreground(mutedColor)

	// Section counts in the listing
	BoldStyle = lipgloss.NewStyle().Bold(true)

	// Frames the confirm dialog and the folder picker
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(1, 2)

	// Prompt and section headers
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)
)
