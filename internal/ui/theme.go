package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/kaeawc/batchname/internal/dirsession"
)

// ANSI colors 1-6, so output follows the terminal's own palette
const (
	ColorRed     = lipgloss.Color("1") // Errors, failed changes
	ColorGreen   = lipgloss.Color("2") // Success, applied changes, new folders
	ColorYellow  = lipgloss.Color("3") // Warnings, skipped changes
	ColorBlue    = lipgloss.Color("4") // Info boxes/headers, new files
	ColorMagenta = lipgloss.Color("5") // Renames
	ColorCyan    = lipgloss.Color("6") // Highlights/prompts
)

// Additional semantic styles not in styles.go
var (
	InfoStyle      = lipgloss.NewStyle().Foreground(ColorBlue)
	HighlightStyle = lipgloss.NewStyle().Foreground(ColorCyan)
	FolderStyle    = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)
	FileStyle      = lipgloss.NewStyle()
	EmptyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // Gray

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8")).
			Italic(true)
)

// KindColor returns the color used for a change kind in previews
func KindColor(kind dirsession.Kind) lipgloss.Color {
	switch kind {
	case dirsession.KindCreateFolder:
		return ColorGreen
	case dirsession.KindCreateFile:
		return ColorBlue
	case dirsession.KindRename:
		return ColorMagenta
	default:
		return ColorCyan
	}
}

// KindStyle returns a lipgloss style for the given change kind
func KindStyle(kind dirsession.Kind) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(KindColor(kind))
}

// StatusColor returns the color for a change outcome:
// green when applied, red when failed, yellow when skipped.
func StatusColor(status dirsession.Status) lipgloss.Color {
	switch status {
	case dirsession.StatusApplied:
		return ColorGreen
	case dirsession.StatusFailed:
		return ColorRed
	default:
		return ColorYellow
	}
}

// StatusStyle returns a lipgloss style for the given outcome
func StatusStyle(status dirsession.Status) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(StatusColor(status))
}

// StatusSymbol is the marker printed before each result line
func StatusSymbol(status dirsession.Status) string {
	switch status {
	case dirsession.StatusApplied:
		return "✓"
	case dirsession.StatusFailed:
		return "✗"
	default:
		return "-"
	}
}
