package ui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kaeawc/batchname/internal/config"
)

// SettingsViewerModel displays the active configuration
type SettingsViewerModel struct {
	content  string
	quitting bool
}

type settingRow struct {
	key   string
	value string
}

// NewSettingsViewer renders cfg and the .env files it came from
func NewSettingsViewer(cfg *config.Config, loaded []string) *SettingsViewerModel {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Current Configuration") + "\n\n")

	categories := []struct {
		title string
		rows  []settingRow
	}{
		{
			title: "Logging",
			rows: []settingRow{
				{config.KeyLogFile, cfg.LogFile},
				{config.KeyLogLevel, cfg.LogLevel},
			},
		},
		{
			title: "Naming",
			rows: []settingRow{
				{config.KeyFolderPrefix, cfg.FolderPrefix},
				{config.KeyFilePrefix, cfg.FilePrefix},
				{config.KeyFileExt, cfg.FileExt},
			},
		},
		{
			title: "Batches",
			rows: []settingRow{
				{config.KeyPreview, string(cfg.Preview)},
				{config.KeyReserveStaged, strconv.FormatBool(cfg.ReserveStaged)},
			},
		},
		{
			title: "Diagnostics",
			rows: []settingRow{
				{config.KeyPerf, strconv.FormatBool(cfg.Perf)},
			},
		},
	}

	for _, category := range categories {
		b.WriteString(HeaderStyle.Render(category.title) + "\n")

		for _, row := range category.rows {
			value := SuccessStyle.Render(row.value)
			if row.value == "" {
				value = SubtleStyle.Render("(not set)")
			}

			b.WriteString(fmt.Sprintf("  %s %s\n", row.key, value))
		}

		b.WriteString("\n")
	}

	b.WriteString(HeaderStyle.Render("Sources") + "\n")

	if len(loaded) == 0 {
		b.WriteString("  " + SubtleStyle.Render("defaults and environment only") + "\n")
	}

	for _, path := range loaded {
		b.WriteString("  " + InfoStyle.Render(path) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("Press q or Esc to return"))

	return &SettingsViewerModel{
		content: b.String(),
	}
}

// Init initializes the viewer
func (m SettingsViewerModel) Init() tea.Cmd {
	return nil
}

// Update handles user input
func (m SettingsViewerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", keyEsc, keyCtrlC, keyEnter:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the viewer
func (m SettingsViewerModel) View() string {
	if m.quitting {
		return ""
	}

	return "\n" + lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBlue).
		Padding(1, 2).
		Render(m.content) + "\n"
}
