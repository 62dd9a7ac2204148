package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SpinnerModel shows a spinner and a done/total counter while a batch commits
type SpinnerModel struct {
	spinner spinner.Model
	message string
	done    int
	total   int
	last    string
	err     error
	stopped bool
}

// NewSpinnerModel creates a new spinner model for total pending items
func NewSpinnerModel(message string, total int) *SpinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return &SpinnerModel{
		spinner: s,
		message: message,
		total:   total,
	}
}

// Init initializes the spinner model
func (m *SpinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update handles messages for the spinner
func (m *SpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Ctrl+C ends the display; the caller cancels the running work
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case SpinnerDoneMsg:
		m.stopped = true
		m.err = msg.Err

		return m, tea.Quit

	case SpinnerUpdateMsg:
		m.done = msg.Done
		if msg.Total > 0 {
			m.total = msg.Total
		}

		m.last = msg.Message

		return m, nil

	default:
		return m, nil
	}
}

// View renders the spinner
func (m *SpinnerModel) View() string {
	if m.stopped {
		if m.err != nil {
			return fmt.Sprintf("✗ %s\n", m.err.Error())
		}

		return fmt.Sprintf("✓ %s (%d/%d)\n", m.message, m.done, m.total)
	}

	line := fmt.Sprintf("%s %s (%d/%d)", m.spinner.View(), m.message, m.done, m.total)
	if m.last != "" {
		line += " " + SubtleStyle.Render(m.last)
	}

	return line + "\n"
}

// Progress returns the number of finished items and the total
func (m *SpinnerModel) Progress() (done, total int) {
	return m.done, m.total
}

// SpinnerDoneMsg signals that the spinner should stop
type SpinnerDoneMsg struct {
	Err error
}

// SpinnerUpdateMsg reports one more finished item
type SpinnerUpdateMsg struct {
	Done    int
	Total   int
	Message string
}
