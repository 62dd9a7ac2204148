package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	keyEnter = "enter"
	keyEsc   = "esc"
	keyCtrlC = "ctrl+c"
)

const (
	optionYes = iota
	optionNo
)

// ConfirmModel asks a yes/no question. Backing out with Esc, q or Ctrl+C is
// reported through Err, not as a "no".
type ConfirmModel struct {
	prompt   string
	details  string
	choice   bool
	selected int
	err      error
	done     bool
}

// NewConfirmModel creates a new confirmation dialog; "No" is preselected
func NewConfirmModel(prompt string) ConfirmModel {
	return ConfirmModel{
		prompt:   prompt,
		selected: optionNo,
	}
}

// WithDetails shows body (e.g. a change preview) above the prompt
func (m ConfirmModel) WithDetails(body string) ConfirmModel {
	m.details = body
	return m
}

// Init initializes the confirmation dialog.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

func (m ConfirmModel) answer(yes bool) (tea.Model, tea.Cmd) {
	m.choice = yes
	m.done = true

	if yes {
		m.selected = optionYes
	} else {
		m.selected = optionNo
	}

	return m, tea.Quit
}

// Update handles user input for the confirmation dialog.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case keyCtrlC, "q", keyEsc:
		m.err = ErrCanceled
		m.done = true

		return m, tea.Quit

	case "left", "h":
		m.selected = optionYes

	case "right", "l":
		m.selected = optionNo

	case "tab":
		m.selected = 1 - m.selected

	case "y", "Y":
		return m.answer(true)

	case "n", "N":
		return m.answer(false)

	case keyEnter:
		return m.answer(m.selected == optionYes)
	}

	return m, nil
}

func (m ConfirmModel) buttons() string {
	button := func(label string, active bool, color lipgloss.Color) string {
		style := lipgloss.NewStyle().Padding(0, 2)
		if active {
			style = style.Border(lipgloss.RoundedBorder()).BorderForeground(color)
		}

		return style.Render(label)
	}

	return lipgloss.JoinHorizontal(lipgloss.Center,
		button("Yes", m.selected == optionYes, appliedColor),
		"  ",
		button("No", m.selected == optionNo, failedColor),
	)
}

// View renders the confirmation dialog.
func (m ConfirmModel) View() string {
	if m.done {
		return ""
	}

	parts := []string{""}
	if m.details != "" {
		parts = append(parts, m.details, "")
	}

	parts = append(parts,
		WarningStyle.Render(m.prompt),
		"",
		m.buttons(),
		"",
		SubtleStyle.Render("y/n or arrows + enter to answer, esc to go back"),
	)

	return BoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

// GetChoice returns true if the user answered yes
func (m ConfirmModel) GetChoice() bool {
	return m.choice
}

// Err returns ErrCanceled when the dialog was dismissed without an answer
func (m ConfirmModel) Err() error {
	return m.err
}
