package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaeawc/batchname/internal/naming"
)

// TextAreaModel collects a list of names, one per line or comma separated.
// The view keeps a running count of the names parsed so far.
type TextAreaModel struct {
	input  textarea.Model
	prompt string
	names  []string
	value  string
	err    error
}

// NewTextArea creates a names editor with line numbers and no length limit
func NewTextArea(prompt, placeholder string) TextAreaModel {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = true
	ta.CharLimit = 0
	ta.Focus()

	return TextAreaModel{input: ta, prompt: prompt}
}

// Init starts the cursor blink
func (m TextAreaModel) Init() tea.Cmd {
	return textarea.Blink
}

// Update submits on Ctrl+D and cancels on Esc or Ctrl+C
func (m TextAreaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyCtrlD:
			m.value = m.input.Value()
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.names = naming.ParseList(m.input.Value())

	return m, cmd
}

func (m TextAreaModel) countLine() string {
	switch len(m.names) {
	case 0:
		return SubtleStyle.Render("no names yet")
	case 1:
		return SuccessStyle.Render("1 name")
	default:
		return SuccessStyle.Render(fmt.Sprintf("%d names", len(m.names)))
	}
}

// View renders the prompt, the editor and the parsed name count
func (m TextAreaModel) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(m.prompt))
	b.WriteString("\n\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(m.countLine())
	b.WriteString("  ")
	b.WriteString(SubtleStyle.Render("(one per line or comma separated; Ctrl+D to confirm, Esc to cancel)"))

	return b.String()
}

// Value returns the raw text submitted with Ctrl+D
func (m TextAreaModel) Value() string {
	return m.value
}

// Count returns how many names the current text parses into
func (m TextAreaModel) Count() int {
	return len(m.names)
}

// Err returns ErrCanceled when the editor was dismissed
func (m TextAreaModel) Err() error {
	return m.err
}
