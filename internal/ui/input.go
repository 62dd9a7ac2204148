package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is reported by prompts the user backed out of
var ErrCanceled = errors.New("canceled")

// InputModel represents a single-line text prompt.
type InputModel struct {
	textInput    textinput.Model
	err          error
	invalid      error
	prompt       string
	value        string
	defaultValue string
	validate     func(string) error
}

// NewInput creates a new input model.
func NewInput(prompt, placeholder string) InputModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Focus()
	ti.Width = 50

	return InputModel{
		textInput: ti,
		prompt:    prompt,
	}
}

// WithDefault sets the value used when the user submits an empty line
func (m InputModel) WithDefault(value string) InputModel {
	m.defaultValue = value
	if m.textInput.Placeholder == "" {
		m.textInput.Placeholder = value
	}

	return m
}

// WithValidator rejects submissions until fn returns nil
func (m InputModel) WithValidator(fn func(string) error) InputModel {
	m.validate = fn
	return m
}

// Init initializes the input model.
func (m InputModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input updates.
func (m InputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			value := strings.TrimSpace(m.textInput.Value())
			if value == "" {
				value = m.defaultValue
			}

			if m.validate != nil {
				if err := m.validate(value); err != nil {
					m.invalid = err
					return m, nil
				}
			}

			m.invalid = nil
			m.value = value

			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = ErrCanceled
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)

	return m, cmd
}

// View renders the input.
func (m InputModel) View() string {
	view := fmt.Sprintf(
		"%s\n\n%s\n\n",
		HeaderStyle.Render(m.prompt),
		m.textInput.View(),
	)

	if m.invalid != nil {
		view += ErrorStyle.Render("✗ "+m.invalid.Error()) + "\n\n"
	}

	return view + SubtleStyle.Render("(press Enter to confirm, Esc to cancel)")
}

// Value returns the input value.
func (m InputModel) Value() string {
	return m.value
}

// Err returns any error that occurred.
func (m InputModel) Err() error {
	return m.err
}

// PositiveInt validates counts typed into an InputModel
func PositiveInt(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("%q is not a whole number", value)
	}

	if n <= 0 {
		return fmt.Errorf("enter a number greater than zero")
	}

	return nil
}
