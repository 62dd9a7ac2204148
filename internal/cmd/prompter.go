package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kaeawc/batchname/internal/config"
	"github.com/kaeawc/batchname/internal/ui"
)

// Prompter collects choices and values from the user
type Prompter interface {
	// Menu returns the chosen action, or "" when the user quit
	Menu(header string, items []ui.MenuItem) (string, error)
	// Names returns the raw multi-line names input
	Names(prompt string) (string, error)
	Input(prompt, defaultValue string, validate func(string) error) (string, error)
	// Confirm returns ui.ErrCanceled when the user backs out without answering
	Confirm(prompt, details string) (bool, error)
	// PickFolder returns the chosen folder name
	PickFolder(folders []string) (string, error)
	ShowSettings(cfg *config.Config, loaded []string) error
	// Progress runs work while showing a done/total counter. Errors from work
	// are displayed, not returned. ctx passed to work is canceled if the user
	// interrupts.
	Progress(ctx context.Context, message string, total int, work ProgressFunc) error
}

// ProgressFunc does the work behind Progress, reporting through update
type ProgressFunc func(ctx context.Context, update func(done int, label string)) error

// TeaPrompter runs a bubbletea program per prompt
type TeaPrompter struct{}

// NewTeaPrompter creates the interactive prompter
func NewTeaPrompter() *TeaPrompter {
	return &TeaPrompter{}
}

// Menu shows the main menu inline, below the output of the previous command
func (TeaPrompter) Menu(header string, items []ui.MenuItem) (string, error) {
	menu := ui.NewMenu(AppName, items).WithHeader(header)
	p := tea.NewProgram(menu)

	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run menu: %w", err)
	}

	finalModel, ok := m.(ui.MenuModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	return finalModel.Choice(), nil
}

// Names shows the multi-line names editor
func (TeaPrompter) Names(prompt string) (string, error) {
	p := tea.NewProgram(ui.NewTextArea(prompt, "one\ntwo, three"))

	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run input: %w", err)
	}

	finalModel, ok := m.(ui.TextAreaModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if finalModel.Err() != nil {
		return "", finalModel.Err()
	}

	return finalModel.Value(), nil
}

// Input shows a single-line prompt
func (TeaPrompter) Input(prompt, defaultValue string, validate func(string) error) (string, error) {
	model := ui.NewInput(prompt, "").WithDefault(defaultValue)
	if validate != nil {
		model = model.WithValidator(validate)
	}

	m, err := tea.NewProgram(model).Run()
	if err != nil {
		return "", fmt.Errorf("failed to run input: %w", err)
	}

	finalModel, ok := m.(ui.InputModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if finalModel.Err() != nil {
		return "", finalModel.Err()
	}

	return finalModel.Value(), nil
}

// Confirm shows a yes/no dialog with details above it. Esc returns ui.ErrCanceled.
func (TeaPrompter) Confirm(prompt, details string) (bool, error) {
	m, err := tea.NewProgram(ui.NewConfirmModel(prompt).WithDetails(details)).Run()
	if err != nil {
		return false, fmt.Errorf("failed to run confirmation: %w", err)
	}

	finalModel, ok := m.(ui.ConfirmModel)
	if !ok {
		return false, fmt.Errorf("unexpected model type")
	}

	if finalModel.Err() != nil {
		return false, finalModel.Err()
	}

	return finalModel.GetChoice(), nil
}

// PickFolder shows the filterable folder list
func (TeaPrompter) PickFolder(folders []string) (string, error) {
	picker := ui.NewFolderPicker("Go into folder", folders)
	p := tea.NewProgram(picker, tea.WithAltScreen())

	m, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("failed to run folder picker: %w", err)
	}

	finalModel, ok := m.(ui.FolderPickerModel)
	if !ok {
		return "", fmt.Errorf("unexpected model type")
	}

	if finalModel.Err() != nil {
		return "", finalModel.Err()
	}

	choice := finalModel.Choice()
	if choice == nil {
		return "", ui.ErrCanceled
	}

	return choice.Name(), nil
}

// ShowSettings shows the active configuration until dismissed
func (TeaPrompter) ShowSettings(cfg *config.Config, loaded []string) error {
	p := tea.NewProgram(ui.NewSettingsViewer(cfg, loaded), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run settings viewer: %w", err)
	}

	return nil
}

// Progress runs work in the background behind a spinner
func (TeaPrompter) Progress(ctx context.Context, message string, total int, work ProgressFunc) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	spinnerModel := ui.NewSpinnerModel(message, total)
	p := tea.NewProgram(spinnerModel)

	finished := make(chan struct{})

	go func() {
		defer close(finished)

		err := work(ctx, func(done int, label string) {
			p.Send(ui.SpinnerUpdateMsg{Done: done, Total: total, Message: label})
		})

		// Signal completion
		p.Send(ui.SpinnerDoneMsg{Err: err})
	}()

	_, err := p.Run()

	// Ctrl+C ends the program early; stop the worker and wait for it
	cancel()
	<-finished

	if err != nil {
		return fmt.Errorf("failed to run spinner: %w", err)
	}

	return nil
}
