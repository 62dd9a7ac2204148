package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func TestConfirmModelDefaultsToNo(t *testing.T) {
	m := NewConfirmModel("Apply?")

	updated, cmd := m.Update(key(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("Enter should quit the dialog")
	}

	if updated.(ConfirmModel).GetChoice() {
		t.Error("Enter on a fresh dialog should decline")
	}
}

func TestConfirmModelKeys(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want bool
	}{
		{"y accepts", []tea.KeyMsg{runes("y")}, true},
		{"Y accepts", []tea.KeyMsg{runes("Y")}, true},
		{"n declines", []tea.KeyMsg{runes("n")}, false},
		{"left then enter accepts", []tea.KeyMsg{key(tea.KeyLeft), key(tea.KeyEnter)}, true},
		{"tab then enter accepts", []tea.KeyMsg{key(tea.KeyTab), key(tea.KeyEnter)}, true},
		{"tab twice then enter declines", []tea.KeyMsg{key(tea.KeyTab), key(tea.KeyTab), key(tea.KeyEnter)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var model tea.Model = NewConfirmModel("Apply?")
			for _, k := range tt.keys {
				model, _ = model.Update(k)
			}

			if got := model.(ConfirmModel).GetChoice(); got != tt.want {
				t.Errorf("GetChoice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfirmModelDismissIsCanceled(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
	}{
		{"esc", key(tea.KeyEsc)},
		{"ctrl+c", key(tea.KeyCtrlC)},
		{"q", runes("q")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			model, cmd := NewConfirmModel("Preview changes before applying?").Update(tt.key)
			if cmd == nil {
				t.Fatal("dismissing should quit the dialog")
			}

			m := model.(ConfirmModel)
			if !errors.Is(m.Err(), ErrCanceled) {
				t.Errorf("Err() = %v, want ErrCanceled", m.Err())
			}

			if m.GetChoice() {
				t.Error("a dismissed dialog should not report yes")
			}
		})
	}
}

func TestConfirmModelAnswerIsNotCanceled(t *testing.T) {
	for _, k := range []string{"y", "n"} {
		model, _ := NewConfirmModel("Apply?").Update(runes(k))
		if err := model.(ConfirmModel).Err(); err != nil {
			t.Errorf("Err() after %q = %v, want nil", k, err)
		}
	}
}

func TestConfirmModelViewShowsDetails(t *testing.T) {
	view := NewConfirmModel("Apply 2 changes?").WithDetails("Create folder: a -> a").View()

	if !strings.Contains(view, "Create folder: a -> a") {
		t.Errorf("View() missing details:\n%s", view)
	}

	if !strings.Contains(view, "Apply 2 changes?") {
		t.Errorf("View() missing prompt:\n%s", view)
	}
}

func TestInputModelSubmit(t *testing.T) {
	var model tea.Model = NewInput("Prefix", "")
	model, _ = model.Update(runes("  docs "))
	model, cmd := model.Update(key(tea.KeyEnter))

	if cmd == nil {
		t.Fatal("Enter should quit the prompt")
	}

	m := model.(InputModel)
	if m.Value() != "docs" {
		t.Errorf("Value() = %q, want %q", m.Value(), "docs")
	}

	if m.Err() != nil {
		t.Errorf("Err() = %v, want nil", m.Err())
	}
}

func TestInputModelDefault(t *testing.T) {
	var model tea.Model = NewInput("Prefix", "").WithDefault("folder")
	model, _ = model.Update(key(tea.KeyEnter))

	if got := model.(InputModel).Value(); got != "folder" {
		t.Errorf("Value() = %q, want %q", got, "folder")
	}
}

func TestInputModelValidatorKeepsPromptOpen(t *testing.T) {
	var model tea.Model = NewInput("How many?", "").WithValidator(PositiveInt)
	model, _ = model.Update(runes("0"))
	model, cmd := model.Update(key(tea.KeyEnter))

	if cmd != nil {
		t.Fatal("invalid input should not quit the prompt")
	}

	if !strings.Contains(model.View(), "greater than zero") {
		t.Errorf("View() should show the validation error:\n%s", model.View())
	}

	model, _ = model.Update(key(tea.KeyBackspace))
	model, _ = model.Update(runes("3"))
	model, cmd = model.Update(key(tea.KeyEnter))

	if cmd == nil {
		t.Fatal("valid input should quit the prompt")
	}

	if got := model.(InputModel).Value(); got != "3" {
		t.Errorf("Value() = %q, want %q", got, "3")
	}
}

func TestInputModelCancel(t *testing.T) {
	var model tea.Model = NewInput("Prefix", "")
	model, _ = model.Update(key(tea.KeyEsc))

	if err := model.(InputModel).Err(); !errors.Is(err, ErrCanceled) {
		t.Errorf("Err() = %v, want ErrCanceled", err)
	}
}

func TestPositiveInt(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{"1", false},
		{"25", false},
		{"0", true},
		{"-2", true},
		{"three", true},
		{"", true},
		{"1.5", true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := PositiveInt(tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("PositiveInt(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
			}
		})
	}
}

func TestTextAreaSubmitAndCancel(t *testing.T) {
	var model tea.Model = NewTextArea("Folder names", "")
	model, _ = model.Update(runes("a, b"))
	model, cmd := model.Update(key(tea.KeyCtrlD))

	if cmd == nil {
		t.Fatal("Ctrl+D should quit the textarea")
	}

	if got := model.(TextAreaModel).Value(); got != "a, b" {
		t.Errorf("Value() = %q, want %q", got, "a, b")
	}

	model, _ = NewTextArea("Folder names", "").Update(key(tea.KeyEsc))
	if err := model.(TextAreaModel).Err(); !errors.Is(err, ErrCanceled) {
		t.Errorf("Err() = %v, want ErrCanceled", err)
	}
}

func TestTextAreaCountsParsedNames(t *testing.T) {
	var model tea.Model = NewTextArea("Folder names", "")

	if !strings.Contains(model.View(), "no names yet") {
		t.Errorf("View() on empty editor:\n%s", model.View())
	}

	model, _ = model.Update(runes("alpha, beta,, "))

	m := model.(TextAreaModel)
	if m.Count() != 2 {
		t.Errorf("Count() = %d, want 2", m.Count())
	}

	if !strings.Contains(m.View(), "2 names") {
		t.Errorf("View() missing name count:\n%s", m.View())
	}
}
