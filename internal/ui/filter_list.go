package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// FolderItem is one entry in the folder picker
type FolderItem struct {
	number int
	name   string
}

// NewFolderItem creates a picker entry; number is the 1-based listing position
func NewFolderItem(number int, name string) FolderItem {
	return FolderItem{number: number, name: name}
}

// Name returns the folder name
func (i FolderItem) Name() string {
	return i.name
}

// Title returns the title for the list item display.
func (i FolderItem) Title() string {
	return fmt.Sprintf("%d. %s", i.number, i.name)
}

// Description returns the description for the list item display.
func (i FolderItem) Description() string {
	return ""
}

// FilterValue returns the value used for filtering the list item.
func (i FolderItem) FilterValue() string {
	// Allow filtering by number or name
	return fmt.Sprintf("%d %s", i.number, i.name)
}

// FolderPickerModel is a filterable list of folders
type FolderPickerModel struct {
	list        list.Model
	filterInput textinput.Model
	items       []FolderItem
	choice      *FolderItem
	err         error
	filtering   bool
}

// NewFolderPicker creates a picker over folder names in listing order
func NewFolderPicker(title string, folders []string) FolderPickerModel {
	items := make([]FolderItem, len(folders))
	listItems := make([]list.Item, len(folders))

	for i, name := range folders {
		items[i] = NewFolderItem(i+1, name)
		listItems[i] = items[i]
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false

	l := list.New(listItems, delegate, 0, 0)
	l.Title = title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = HeaderStyle

	ti := textinput.New()
	ti.Placeholder = "Type to filter..."
	ti.CharLimit = 50
	ti.Width = 50

	return FolderPickerModel{
		list:        l,
		filterInput: ti,
		items:       items,
	}
}

// Init initializes the model
func (m FolderPickerModel) Init() tea.Cmd {
	return nil
}

// Update handles key presses and filter changes
func (m FolderPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := BoxStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case keyCtrlC, keyEsc:
			if m.filtering {
				m.stopFiltering(true)
				return m, nil
			}

			m.err = ErrCanceled

			return m, tea.Quit

		case "q":
			if !m.filtering {
				m.err = ErrCanceled
				return m, tea.Quit
			}

		case keyEnter:
			if m.filtering {
				// keep the filter, return to the list
				m.stopFiltering(false)
				return m, nil
			}

			if item, ok := m.list.SelectedItem().(FolderItem); ok {
				m.choice = &item
				return m, tea.Quit
			}

			return m, nil

		case "/":
			if !m.filtering {
				m.filtering = true
				m.filterInput.Focus()

				return m, textinput.Blink
			}
		}
	}

	var cmd tea.Cmd

	if m.filtering {
		m.filterInput, cmd = m.filterInput.Update(msg)
		m.applyFilter(m.filterInput.Value())

		return m, cmd
	}

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m *FolderPickerModel) stopFiltering(reset bool) {
	m.filtering = false
	m.filterInput.Blur()

	if reset {
		m.filterInput.SetValue("")
		m.applyFilter("")
	}
}

func (m *FolderPickerModel) applyFilter(query string) {
	query = strings.ToLower(query)
	filtered := make([]list.Item, 0, len(m.items))

	for _, item := range m.items {
		if query == "" || strings.Contains(strings.ToLower(item.FilterValue()), query) {
			filtered = append(filtered, item)
		}
	}

	m.list.SetItems(filtered)
}

// View renders the picker
func (m FolderPickerModel) View() string {
	var s strings.Builder

	s.WriteString(m.list.View())
	s.WriteString("\n\n")

	if m.filtering {
		s.WriteString(SubtleStyle.Render("Filter: "))
		s.WriteString(m.filterInput.View())
		s.WriteString("\n")
		s.WriteString(SubtleStyle.Render("(press Enter to apply, Esc to cancel)"))
	} else {
		s.WriteString(SubtleStyle.Render("Press / to filter, Enter to open, q/Esc to go back"))
	}

	return BoxStyle.Render(s.String())
}

// Choice returns the selected folder, or nil
func (m FolderPickerModel) Choice() *FolderItem {
	return m.choice
}

// Err returns ErrCanceled when the user backed out
func (m FolderPickerModel) Err() error {
	return m.err
}

// VisibleCount returns how many folders match the current filter
func (m FolderPickerModel) VisibleCount() int {
	return len(m.list.Items())
}
