package tui

import (
	"errors"
	"fmt"
	"strings"

	apicontrollers "github.com/drujensen/todo/internal/api/controllers"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var ErrEmptyTitle = errors.New("title cannot be empty")

// TaskForm creates a task, or edits one when taskID is set.
type TaskForm struct {
	api              TaskAPI
	taskID           string
	titleField       textinput.Model
	descriptionField textinput.Model
	focused          string // "title" or "description"
	err              error
	width            int
	height           int
}

func NewTaskForm(api TaskAPI) TaskForm {
	titleField := textinput.New()
	titleField.Placeholder = "What needs to be done?"
	titleField.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	titleField.CharLimit = 200
	titleField.Width = 50

	descriptionField := textinput.New()
	descriptionField.Placeholder = "Description (optional)"
	descriptionField.PlaceholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	descriptionField.CharLimit = 1000
	descriptionField.Width = 50

	return TaskForm{
		api:              api,
		titleField:       titleField,
		descriptionField: descriptionField,
	}
}

// Reset prepares the form for a new task.
func (f *TaskForm) Reset() {
	f.taskID = ""
	f.err = nil
	f.titleField.SetValue("")
	f.descriptionField.SetValue("")
	f.focusTitle()
}

// Edit loads an existing task into the form.
func (f *TaskForm) Edit(task apicontrollers.TaskResponse) {
	f.taskID = task.ID
	f.err = nil
	f.titleField.SetValue(task.Title)
	f.titleField.CursorEnd()
	f.descriptionField.SetValue(task.Description)
	f.descriptionField.CursorEnd()
	f.focusTitle()
}

func (f *TaskForm) focusTitle() {
	f.focused = "title"
	f.titleField.Focus()
	f.descriptionField.Blur()
}

func (f TaskForm) Init() tea.Cmd {
	return textinput.Blink
}

func (f TaskForm) Update(msg tea.Msg) (TaskForm, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = m.Width
		f.height = m.Height
		f.titleField.Width = m.Width - 8
		f.descriptionField.Width = m.Width - 8
		return f, nil

	case errMsg:
		f.err = m
		return f, nil

	case tea.KeyMsg:
		switch m.String() {
		case "esc":
			return f, func() tea.Msg { return formCancelledMsg{} }
		case "tab", "shift+tab":
			if f.focused == "title" {
				f.focused = "description"
				f.titleField.Blur()
				f.descriptionField.Focus()
			} else {
				f.focusTitle()
			}
			return f, nil
		case "enter":
			title := f.titleField.Value()
			if strings.TrimSpace(title) == "" {
				f.err = ErrEmptyTitle
				return f, nil
			}
			f.err = nil
			if f.taskID == "" {
				return f, createTaskCmd(f.api, title, f.descriptionField.Value())
			}
			return f, updateTaskCmd(f.api, f.taskID, title, f.descriptionField.Value())
		}
	}

	var cmd tea.Cmd
	if f.focused == "title" {
		f.titleField, cmd = f.titleField.Update(msg)
	} else {
		f.descriptionField, cmd = f.descriptionField.Update(msg)
	}
	return f, cmd
}

func (f TaskForm) View() string {
	focusedBorder := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("6"))

	unfocusedBorder := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("8"))

	heading := "New Task"
	if f.taskID != "" {
		heading = "Edit Task"
	}

	var sb strings.Builder
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(heading))
	sb.WriteString("\n\nTitle:\n")
	if f.focused == "title" {
		sb.WriteString(focusedBorder.Render(f.titleField.View()))
	} else {
		sb.WriteString(unfocusedBorder.Render(f.titleField.View()))
	}
	sb.WriteString("\n\nDescription:\n")
	if f.focused == "description" {
		sb.WriteString(focusedBorder.Render(f.descriptionField.View()))
	} else {
		sb.WriteString(unfocusedBorder.Render(f.descriptionField.View()))
	}
	sb.WriteString("\n\n")

	instructions := "Press Enter to save, Tab to switch field, Esc to cancel"
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions))

	if f.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Render(fmt.Sprintf("\nError: %s", f.err.Error())))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
