package tui

import (
	"fmt"
	"strings"

	apicontrollers "github.com/drujensen/todo/internal/api/controllers"
	"github.com/drujensen/todo/internal/domain/entities"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// taskItem adapts a task to list.Item.
type taskItem struct {
	task apicontrollers.TaskResponse
}

func (i taskItem) Title() string {
	if i.task.Completed {
		return "[x] " + i.task.Title
	}
	return "[ ] " + i.task.Title
}

func (i taskItem) Description() string {
	var parts []string
	if i.task.Description != "" {
		parts = append(parts, i.task.Description)
	}
	// ids embed their creation time
	if oid, err := entities.ParseTaskID(i.task.ID); err == nil {
		parts = append(parts, "created "+humanize.Time(oid.Timestamp()))
	}
	return strings.Join(parts, " · ")
}

func (i taskItem) FilterValue() string {
	return i.task.Title
}

type TaskListView struct {
	api           TaskAPI
	list          list.Model
	tasks         []apicontrollers.TaskResponse
	pendingDelete string
	status        string
	err           error
	width         int
	height        int
}

func NewTaskListView(api TaskAPI) TaskListView {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(lipgloss.Color("6")).Bold(true)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(lipgloss.Color("7"))
	delegate.SetHeight(2)

	l := list.New([]list.Item{}, delegate, 100, 10)
	l.Title = "To-Do List"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return TaskListView{
		api:  api,
		list: l,
	}
}

func (v TaskListView) Init() tea.Cmd {
	return fetchTasksCmd(v.api)
}

func (v *TaskListView) SetTasks(tasks []apicontrollers.TaskResponse) {
	v.tasks = tasks
	items := make([]list.Item, len(tasks))
	for i, task := range tasks {
		items[i] = taskItem{task: task}
	}
	v.list.SetItems(items)
	v.list.SetShowPagination(len(tasks) > 10)
}

// replaceTask swaps in the new state of an already listed task.
func (v *TaskListView) replaceTask(task apicontrollers.TaskResponse) {
	for i := range v.tasks {
		if v.tasks[i].ID == task.ID {
			v.tasks[i] = task
			v.list.SetItem(i, taskItem{task: task})
			return
		}
	}
	v.SetTasks(append(v.tasks, task))
}

func (v *TaskListView) removeTask(id string) {
	tasks := make([]apicontrollers.TaskResponse, 0, len(v.tasks))
	for _, task := range v.tasks {
		if task.ID != id {
			tasks = append(tasks, task)
		}
	}
	v.SetTasks(tasks)
}

func (v TaskListView) selected() (apicontrollers.TaskResponse, bool) {
	item, ok := v.list.SelectedItem().(taskItem)
	if !ok {
		return apicontrollers.TaskResponse{}, false
	}
	return item.task, true
}

func (v TaskListView) Update(msg tea.Msg) (TaskListView, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		v.width = m.Width
		v.height = m.Height
		v.list.SetSize(m.Width-4, m.Height-5)
		return v, nil

	case tasksFetchedMsg:
		v.err = nil
		v.SetTasks(m.tasks)
		v.status = fmt.Sprintf("%d tasks", len(m.tasks))
		return v, nil

	case taskSavedMsg:
		v.err = nil
		v.replaceTask(m.task)
		if m.created {
			v.status = "Created " + m.task.Title
		} else {
			v.status = "Updated " + m.task.Title
		}
		return v, nil

	case taskCompletedMsg:
		v.err = nil
		v.replaceTask(m.task)
		v.status = "Completed " + m.task.Title
		return v, nil

	case taskDeletedMsg:
		v.err = nil
		v.removeTask(m.id)
		v.status = "Deleted task"
		return v, nil

	case errMsg:
		v.err = m
		return v, nil

	case tea.KeyMsg:
		key := m.String()
		if key != "d" {
			v.pendingDelete = ""
		}

		switch key {
		case "n":
			return v, func() tea.Msg { return startCreateTaskMsg{} }
		case "e", "enter":
			if task, ok := v.selected(); ok {
				return v, func() tea.Msg { return startEditTaskMsg{task: task} }
			}
			return v, nil
		case "c", " ":
			if task, ok := v.selected(); ok && !task.Completed {
				return v, completeTaskCmd(v.api, task.ID)
			}
			return v, nil
		case "d":
			task, ok := v.selected()
			if !ok {
				return v, nil
			}
			if v.pendingDelete != task.ID {
				v.pendingDelete = task.ID
				v.status = "Press d again to delete " + task.Title
				return v, nil
			}
			v.pendingDelete = ""
			return v, deleteTaskCmd(v.api, task.ID)
		case "r":
			return v, fetchTasksCmd(v.api)
		case "?":
			return v, func() tea.Msg { return startHelpMsg{} }
		}
	}

	var cmd tea.Cmd
	v.list, cmd = v.list.Update(msg)
	return v, cmd
}

func (v TaskListView) View() string {
	var sb strings.Builder

	if len(v.tasks) == 0 {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("To-Do List"))
		sb.WriteString("\n\nNo tasks yet. Press n to add one.\n")
	} else {
		sb.WriteString(v.list.View())
		sb.WriteString("\n")
	}

	instructions := "n new · e edit · c complete · d delete · r refresh · ? help · q quit"
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Render(instructions))

	if v.err != nil {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Render(fmt.Sprintf("\nError: %s", v.err.Error())))
	} else if v.status != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Render("\n" + v.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}
