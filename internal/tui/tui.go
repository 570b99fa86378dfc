package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

type TUI struct {
	api TaskAPI

	taskList TaskListView
	taskForm TaskForm
	helpView HelpView

	state string
}

func NewTUI(api TaskAPI) TUI {
	return TUI{
		api:      api,
		taskList: NewTaskListView(api),
		taskForm: NewTaskForm(api),
		helpView: NewHelpView(),
		state:    "tasks/list",
	}
}

func (t TUI) Init() tea.Cmd {
	return tea.Batch(
		t.taskList.Init(),
		t.taskForm.Init(),
		t.helpView.Init(),
	)
}

func (t TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// Handle form messages
	case startCreateTaskMsg:
		t.state = "tasks/form"
		t.taskForm.Reset()
		return t, t.taskForm.Init()
	case startEditTaskMsg:
		t.state = "tasks/form"
		t.taskForm.Edit(msg.task)
		return t, t.taskForm.Init()
	case formCancelledMsg:
		t.state = "tasks/list"
		return t, nil
	case taskSavedMsg:
		t.state = "tasks/list"
		var cmd tea.Cmd
		t.taskList, cmd = t.taskList.Update(msg)
		return t, cmd

	// Handle help view messages
	case startHelpMsg:
		t.state = "help"
		return t, t.helpView.Init()
	case helpCancelledMsg:
		t.state = "tasks/list"
		return t, nil

	// Errors belong to whichever view is showing
	case errMsg:
		var cmd tea.Cmd
		if t.state == "tasks/form" {
			t.taskForm, cmd = t.taskForm.Update(msg)
		} else {
			t.taskList, cmd = t.taskList.Update(msg)
		}
		return t, cmd

	// List results always go to the list, whatever is showing
	case tasksFetchedMsg, taskCompletedMsg, taskDeletedMsg:
		var cmd tea.Cmd
		t.taskList, cmd = t.taskList.Update(msg)
		return t, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return t, tea.Quit
		}

	case tea.WindowSizeMsg:
		var (
			cmd  tea.Cmd
			cmds []tea.Cmd
		)

		t.taskList, cmd = t.taskList.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		t.taskForm, cmd = t.taskForm.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		t.helpView, cmd = t.helpView.Update(msg)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		return t, tea.Batch(cmds...)
	}

	var cmd tea.Cmd
	switch t.state {
	case "tasks/list":
		t.taskList, cmd = t.taskList.Update(msg)
	case "tasks/form":
		t.taskForm, cmd = t.taskForm.Update(msg)
	case "help":
		t.helpView, cmd = t.helpView.Update(msg)
	}
	return t, cmd
}

func (t TUI) View() string {
	switch t.state {
	case "tasks/list":
		return t.taskList.View()
	case "tasks/form":
		return t.taskForm.View()
	case "help":
		return t.helpView.View()
	}

	return "Error: Invalid state"
}
