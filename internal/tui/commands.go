package tui

import (
	"context"
	"time"

	apicontrollers "github.com/drujensen/todo/internal/api/controllers"

	tea "github.com/charmbracelet/bubbletea"
)

const requestTimeout = 10 * time.Second

// TaskAPI is the subset of the HTTP client the TUI needs.
type TaskAPI interface {
	ListTasks(ctx context.Context) ([]apicontrollers.TaskResponse, error)
	CreateTask(ctx context.Context, title, description string) (*apicontrollers.TaskResponse, error)
	UpdateTask(ctx context.Context, id, title, description string) (*apicontrollers.TaskResponse, error)
	CompleteTask(ctx context.Context, id string) (*apicontrollers.TaskResponse, error)
	DeleteTask(ctx context.Context, id string) error
}

func fetchTasksCmd(api TaskAPI) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		tasks, err := api.ListTasks(ctx)
		if err != nil {
			return errMsg(err)
		}
		return tasksFetchedMsg{tasks: tasks}
	}
}

func createTaskCmd(api TaskAPI, title, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := api.CreateTask(ctx, title, description)
		if err != nil {
			return errMsg(err)
		}
		return taskSavedMsg{task: *task, created: true}
	}
}

func updateTaskCmd(api TaskAPI, id, title, description string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := api.UpdateTask(ctx, id, title, description)
		if err != nil {
			return errMsg(err)
		}
		return taskSavedMsg{task: *task}
	}
}

func completeTaskCmd(api TaskAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		task, err := api.CompleteTask(ctx, id)
		if err != nil {
			return errMsg(err)
		}
		return taskCompletedMsg{task: *task}
	}
}

func deleteTaskCmd(api TaskAPI, id string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if err := api.DeleteTask(ctx, id); err != nil {
			return errMsg(err)
		}
		return taskDeletedMsg{id: id}
	}
}
