package tui

import (
	apicontrollers "github.com/drujensen/todo/internal/api/controllers"
)

type (
	tasksFetchedMsg struct {
		tasks []apicontrollers.TaskResponse
	}
)

type (
	startCreateTaskMsg struct{}
	startEditTaskMsg   struct {
		task apicontrollers.TaskResponse
	}
	taskSavedMsg struct {
		task    apicontrollers.TaskResponse
		created bool
	}
	formCancelledMsg struct{}
)

type (
	taskCompletedMsg struct {
		task apicontrollers.TaskResponse
	}
	taskDeletedMsg struct {
		id string
	}
)

type (
	startHelpMsg     struct{}
	helpCancelledMsg struct{}
)

type errMsg error
