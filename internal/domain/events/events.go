package events

import (
	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/kelindar/event"
)

// Event types
const (
	TaskEventType uint32 = 1
)

type TaskEventKind string

const (
	TaskCreated   TaskEventKind = "task_created"
	TaskUpdated   TaskEventKind = "task_updated"
	TaskCompleted TaskEventKind = "task_completed"
	TaskDeleted   TaskEventKind = "task_deleted"
)

// TaskEventData describes a successful task mutation. Task is nil for deletions.
type TaskEventData struct {
	Kind   TaskEventKind
	TaskID string
	Task   *entities.Task
}

// Type implements the Event interface
func (t TaskEventData) Type() uint32 {
	return TaskEventType
}

// PublishTaskEvent publishes a task change event
func PublishTaskEvent(kind TaskEventKind, taskID string, task *entities.Task) {
	event.Emit(TaskEventData{Kind: kind, TaskID: taskID, Task: task})
}

// SubscribeToTaskEvents subscribes to task change events and returns the cancel func
func SubscribeToTaskEvents(handler func(data TaskEventData)) func() {
	return event.On(handler)
}
