package entities

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidTaskID = errors.New("invalid task id")

// Task is the fully populated domain value handed out by the service layer.
type Task struct {
	ID          primitive.ObjectID `json:"id" bson:"_id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Completed   bool               `json:"completed" bson:"completed"`
}

// TaskDocument is the stored shape of a task. Records written by older clients
// may lack description or completed, so both are optional here.
type TaskDocument struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description *string            `json:"description,omitempty" bson:"description,omitempty"`
	Completed   *bool              `json:"completed,omitempty" bson:"completed,omitempty"`
}

// NewTaskDocument builds the record inserted on create: completed is always false.
func NewTaskDocument(title, description string) *TaskDocument {
	completed := false
	return &TaskDocument{
		Title:       title,
		Description: &description,
		Completed:   &completed,
	}
}

// Task converts the stored record into a Task, filling defaults for absent fields.
func (d *TaskDocument) Task() *Task {
	task := &Task{
		ID:    d.ID,
		Title: d.Title,
	}
	if d.Description != nil {
		task.Description = *d.Description
	}
	if d.Completed != nil {
		task.Completed = *d.Completed
	}
	return task
}

// Clone returns a deep copy so stores can hand out records without sharing pointers.
func (d *TaskDocument) Clone() *TaskDocument {
	clone := &TaskDocument{
		ID:    d.ID,
		Title: d.Title,
	}
	if d.Description != nil {
		description := *d.Description
		clone.Description = &description
	}
	if d.Completed != nil {
		completed := *d.Completed
		clone.Completed = &completed
	}
	return clone
}

// Apply writes the non-nil fields of f onto the document.
func (d *TaskDocument) Apply(f TaskFields) {
	if f.Title != nil {
		d.Title = *f.Title
	}
	if f.Description != nil {
		description := *f.Description
		d.Description = &description
	}
	if f.Completed != nil {
		completed := *f.Completed
		d.Completed = &completed
	}
}

// TaskFields is a partial update; nil fields are left untouched.
type TaskFields struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (f TaskFields) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.Completed == nil
}

// ParseTaskID converts the external string form of an id into an ObjectID.
// Only the canonical 24 character lowercase hex form is accepted so that
// string -> id -> string always round-trips to the same value.
func ParseTaskID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidTaskID
	}
	if oid.Hex() != id {
		return primitive.NilObjectID, ErrInvalidTaskID
	}
	return oid, nil
}
