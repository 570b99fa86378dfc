package apicontrollers

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/drujensen/todo/internal/domain/entities"
)

// TaskRequest is the body accepted by POST /tasks and PUT /tasks/{id}.
// Pointers distinguish a missing title from an empty one.
type TaskRequest struct {
	Title       *string `json:"title" example:"Buy milk"`
	Description *string `json:"description,omitempty" example:"Two litres, semi-skimmed"`
}

// TaskResponse is the wire representation of a task. Every field is always present.
type TaskResponse struct {
	ID          string `json:"id" example:"6520f1c2a4b5c6d7e8f90123"`
	Title       string `json:"title" example:"Buy milk"`
	Description string `json:"description" example:""`
	Completed   bool   `json:"completed" example:"false"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Detail string `json:"detail"`
}

func NewTaskResponse(task *entities.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID.Hex(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
	}
}

func NewTaskListResponse(tasks []*entities.Task) []TaskResponse {
	resp := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		resp = append(resp, NewTaskResponse(task))
	}
	return resp
}

var errInvalidBody = errors.New("invalid request body")

// decodeTaskRequest reads a JSON object body. Keys are matched exactly, so
// "Title" is not a title. An empty body decodes to a zero request so the
// missing title is reported as such.
func decodeTaskRequest(body io.Reader) (TaskRequest, error) {
	var req TaskRequest
	if body == nil {
		return req, nil
	}

	var fields map[string]json.RawMessage
	dec := json.NewDecoder(body)
	if err := dec.Decode(&fields); err != nil {
		if errors.Is(err, io.EOF) {
			return TaskRequest{}, nil
		}
		return TaskRequest{}, errInvalidBody
	}
	if dec.More() {
		return TaskRequest{}, errInvalidBody
	}

	var err error
	if req.Title, err = stringField(fields, "title"); err != nil {
		return TaskRequest{}, err
	}
	if req.Description, err = stringField(fields, "description"); err != nil {
		return TaskRequest{}, err
	}
	return req, nil
}

// stringField returns nil when key is absent or null.
func stringField(fields map[string]json.RawMessage, key string) (*string, error) {
	raw, ok := fields[key]
	if !ok {
		return nil, nil
	}

	var value *string
	if err := json.Unmarshal(raw, &value); err != nil {
		return nil, errInvalidBody
	}
	return value, nil
}

// description returns the requested description, defaulting to "".
func (r TaskRequest) description() string {
	if r.Description == nil {
		return ""
	}
	return *r.Description
}
