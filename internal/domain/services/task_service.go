package services

import (
	"context"
	"time"

	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/drujensen/todo/internal/domain/errs"
	"github.com/drujensen/todo/internal/domain/events"
	"github.com/drujensen/todo/internal/domain/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

const DefaultStorageTimeout = 5 * time.Second

// Operation names reported to an OperationRecorder.
const (
	OpCreate   = "create"
	OpGet      = "get"
	OpList     = "list"
	OpUpdate   = "update"
	OpComplete = "complete"
	OpDelete   = "delete"
)

type TaskService interface {
	ListTasks(ctx context.Context) ([]*entities.Task, error)
	GetTask(ctx context.Context, id string) (*entities.Task, error)
	CreateTask(ctx context.Context, title, description string) (*entities.Task, error)
	UpdateTask(ctx context.Context, id, title, description string) (*entities.Task, error)
	CompleteTask(ctx context.Context, id string) (*entities.Task, error)
	DeleteTask(ctx context.Context, id string) error
}

// OperationRecorder receives the outcome of every service operation.
type OperationRecorder interface {
	ObserveOperation(operation string, err error)
}

type TaskServiceOption func(*taskService)

// WithStorageTimeout bounds every store call. Non-positive values keep the default.
func WithStorageTimeout(timeout time.Duration) TaskServiceOption {
	return func(s *taskService) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

func WithOperationRecorder(recorder OperationRecorder) TaskServiceOption {
	return func(s *taskService) {
		s.recorder = recorder
	}
}

type taskService struct {
	store    interfaces.TaskStore
	logger   *zap.Logger
	timeout  time.Duration
	recorder OperationRecorder
}

func NewTaskService(store interfaces.TaskStore, logger *zap.Logger, opts ...TaskServiceOption) *taskService {
	s := &taskService{
		store:   store,
		logger:  logger,
		timeout: DefaultStorageTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *taskService) ListTasks(ctx context.Context) (tasks []*entities.Task, err error) {
	defer s.observe(OpList, &err)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	docs, err := s.store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	tasks = make([]*entities.Task, 0, len(docs))
	for _, doc := range docs {
		tasks = append(tasks, doc.Task())
	}
	return tasks, nil
}

func (s *taskService) GetTask(ctx context.Context, id string) (task *entities.Task, err error) {
	defer s.observe(OpGet, &err)

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	return s.findTask(ctx, oid)
}

func (s *taskService) CreateTask(ctx context.Context, title, description string) (task *entities.Task, err error) {
	defer s.observe(OpCreate, &err)

	if title == "" {
		return nil, errs.ValidationErrorf("Title is required")
	}

	doc := entities.NewTaskDocument(title, description)

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	id, err := s.store.Insert(storeCtx, doc)
	if err != nil {
		return nil, err
	}
	doc.ID = id

	task = doc.Task()
	s.logger.Debug("Task created", zap.String("task_id", id.Hex()))
	events.PublishTaskEvent(events.TaskCreated, id.Hex(), task)

	return task, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id, title, description string) (task *entities.Task, err error) {
	defer s.observe(OpUpdate, &err)

	if title == "" {
		return nil, errs.ValidationErrorf("Title is required")
	}

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	task, err = s.updateAndReload(ctx, oid, entities.TaskFields{
		Title:       &title,
		Description: &description,
	})
	if err != nil {
		return nil, err
	}

	events.PublishTaskEvent(events.TaskUpdated, id, task)
	return task, nil
}

// CompleteTask sets completed=true. Completing an already completed task succeeds
// and leaves it completed.
func (s *taskService) CompleteTask(ctx context.Context, id string) (task *entities.Task, err error) {
	defer s.observe(OpComplete, &err)

	oid, err := s.parseID(id)
	if err != nil {
		return nil, err
	}

	completed := true
	task, err = s.updateAndReload(ctx, oid, entities.TaskFields{Completed: &completed})
	if err != nil {
		return nil, err
	}

	events.PublishTaskEvent(events.TaskCompleted, id, task)
	return task, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id string) (err error) {
	defer s.observe(OpDelete, &err)

	oid, err := s.parseID(id)
	if err != nil {
		return err
	}

	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	deleted, err := s.store.Delete(storeCtx, oid)
	if err != nil {
		return err
	}
	if !deleted {
		return errs.NotFoundErrorf("Task not found")
	}

	s.logger.Debug("Task deleted", zap.String("task_id", id))
	events.PublishTaskEvent(events.TaskDeleted, id, nil)
	return nil
}

// parseID rejects malformed ids up front so they never reach the store.
func (s *taskService) parseID(id string) (primitive.ObjectID, error) {
	oid, err := entities.ParseTaskID(id)
	if err != nil {
		s.logger.Debug("Rejected malformed task id", zap.String("task_id", id))
		return primitive.NilObjectID, errs.NotFoundErrorf("Task not found")
	}
	return oid, nil
}

func (s *taskService) findTask(ctx context.Context, oid primitive.ObjectID) (*entities.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	doc, err := s.store.FindOne(ctx, oid)
	if err != nil {
		if _, ok := err.(*errs.NotFoundError); ok {
			return nil, errs.NotFoundErrorf("Task not found")
		}
		return nil, err
	}
	return doc.Task(), nil
}

// updateAndReload applies fields and returns the stored state afterwards. A
// record removed between the two calls is reported as not found.
func (s *taskService) updateAndReload(ctx context.Context, oid primitive.ObjectID, fields entities.TaskFields) (*entities.Task, error) {
	storeCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	matched, err := s.store.UpdateFields(storeCtx, oid, fields)
	if err != nil {
		return nil, err
	}
	if !matched {
		return nil, errs.NotFoundErrorf("Task not found")
	}

	return s.findTask(ctx, oid)
}

func (s *taskService) observe(operation string, err *error) {
	if s.recorder != nil {
		s.recorder.ObserveOperation(operation, *err)
	}
	if *err == nil {
		return
	}
	switch (*err).(type) {
	case *errs.NotFoundError, *errs.ValidationError:
		s.logger.Debug("Task operation rejected", zap.String("operation", operation), zap.Error(*err))
	default:
		s.logger.Error("Task operation failed", zap.String("operation", operation), zap.Error(*err))
	}
}

// verify interface implementation
var _ TaskService = &taskService{}
