package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/drujensen/todo/internal/domain/errs"
	"github.com/drujensen/todo/internal/domain/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Mock store for testing
type mockTaskStore struct {
	mock.Mock
}

func (m *mockTaskStore) Insert(ctx context.Context, doc *entities.TaskDocument) (primitive.ObjectID, error) {
	args := m.Called(ctx, doc)
	return args.Get(0).(primitive.ObjectID), args.Error(1)
}

func (m *mockTaskStore) FindOne(ctx context.Context, id primitive.ObjectID) (*entities.TaskDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) != nil {
		return args.Get(0).(*entities.TaskDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskStore) FindAll(ctx context.Context) ([]*entities.TaskDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) != nil {
		return args.Get(0).([]*entities.TaskDocument), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockTaskStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields entities.TaskFields) (bool, error) {
	args := m.Called(ctx, id, fields)
	return args.Bool(0), args.Error(1)
}

func (m *mockTaskStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

type recordedOp struct {
	operation string
	err       error
}

type fakeRecorder struct {
	ops []recordedOp
}

func (r *fakeRecorder) ObserveOperation(operation string, err error) {
	r.ops = append(r.ops, recordedOp{operation: operation, err: err})
}

func completedDoc(id primitive.ObjectID, title, description string, completed bool) *entities.TaskDocument {
	doc := entities.NewTaskDocument(title, description)
	doc.ID = id
	*doc.Completed = completed
	return doc
}

func TestTaskService_CreateTask(t *testing.T) {
	ctx := context.Background()

	t.Run("valid task", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		id := primitive.NewObjectID()

		mockStore.On("Insert", mock.Anything, mock.MatchedBy(func(doc *entities.TaskDocument) bool {
			return doc.Title == "Buy milk" && *doc.Description == "" && !*doc.Completed
		})).Return(id, nil).Once()

		task, err := service.CreateTask(ctx, "Buy milk", "")

		require.NoError(t, err)
		assert.Equal(t, id, task.ID)
		assert.Equal(t, "Buy milk", task.Title)
		assert.Equal(t, "", task.Description)
		assert.False(t, task.Completed)
		mockStore.AssertExpectations(t)
	})

	t.Run("title preserved as is", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())

		mockStore.On("Insert", mock.Anything, mock.MatchedBy(func(doc *entities.TaskDocument) bool {
			return doc.Title == "  spaced  "
		})).Return(primitive.NewObjectID(), nil).Once()

		task, err := service.CreateTask(ctx, "  spaced  ", "d")

		require.NoError(t, err)
		assert.Equal(t, "  spaced  ", task.Title)
	})

	t.Run("missing title", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())

		task, err := service.CreateTask(ctx, "", "desc")

		assert.Nil(t, task)
		assert.IsType(t, &errs.ValidationError{}, err)
		mockStore.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	})

	t.Run("store unavailable", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		storeErr := errs.UnavailableErrorf("failed to insert task: %w", context.DeadlineExceeded)

		mockStore.On("Insert", mock.Anything, mock.Anything).Return(primitive.NilObjectID, storeErr).Once()

		task, err := service.CreateTask(ctx, "Title", "")

		assert.Nil(t, task)
		assert.Same(t, storeErr, err)
	})
}

func TestTaskService_GetTask(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("valid task", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("FindOne", mock.Anything, id).Return(completedDoc(id, "Title", "Desc", false), nil).Once()

		task, err := service.GetTask(ctx, id.Hex())

		require.NoError(t, err)
		assert.Equal(t, &entities.Task{ID: id, Title: "Title", Description: "Desc"}, task)
	})

	t.Run("legacy record gets defaults", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("FindOne", mock.Anything, id).Return(&entities.TaskDocument{ID: id, Title: "Old"}, nil).Once()

		task, err := service.GetTask(ctx, id.Hex())

		require.NoError(t, err)
		assert.Equal(t, "", task.Description)
		assert.False(t, task.Completed)
	})

	t.Run("task not found", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("FindOne", mock.Anything, id).Return(nil, errs.NotFoundErrorf("task not found: %s", id.Hex())).Once()

		task, err := service.GetTask(ctx, id.Hex())

		assert.Nil(t, task)
		assert.IsType(t, &errs.NotFoundError{}, err)
		assert.Equal(t, "Task not found", err.Error())
	})

	for name, raw := range map[string]string{"empty id": "", "short id": "123", "bad hex": "not-an-object-id-at-all!"} {
		t.Run(name, func(t *testing.T) {
			mockStore := new(mockTaskStore)
			service := NewTaskService(mockStore, zap.NewNop())

			task, err := service.GetTask(ctx, raw)

			assert.Nil(t, task)
			assert.IsType(t, &errs.NotFoundError{}, err)
			mockStore.AssertNotCalled(t, "FindOne", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskService_ListTasks(t *testing.T) {
	ctx := context.Background()

	t.Run("maps every document", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		docs := []*entities.TaskDocument{
			completedDoc(primitive.NewObjectID(), "One", "", false),
			{ID: primitive.NewObjectID(), Title: "Two"},
		}
		mockStore.On("FindAll", mock.Anything).Return(docs, nil).Once()

		tasks, err := service.ListTasks(ctx)

		require.NoError(t, err)
		require.Len(t, tasks, 2)
		assert.Equal(t, "One", tasks[0].Title)
		assert.Equal(t, "Two", tasks[1].Title)
		assert.Equal(t, "", tasks[1].Description)
	})

	t.Run("empty store returns empty slice", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("FindAll", mock.Anything).Return(nil, nil).Once()

		tasks, err := service.ListTasks(ctx)

		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	})

	t.Run("store failure", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("FindAll", mock.Anything).Return(nil, errs.InternalErrorf("failed to list tasks: %v", errors.New("boom"))).Once()

		tasks, err := service.ListTasks(ctx)

		assert.Nil(t, tasks)
		assert.IsType(t, &errs.InternalError{}, err)
	})
}

func TestTaskService_UpdateTask(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("valid update keeps completed", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		title, description := "X", "Y"

		mockStore.On("UpdateFields", mock.Anything, id, entities.TaskFields{Title: &title, Description: &description}).Return(true, nil).Once()
		mockStore.On("FindOne", mock.Anything, id).Return(completedDoc(id, "X", "Y", true), nil).Once()

		task, err := service.UpdateTask(ctx, id.Hex(), "X", "Y")

		require.NoError(t, err)
		assert.Equal(t, "X", task.Title)
		assert.Equal(t, "Y", task.Description)
		assert.True(t, task.Completed)
		mockStore.AssertExpectations(t)
	})

	t.Run("missing title", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())

		task, err := service.UpdateTask(ctx, id.Hex(), "", "Y")

		assert.Nil(t, task)
		assert.IsType(t, &errs.ValidationError{}, err)
		mockStore.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("task not found", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("UpdateFields", mock.Anything, id, mock.Anything).Return(false, nil).Once()

		task, err := service.UpdateTask(ctx, id.Hex(), "X", "")

		assert.Nil(t, task)
		assert.IsType(t, &errs.NotFoundError{}, err)
	})

	t.Run("deleted between update and reload", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("UpdateFields", mock.Anything, id, mock.Anything).Return(true, nil).Once()
		mockStore.On("FindOne", mock.Anything, id).Return(nil, errs.NotFoundErrorf("task not found")).Once()

		task, err := service.UpdateTask(ctx, id.Hex(), "X", "")

		assert.Nil(t, task)
		assert.IsType(t, &errs.NotFoundError{}, err)
	})

	t.Run("malformed id", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())

		_, err := service.UpdateTask(ctx, "nope", "X", "")

		assert.IsType(t, &errs.NotFoundError{}, err)
	})
}

func TestTaskService_CompleteTask(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()
	completed := true

	t.Run("idempotent", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("UpdateFields", mock.Anything, id, entities.TaskFields{Completed: &completed}).Return(true, nil).Twice()
		mockStore.On("FindOne", mock.Anything, id).Return(completedDoc(id, "T", "", true), nil).Twice()

		first, err := service.CompleteTask(ctx, id.Hex())
		require.NoError(t, err)
		assert.True(t, first.Completed)

		second, err := service.CompleteTask(ctx, id.Hex())
		require.NoError(t, err)
		assert.True(t, second.Completed)
		assert.Equal(t, first, second)
		mockStore.AssertExpectations(t)
	})

	t.Run("task not found", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("UpdateFields", mock.Anything, id, mock.Anything).Return(false, nil).Once()

		task, err := service.CompleteTask(ctx, id.Hex())

		assert.Nil(t, task)
		assert.IsType(t, &errs.NotFoundError{}, err)
	})
}

func TestTaskService_DeleteTask(t *testing.T) {
	ctx := context.Background()
	id := primitive.NewObjectID()

	t.Run("valid delete", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("Delete", mock.Anything, id).Return(true, nil).Once()

		err := service.DeleteTask(ctx, id.Hex())

		assert.NoError(t, err)
	})

	t.Run("task not found", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())
		mockStore.On("Delete", mock.Anything, id).Return(false, nil).Once()

		err := service.DeleteTask(ctx, id.Hex())

		assert.IsType(t, &errs.NotFoundError{}, err)
	})

	t.Run("empty id", func(t *testing.T) {
		mockStore := new(mockTaskStore)
		service := NewTaskService(mockStore, zap.NewNop())

		err := service.DeleteTask(ctx, "")

		assert.IsType(t, &errs.NotFoundError{}, err)
		mockStore.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestTaskService_StorageTimeout(t *testing.T) {
	mockStore := new(mockTaskStore)
	service := NewTaskService(mockStore, zap.NewNop(), WithStorageTimeout(50*time.Millisecond))

	mockStore.On("FindAll", mock.MatchedBy(func(ctx context.Context) bool {
		deadline, ok := ctx.Deadline()
		return ok && time.Until(deadline) <= 50*time.Millisecond
	})).Return([]*entities.TaskDocument{}, nil).Once()

	_, err := service.ListTasks(context.Background())

	require.NoError(t, err)
	mockStore.AssertExpectations(t)
}

func TestTaskService_RecordsOperations(t *testing.T) {
	mockStore := new(mockTaskStore)
	recorder := &fakeRecorder{}
	service := NewTaskService(mockStore, zap.NewNop(), WithOperationRecorder(recorder))

	_, _ = service.GetTask(context.Background(), "bad")
	mockStore.On("FindAll", mock.Anything).Return([]*entities.TaskDocument{}, nil).Once()
	_, _ = service.ListTasks(context.Background())

	require.Len(t, recorder.ops, 2)
	assert.Equal(t, OpGet, recorder.ops[0].operation)
	assert.IsType(t, &errs.NotFoundError{}, recorder.ops[0].err)
	assert.Equal(t, OpList, recorder.ops[1].operation)
	assert.NoError(t, recorder.ops[1].err)
}

func TestTaskService_PublishesEvents(t *testing.T) {
	mockStore := new(mockTaskStore)
	service := NewTaskService(mockStore, zap.NewNop())
	id := primitive.NewObjectID()

	received := make(chan events.TaskEventData, 4)
	cancel := events.SubscribeToTaskEvents(func(data events.TaskEventData) {
		if data.TaskID == id.Hex() {
			received <- data
		}
	})
	defer cancel()

	mockStore.On("Insert", mock.Anything, mock.Anything).Return(id, nil).Once()
	mockStore.On("Delete", mock.Anything, id).Return(true, nil).Once()

	_, err := service.CreateTask(context.Background(), "Evented", "")
	require.NoError(t, err)
	require.NoError(t, service.DeleteTask(context.Background(), id.Hex()))

	var kinds []events.TaskEventKind
	for len(kinds) < 2 {
		select {
		case data := <-received:
			kinds = append(kinds, data.Kind)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for task events, got %v", kinds)
		}
	}
	assert.ElementsMatch(t, []events.TaskEventKind{events.TaskCreated, events.TaskDeleted}, kinds)
}
