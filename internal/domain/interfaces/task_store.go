package interfaces

import (
	"context"

	"github.com/drujensen/todo/internal/domain/entities"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TaskStore is the storage adapter over the single "tasks" collection.
// Implementations return *errs.NotFoundError from FindOne when the id is absent,
// *errs.UnavailableError when the backend cannot be reached and
// *errs.InternalError for any other failure.
type TaskStore interface {
	Insert(ctx context.Context, doc *entities.TaskDocument) (primitive.ObjectID, error)
	FindOne(ctx context.Context, id primitive.ObjectID) (*entities.TaskDocument, error)
	FindAll(ctx context.Context) ([]*entities.TaskDocument, error)
	UpdateFields(ctx context.Context, id primitive.ObjectID, fields entities.TaskFields) (bool, error)
	Delete(ctx context.Context, id primitive.ObjectID) (bool, error)
}
