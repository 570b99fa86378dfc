package stores_json

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/drujensen/todo/internal/domain/errs"
	"github.com/drujensen/todo/internal/domain/interfaces"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// JsonTaskStore keeps every task in memory and rewrites <dataDir>/.todo/tasks.json
// after each mutation. Suitable for a single process.
type JsonTaskStore struct {
	filePath string

	mu   sync.RWMutex
	data []*entities.TaskDocument
}

func NewJSONTaskStore(dataDir string) (*JsonTaskStore, error) {
	filePath := filepath.Join(dataDir, ".todo", "tasks.json")
	store := &JsonTaskStore{
		filePath: filePath,
		data:     []*entities.TaskDocument{},
	}

	if err := store.load(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *JsonTaskStore) load() error {
	data, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return nil // File doesn't exist yet, start with empty data
	}
	if err != nil {
		return errs.InternalErrorf("failed to read tasks.json: %w", err)
	}

	var docs []*entities.TaskDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return errs.InternalErrorf("failed to unmarshal tasks.json: %w", err)
	}

	for _, doc := range docs {
		if doc.ID.IsZero() {
			return errs.InternalErrorf("task is missing an ID")
		}
	}

	s.data = docs
	return nil
}

// save must be called with the write lock held.
func (s *JsonTaskStore) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errs.InternalErrorf("failed to marshal tasks: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.filePath), 0755); err != nil {
		return errs.InternalErrorf("failed to create directory: %w", err)
	}

	// Write to a temp file first so a crash never leaves a truncated tasks.json.
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return errs.InternalErrorf("failed to write tasks.json: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return errs.InternalErrorf("failed to replace tasks.json: %w", err)
	}

	return nil
}

func (s *JsonTaskStore) Insert(ctx context.Context, doc *entities.TaskDocument) (primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return primitive.NilObjectID, errs.UnavailableErrorf("failed to insert task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stored := doc.Clone()
	if stored.ID.IsZero() {
		stored.ID = primitive.NewObjectID()
	}

	s.data = append(s.data, stored)
	if err := s.save(); err != nil {
		s.data = s.data[:len(s.data)-1]
		return primitive.NilObjectID, err
	}

	return stored.ID, nil
}

func (s *JsonTaskStore) FindOne(ctx context.Context, id primitive.ObjectID) (*entities.TaskDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.indexOf(id); i >= 0 {
		return s.data[i].Clone(), nil
	}
	return nil, errs.NotFoundErrorf("task not found: %s", id.Hex())
}

func (s *JsonTaskStore) FindAll(ctx context.Context) ([]*entities.TaskDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]*entities.TaskDocument, len(s.data))
	for i, doc := range s.data {
		docs[i] = doc.Clone()
	}
	return docs, nil
}

func (s *JsonTaskStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields entities.TaskFields) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errs.UnavailableErrorf("failed to update task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	if fields.IsEmpty() {
		return true, nil
	}

	previous := s.data[i]
	updated := previous.Clone()
	updated.Apply(fields)
	s.data[i] = updated

	if err := s.save(); err != nil {
		s.data[i] = previous
		return false, err
	}
	return true, nil
}

func (s *JsonTaskStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errs.UnavailableErrorf("failed to delete task: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	previous := slices.Clone(s.data)
	s.data = slices.Delete(s.data, i, i+1)
	if err := s.save(); err != nil {
		s.data = previous
		return false, err
	}
	return true, nil
}

func (s *JsonTaskStore) indexOf(id primitive.ObjectID) int {
	return slices.IndexFunc(s.data, func(doc *entities.TaskDocument) bool {
		return doc.ID == id
	})
}

var _ interfaces.TaskStore = (*JsonTaskStore)(nil)
