package stores_json

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/drujensen/todo/internal/domain/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestJsonTaskStore_CRUD(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Insert(ctx, entities.NewTaskDocument("Buy milk", ""))
	require.NoError(t, err)
	assert.False(t, id.IsZero())

	doc, err := store.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", doc.Title)
	assert.False(t, *doc.Completed)

	title, description := "Buy oat milk", "two cartons"
	matched, err := store.UpdateFields(ctx, id, entities.TaskFields{Title: &title, Description: &description})
	require.NoError(t, err)
	assert.True(t, matched)

	doc, err = store.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", doc.Title)
	assert.Equal(t, "two cartons", *doc.Description)
	assert.False(t, *doc.Completed)

	deleted, err := store.Delete(ctx, id)
	require.NoError(t, err)
	assert.True(t, deleted)

	_, err = store.FindOne(ctx, id)
	assert.IsType(t, &errs.NotFoundError{}, err)

	deleted, err = store.Delete(ctx, id)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestJsonTaskStore_UpdateMissing(t *testing.T) {
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	done := true
	matched, err := store.UpdateFields(context.Background(), primitive.NewObjectID(), entities.TaskFields{Completed: &done})

	require.NoError(t, err)
	assert.False(t, matched)
}

func TestJsonTaskStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	input := entities.NewTaskDocument("Original", "")
	id, err := store.Insert(ctx, input)
	require.NoError(t, err)
	input.Title = "mutated after insert"

	doc, err := store.FindOne(ctx, id)
	require.NoError(t, err)
	doc.Title = "mutated after read"

	again, err := store.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
}

func TestJsonTaskStore_PersistsAcrossReload(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONTaskStore(dir)
	require.NoError(t, err)
	id, err := store.Insert(ctx, entities.NewTaskDocument("Persisted", "yes"))
	require.NoError(t, err)

	reloaded, err := NewJSONTaskStore(dir)
	require.NoError(t, err)

	docs, err := reloaded.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, id, docs[0].ID)
	assert.Equal(t, "yes", *docs[0].Description)
}

func TestJsonTaskStore_LegacyRecordsLoad(t *testing.T) {
	dir := t.TempDir()
	id := primitive.NewObjectID()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".todo"), 0755))
	raw := `[{"id":"` + id.Hex() + `","title":"legacy"}]`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".todo", "tasks.json"), []byte(raw), 0644))

	store, err := NewJSONTaskStore(dir)
	require.NoError(t, err)

	doc, err := store.FindOne(context.Background(), id)
	require.NoError(t, err)
	task := doc.Task()
	assert.Equal(t, "legacy", task.Title)
	assert.Equal(t, "", task.Description)
	assert.False(t, task.Completed)
}

func TestJsonTaskStore_RejectsCorruptFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".todo"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".todo", "tasks.json"), []byte("{not json"), 0644))

	_, err := NewJSONTaskStore(dir)

	assert.IsType(t, &errs.InternalError{}, err)
}

func TestJsonTaskStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	ids := make([]primitive.ObjectID, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id, err := store.Insert(ctx, entities.NewTaskDocument("task", ""))
			assert.NoError(t, err)
			ids[i] = id
		}(i)
	}
	wg.Wait()

	docs, err := store.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, n)

	seen := map[primitive.ObjectID]bool{}
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id.Hex())
		seen[id] = true
	}
}

func TestJsonTaskStore_CanceledContext(t *testing.T) {
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Insert(ctx, entities.NewTaskDocument("never", ""))
	assert.IsType(t, &errs.UnavailableError{}, err)
}

func TestJsonTaskStore_ConcurrentUpdatesLastWriteWins(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONTaskStore(t.TempDir())
	require.NoError(t, err)

	id, err := store.Insert(ctx, entities.NewTaskDocument("original", ""))
	require.NoError(t, err)

	titles := []string{"first", "second", "third", "fourth"}
	var wg sync.WaitGroup
	for _, title := range titles {
		wg.Add(1)
		go func(title string) {
			defer wg.Done()
			matched, err := store.UpdateFields(ctx, id, entities.TaskFields{Title: &title})
			assert.NoError(t, err)
			assert.True(t, matched)
		}(title)
	}
	wg.Wait()

	doc, err := store.FindOne(ctx, id)
	require.NoError(t, err)
	assert.Contains(t, titles, doc.Title)
}
