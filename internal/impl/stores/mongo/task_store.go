package stores_mongo

import (
	"context"
	"errors"

	"github.com/drujensen/todo/internal/domain/entities"
	"github.com/drujensen/todo/internal/domain/errs"
	"github.com/drujensen/todo/internal/domain/interfaces"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type MongoTaskStore struct {
	collection *mongo.Collection
}

func NewMongoTaskStore(collection *mongo.Collection) *MongoTaskStore {
	return &MongoTaskStore{
		collection: collection,
	}
}

func (s *MongoTaskStore) Insert(ctx context.Context, doc *entities.TaskDocument) (primitive.ObjectID, error) {
	if doc.ID.IsZero() {
		doc.ID = primitive.NewObjectID()
	}

	result, err := s.collection.InsertOne(ctx, doc)
	if err != nil {
		return primitive.NilObjectID, storeError("failed to insert task", err)
	}

	id, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errs.InternalErrorf("unexpected inserted id type %T", result.InsertedID)
	}
	return id, nil
}

func (s *MongoTaskStore) FindOne(ctx context.Context, id primitive.ObjectID) (*entities.TaskDocument, error) {
	var doc entities.TaskDocument
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, errs.NotFoundErrorf("task not found: %s", id.Hex())
	}
	if err != nil {
		return nil, storeError("failed to get task", err)
	}

	return &doc, nil
}

func (s *MongoTaskStore) FindAll(ctx context.Context) ([]*entities.TaskDocument, error) {
	cursor, err := s.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, storeError("failed to list tasks", err)
	}
	defer cursor.Close(ctx)

	docs := []*entities.TaskDocument{}
	for cursor.Next(ctx) {
		var doc entities.TaskDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, errs.InternalErrorf("failed to decode task: %w", err)
		}
		docs = append(docs, &doc)
	}

	if err := cursor.Err(); err != nil {
		return nil, storeError("failed to list tasks", err)
	}

	return docs, nil
}

func (s *MongoTaskStore) UpdateFields(ctx context.Context, id primitive.ObjectID, fields entities.TaskFields) (bool, error) {
	set := setDocument(fields)
	if len(set) == 0 {
		// Nothing to write; still report whether the task exists.
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": id})
		if err != nil {
			return false, storeError("failed to update task", err)
		}
		return count > 0, nil
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, storeError("failed to update task", err)
	}

	return result.MatchedCount > 0, nil
}

func (s *MongoTaskStore) Delete(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, storeError("failed to delete task", err)
	}

	return result.DeletedCount > 0, nil
}

func setDocument(fields entities.TaskFields) bson.M {
	set := bson.M{}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.Completed != nil {
		set["completed"] = *fields.Completed
	}
	return set
}

// storeError classifies driver failures: anything that means the server could
// not be reached in time is Unavailable, the rest is Internal.
func storeError(op string, err error) error {
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, mongo.ErrClientDisconnected) {
		return errs.UnavailableErrorf("%s: %w", op, err)
	}
	return errs.InternalErrorf("%s: %w", op, err)
}

var _ interfaces.TaskStore = (*MongoTaskStore)(nil)
