package database

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// connectTimeout bounds the initial connect and ping.
const connectTimeout = 10 * time.Second

// MongoDB holds the client and database handle shared by every store.
// Construct it once at startup and Disconnect it at shutdown.
type MongoDB struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *zap.Logger
}

// clientOptions makes reads and writes retryable. operationTimeout, when
// positive, is applied to every operation as a client side deadline, and the
// driver keeps retrying retryable errors until it expires.
func clientOptions(uri string, operationTimeout time.Duration) *options.ClientOptions {
	opts := options.Client().
		ApplyURI(uri).
		SetRetryReads(true).
		SetRetryWrites(true)
	if operationTimeout > 0 {
		opts.SetTimeout(operationTimeout)
	}
	return opts
}

// NewMongoDB connects to uri, pings the server and selects dbName.
func NewMongoDB(uri string, dbName string, operationTimeout time.Duration, logger *zap.Logger) (*MongoDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions(uri, operationTimeout))
	if err != nil {
		logger.Error("Failed to connect to MongoDB", zap.Error(err))
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("Failed to ping MongoDB", zap.Error(err))
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("Successfully connected to MongoDB", zap.String("database", dbName))

	return &MongoDB{
		client:   client,
		database: client.Database(dbName),
		logger:   logger,
	}, nil
}

// Collection returns a handle to the named collection.
func (m *MongoDB) Collection(name string) *mongo.Collection {
	return m.database.Collection(name)
}

// EnsureCollection creates the collection when it does not exist yet. Calling
// it again, or racing another process doing the same, is harmless.
func (m *MongoDB) EnsureCollection(ctx context.Context, name string) error {
	names, err := m.database.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return err
	}
	if len(names) > 0 {
		return nil
	}

	err = m.database.CreateCollection(ctx, name)
	if err != nil && !isNamespaceExists(err) {
		return err
	}

	m.logger.Info("Created collection", zap.String("collection", name))
	return nil
}

// Disconnect closes the client connection.
func (m *MongoDB) Disconnect(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// NamespaceExists is server error code 48.
func isNamespaceExists(err error) bool {
	var cmdErr mongo.CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Code == 48
	}
	return false
}
