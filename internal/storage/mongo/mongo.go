// Package mongo provides a MongoDB-backed implementation of the
// storage.Gateway interface.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/mmynk/healthyliving/internal/storage"
)

const connectTimeout = 5 * time.Second

// Ensure MongoStore implements storage.Gateway
var _ storage.Gateway = (*MongoStore)(nil)

// MongoStore implements storage.Gateway on a MongoDB database.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// New connects to the MongoDB deployment at uri and selects database dbName.
// Connectivity is verified before returning.
func New(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	if uri == "" {
		return nil, errors.New("DATABASE_URL is empty")
	}
	if dbName == "" {
		return nil, errors.New("DATABASE_NAME is empty")
	}

	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(connectTimeout)
	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(dbName)}, nil
}

// Close disconnects the client. Operations after Close fail with
// storage.ErrUnavailable.
func (s *MongoStore) Close(ctx context.Context) error {
	err := s.client.Disconnect(ctx)
	if errors.Is(err, mongo.ErrClientDisconnected) {
		return nil
	}
	return err
}

// Ping verifies the deployment is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return wrap(s.client.Ping(ctx, nil))
}

// DatabaseName returns the selected database name.
func (s *MongoStore) DatabaseName() string {
	return s.db.Name()
}

// Insert stores document and returns the identifier MongoDB assigned.
func (s *MongoStore) Insert(ctx context.Context, collection string, document any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, document)
	if err != nil {
		return "", fmt.Errorf("failed to insert into %s: %w", collection, wrap(err))
	}

	id, ok := res.InsertedID.(bson.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return id.Hex(), nil
}

// Find decodes every document of collection matching filter into results.
func (s *MongoStore) Find(ctx context.Context, collection string, filter bson.M, sort []storage.SortField, results any) error {
	if filter == nil {
		filter = bson.M{}
	}

	opts := options.Find()
	if len(sort) > 0 {
		opts.SetSort(sortDocument(sort))
	}

	cur, err := s.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return fmt.Errorf("failed to query %s: %w", collection, wrap(err))
	}
	defer cur.Close(ctx)

	if err := cur.All(ctx, results); err != nil {
		return fmt.Errorf("failed to decode %s: %w", collection, wrap(err))
	}
	return nil
}

// Exists reports whether collection holds a document with id.
func (s *MongoStore) Exists(ctx context.Context, collection string, id bson.ObjectID) (bool, error) {
	n, err := s.db.Collection(collection).CountDocuments(ctx, bson.M{"_id": id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to look up %s: %w", collection, wrap(err))
	}
	return n > 0, nil
}

// ListCollectionNames returns the database's collection names.
func (s *MongoStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	names, err := s.db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", wrap(err))
	}
	return names, nil
}

func sortDocument(sort []storage.SortField) bson.D {
	d := make(bson.D, 0, len(sort))
	for _, f := range sort {
		dir := storage.Ascending
		if f.Direction < 0 {
			dir = storage.Descending
		}
		d = append(d, bson.E{Key: f.Field, Value: dir})
	}
	return d
}

// wrap marks connection-level failures as storage.ErrUnavailable.
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, mongo.ErrClientDisconnected) || mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return err
}
