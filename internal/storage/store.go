//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=../mocks/mock_gateway.go -package=mocks

// Package storage provides abstractions for document storage.
package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

var (
	// ErrUnavailable is returned when no usable storage connection exists.
	ErrUnavailable = errors.New("storage unavailable")

	// ErrMalformedID is returned when an identifier is not a canonical
	// 24-character lowercase hex string.
	ErrMalformedID = errors.New("invalid ID format")
)

// Sort directions for SortField.
const (
	Ascending  = 1
	Descending = -1
)

// SortField orders Find results by one document field.
type SortField struct {
	Field     string
	Direction int
}

// Gateway defines the document operations the API needs.
// This abstraction allows swapping storage backends (MongoDB, SQLite)
// without changing the service layer.
type Gateway interface {
	// Insert stores document in the named collection and returns the
	// canonical string form of its newly assigned identifier.
	Insert(ctx context.Context, collection string, document any) (string, error)

	// Find decodes every document matching the equality filter into results,
	// which must be a pointer to a slice. Results follow sort when given;
	// otherwise their order is unspecified.
	Find(ctx context.Context, collection string, filter bson.M, sort []SortField, results any) error

	// Exists reports whether a document with the identifier is present.
	Exists(ctx context.Context, collection string, id bson.ObjectID) (bool, error)

	// ListCollectionNames returns the collection names. Diagnostics only.
	ListCollectionNames(ctx context.Context) ([]string, error)

	// Ping verifies the connection is usable.
	Ping(ctx context.Context) error

	// DatabaseName returns the name of the underlying database.
	DatabaseName() string

	// Close releases any resources held by the gateway.
	Close(ctx context.Context) error
}
