// Package sqlite provides an embedded, SQLite-backed implementation of the
// storage.Gateway interface. Documents are kept as BSON so they decode into
// the same models as the MongoDB backend.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.mongodb.org/mongo-driver/v2/bson"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/healthyliving/internal/storage"
)

// Ensure SQLiteStore implements storage.Gateway
var _ storage.Gateway = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Gateway using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	name   string
	closed atomic.Bool
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(dbPath), filepath.Ext(dbPath))
	return &SQLiteStore{db: db, name: name}, nil
}

// dsn builds the connection string. Pragmas given here are applied by the
// driver to every pooled connection, not only the first one.
func dsn(dbPath string) string {
	return "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

// Close closes the database connection. Later calls are no-ops.
func (s *SQLiteStore) Close(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) check() error {
	if s.closed.Load() {
		return fmt.Errorf("%w: database closed", storage.ErrUnavailable)
	}
	return nil
}

// Ping verifies the database file is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.check(); err != nil {
		return err
	}
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrUnavailable, err)
	}
	return nil
}

// DatabaseName returns the database file name without its extension.
func (s *SQLiteStore) DatabaseName() string {
	return s.name
}

// Insert persists a new document and returns its identifier.
func (s *SQLiteStore) Insert(ctx context.Context, collection string, document any) (string, error) {
	if err := s.check(); err != nil {
		return "", err
	}

	body, id, err := withID(document)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body) VALUES (?, ?, ?)",
		collection, id.Hex(), []byte(body),
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert document: %w", err)
	}

	return id.Hex(), nil
}

// Find decodes every document of collection matching filter into results.
// Equality on _id is pushed down to SQL and string equality is narrowed with a
// byte search on the stored BSON, so only candidate rows are decoded. Every
// candidate is still matched in Go, and the table is scanned per collection:
// this backend suits development and small deployments.
func (s *SQLiteStore) Find(ctx context.Context, collection string, filter bson.M, sort []storage.SortField, results any) error {
	if err := s.check(); err != nil {
		return err
	}

	query := "SELECT body FROM documents WHERE collection = ?"
	args := []any{collection}
	if id, ok := filter["_id"].(bson.ObjectID); ok {
		query += " AND id = ?"
		args = append(args, id.Hex())
	}
	for key, value := range filter {
		elem, ok := stringElement(key, value)
		if !ok {
			continue
		}
		query += " AND instr(body, ?) > 0"
		args = append(args, elem)
	}
	query += " ORDER BY seq"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to query documents: %w", err)
	}
	defer rows.Close()

	var docs []document
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return fmt.Errorf("failed to scan document: %w", err)
		}
		var fields bson.M
		if err := bson.Unmarshal(body, &fields); err != nil {
			return fmt.Errorf("failed to decode document: %w", err)
		}
		if matches(fields, filter) {
			docs = append(docs, document{raw: body, fields: fields})
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate documents: %w", err)
	}

	sortDocuments(docs, sort)
	return decodeAll(docs, results)
}

// Exists reports whether collection holds a document with id.
func (s *SQLiteStore) Exists(ctx context.Context, collection string, id bson.ObjectID) (bool, error) {
	if err := s.check(); err != nil {
		return false, err
	}

	var one int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM documents WHERE collection = ? AND id = ? LIMIT 1",
		collection, id.Hex(),
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to look up document: %w", err)
	}
	return true, nil
}

// ListCollectionNames returns every collection holding at least one document.
func (s *SQLiteStore) ListCollectionNames(ctx context.Context) ([]string, error) {
	if err := s.check(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT collection FROM documents ORDER BY collection")
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan collection: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate collections: %w", err)
	}

	return names, nil
}
