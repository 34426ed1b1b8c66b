package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Ensure Disconnected implements Gateway
var _ Gateway = (*Disconnected)(nil)

// Disconnected is the gateway used when no storage connection could be
// established. Every operation fails with ErrUnavailable.
type Disconnected struct {
	// Reason explains why there is no connection, e.g. "DATABASE_URL not set".
	Reason string
}

// NewDisconnected returns a gateway that reports reason on every call.
func NewDisconnected(reason string) *Disconnected {
	return &Disconnected{Reason: reason}
}

// NotConnectedError is returned by every Disconnected operation. It wraps
// ErrUnavailable.
type NotConnectedError struct {
	Reason string
}

func (e *NotConnectedError) Error() string {
	if e.Reason == "" {
		return ErrUnavailable.Error()
	}
	return ErrUnavailable.Error() + ": " + e.Reason
}

func (e *NotConnectedError) Unwrap() error {
	return ErrUnavailable
}

// IsNotConnected reports whether err came from a gateway that never
// established a connection.
func IsNotConnected(err error) bool {
	var nc *NotConnectedError
	return errors.As(err, &nc)
}

func (d *Disconnected) err() error {
	return &NotConnectedError{Reason: d.Reason}
}

func (d *Disconnected) Insert(context.Context, string, any) (string, error) {
	return "", d.err()
}

func (d *Disconnected) Find(context.Context, string, bson.M, []SortField, any) error {
	return d.err()
}

func (d *Disconnected) Exists(context.Context, string, bson.ObjectID) (bool, error) {
	return false, d.err()
}

func (d *Disconnected) ListCollectionNames(context.Context) ([]string, error) {
	return nil, d.err()
}

func (d *Disconnected) Ping(context.Context) error {
	return d.err()
}

func (d *Disconnected) DatabaseName() string {
	return ""
}

func (d *Disconnected) Close(context.Context) error {
	return nil
}
