package service

import "errors"

var (
	// ErrMismatch is returned when a message body names a different group
	// than the request path.
	ErrMismatch = errors.New("group_id mismatch")

	// ErrNotFound is returned when a referenced group does not exist.
	ErrNotFound = errors.New("group not found")
)
