package exceptions

import "errors"

var (
	// ErrNotFound is returned when no exception case matches the given id.
	ErrNotFound = errors.New("exceptions: case not found")
	// ErrNotPending guards duplicate case reviews.
	ErrNotPending = errors.New("exceptions: case not pending")
)
