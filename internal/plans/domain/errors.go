package plans

import "errors"

var (
	// ErrNotFound is returned when no plan matches the given id.
	ErrNotFound = errors.New("plans: not found")
	// ErrInvalidStatus is returned when a transition precondition fails.
	ErrInvalidStatus = errors.New("plans: invalid status for operation")
)
