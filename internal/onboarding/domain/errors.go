package onboarding

import "errors"

var (
	// ErrNotFound is returned when no application matches the given id.
	ErrNotFound = errors.New("onboarding: application not found")
	// ErrInvalidStatus is returned when a transition precondition fails.
	ErrInvalidStatus = errors.New("onboarding: invalid status for operation")
)
