package identity

import "errors"

var (
	// ErrUserNotFound is returned when no user matches a phone number.
	ErrUserNotFound = errors.New("identity: user not found")
	// ErrUnknownRole is returned for role keys outside the known set.
	ErrUnknownRole = errors.New("identity: unknown role")
)
