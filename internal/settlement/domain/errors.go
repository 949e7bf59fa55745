package settlement

import "errors"

var (
	// ErrNotFound is returned when no statement matches the given id.
	ErrNotFound = errors.New("settlement: statement not found")
	// ErrInvalidPhase is returned when a stamp arrives out of phase.
	// The statement is left untouched.
	ErrInvalidPhase = errors.New("settlement: stamp out of phase")
	// ErrUnknownActor is returned for actor types other than platform/customer.
	ErrUnknownActor = errors.New("settlement: unknown actor type")
)
