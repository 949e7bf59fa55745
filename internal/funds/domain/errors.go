package funds

import "errors"

var (
	// ErrDepositNotFound is returned when a deposit record does not exist.
	ErrDepositNotFound = errors.New("funds: deposit not found")
	// ErrDepositNotPending is returned when a reviewed deposit is revisited.
	ErrDepositNotPending = errors.New("funds: deposit not pending")
	// ErrInconsistentAccount signals a broken account invariant.
	ErrInconsistentAccount = errors.New("funds: account invariant violated")
)
