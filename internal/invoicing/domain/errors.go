package invoicing

import "errors"

var (
	// ErrApplicationNotFound is returned when no application matches.
	ErrApplicationNotFound = errors.New("invoicing: application not found")
	// ErrApplicationNotPending guards duplicate application reviews.
	ErrApplicationNotPending = errors.New("invoicing: application not pending review")
	// ErrInvoiceNotFound is returned when no invoice matches.
	ErrInvoiceNotFound = errors.New("invoicing: invoice not found")
	// ErrAlreadyIssued makes double issuance a guarded no-op.
	ErrAlreadyIssued = errors.New("invoicing: invoice already issued")
)
