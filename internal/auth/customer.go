package auth

import "context"

// EnsureCustomer verifies that a customer-bound caller only touches its own
// documents. Staff roles carry no customer binding and pass through.
func EnsureCustomer(ctx context.Context, customerID string) error {
	bound := CustomerIDFromContext(ctx)
	if bound == "" || customerID == "" {
		return nil
	}
	if bound != customerID {
		return ErrCustomerMismatch
	}
	return nil
}
