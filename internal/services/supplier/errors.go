package supplier

import "errors"

// Supplier-related errors
var (
	ErrNoChanges     = errors.New("no fields to update")
	ErrInvalidStatus = errors.New("invalid order status (must be: pending, received, cancelled)")
)
