package inventory

import "errors"

// Inventory-related errors
var (
	ErrNoChanges = errors.New("no fields to update")
)
