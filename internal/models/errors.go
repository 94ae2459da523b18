package models

import "errors"

// Errors shared by the database layer and the services. Repositories wrap them
// with the entity and key that triggered them, so callers match with errors.Is.
var (
	// ErrNotFound indicates that a row (or a row it depends on) does not exist
	ErrNotFound = errors.New("not found")

	// ErrDuplicate indicates that a unique name, email or composite key is already taken
	ErrDuplicate = errors.New("already exists")

	// ErrInUse indicates that a row is still referenced by other rows and cannot be deleted
	ErrInUse = errors.New("still in use")

	// ErrOverlap indicates that an interval intersects another stored interval of the same person
	ErrOverlap = errors.New("overlaps an existing record")

	// ErrInsufficientStock indicates that a stock adjustment would drive an amount below zero
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidState indicates that a record is not in a state that allows the operation
	ErrInvalidState = errors.New("invalid state for operation")
)
