package menu

import "errors"

// Menu-related errors
var (
	ErrNoChanges           = errors.New("no fields to update")
	ErrDuplicateIngredient = errors.New("ingredient listed more than once in recipe")
)
