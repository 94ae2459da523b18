package cli

import (
	"errors"

	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/services/costs"
	"github.com/thenoetrevino/cafe/internal/services/inventory"
	"github.com/thenoetrevino/cafe/internal/services/menu"
	"github.com/thenoetrevino/cafe/internal/services/staff"
	"github.com/thenoetrevino/cafe/internal/services/supplier"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, unexpected failures,
	// or any error that doesn't fit the specific categories below.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags, unparsable flag values,
	// or when the user needs to provide different arguments.
	ExitUsage = 2

	// ExitNotFound indicates a requested record was not found.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Empty names, negative amounts, reversed date ranges,
	// or any case where input fails validation rules.
	ExitValidation = 5

	// ExitConflict indicates the input was valid but clashes with stored data.
	// Use for: Duplicate names, overlapping shifts or payments, deleting
	// records still in use, insufficient stock.
	ExitConflict = 6
)

// serviceValidationErrors are service sentinels that mean "fix your input"
var serviceValidationErrors = []error{
	inventory.ErrNoChanges,
	menu.ErrNoChanges,
	menu.ErrDuplicateIngredient,
	supplier.ErrNoChanges,
	supplier.ErrInvalidStatus,
	staff.ErrNoChanges,
	staff.ErrShiftTooLong,
	staff.ErrPaidBeforePeriod,
	costs.ErrUnknownCategory,
}

var conflictErrors = []error{
	models.ErrDuplicate,
	models.ErrInUse,
	models.ErrOverlap,
	models.ErrInsufficientStock,
	models.ErrInvalidState,
	staff.ErrNoHoursWorked,
}

// usageError marks errors caused by how the command was invoked
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// UsageError wraps err so that it maps to ExitUsage
func UsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps an error returned by a command to a process exit code
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if ue := (*usageError)(nil); errors.As(err, &ue) {
		return ExitUsage
	}
	if errors.Is(err, models.ErrNotFound) {
		return ExitNotFound
	}
	if validation.IsValidation(err) || matchesAny(err, serviceValidationErrors) {
		return ExitValidation
	}
	if matchesAny(err, conflictErrors) {
		return ExitConflict
	}
	return ExitError
}

// ErrorCode is the machine-readable code printed in JSON error output
func ErrorCode(err error) string {
	switch ExitCode(err) {
	case ExitUsage:
		return "USAGE_ERROR"
	case ExitNotFound:
		return "NOT_FOUND"
	case ExitValidation:
		return "VALIDATION_ERROR"
	case ExitConflict:
		return "CONFLICT"
	default:
		return "ERROR"
	}
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
