package cli

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/services/costs"
	"github.com/thenoetrevino/cafe/internal/services/staff"
	"github.com/thenoetrevino/cafe/internal/validation"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
		code string
	}{
		{"nil", nil, ExitSuccess, "ERROR"},
		{"not found", fmt.Errorf("shift 4: %w", models.ErrNotFound), ExitNotFound, "NOT_FOUND"},
		{"validation", fmt.Errorf("name %w", validation.ErrEmpty), ExitValidation, "VALIDATION_ERROR"},
		{"service validation", fmt.Errorf("x: %w", costs.ErrUnknownCategory), ExitValidation, "VALIDATION_ERROR"},
		{"shift too long", staff.ErrShiftTooLong, ExitValidation, "VALIDATION_ERROR"},
		{"duplicate", fmt.Errorf("unit %q %w", "kg", models.ErrDuplicate), ExitConflict, "CONFLICT"},
		{"overlap", models.ErrOverlap, ExitConflict, "CONFLICT"},
		{"insufficient stock", models.ErrInsufficientStock, ExitConflict, "CONFLICT"},
		{"usage", UsageError(errors.New("--id is required")), ExitUsage, "USAGE_ERROR"},
		{"reported keeps cause", &reportedError{err: models.ErrInUse}, ExitConflict, "CONFLICT"},
		{"unknown", errors.New("disk on fire"), ExitError, "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
			if tt.err != nil {
				assert.Equal(t, tt.code, ErrorCode(tt.err))
			}
		})
	}
}

func TestUsageError_Nil(t *testing.T) {
	assert.NoError(t, UsageError(nil))
}
