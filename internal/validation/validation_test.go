package validation

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		max     int
		want    string
		wantErr error
	}{
		{"trims and collapses", "  Oat   milk \t", 100, "Oat milk", nil},
		{"empty", "   ", 100, "", ErrEmpty},
		{"too long", "abcdef", 5, "", ErrTooLong},
		{"multibyte fits", "Crème", 5, "Crème", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Name("name", tt.input, tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEmail(t *testing.T) {
	got, err := Email("email", "  Orders@Beans.Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "orders@beans.example.com", got)

	got, err = Email("email", "")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = Email("email", "not-an-email")
	assert.ErrorIs(t, err, ErrInvalidEmail)
}

func TestPhone(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"+1 (555) 010-2030", "+15550102030", false},
		{"555.0102", "5550102", false},
		{"", "", false},
		{"12", "", true},
		{"555-CALL-NOW", "", true},
		{"55+50102", "", true},
	}

	for _, tt := range tests {
		got, err := Phone("phone", tt.input)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPhone, "input %q", tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got)
	}
}

func TestNumbers(t *testing.T) {
	assert.NoError(t, NonNegative("amount", 0))
	assert.ErrorIs(t, NonNegative("amount", -0.01), ErrNegative)
	assert.ErrorIs(t, NonNegative("amount", math.NaN()), ErrNotFinite)
	assert.ErrorIs(t, Positive("quantity", 0), ErrNotPositive)
	assert.NoError(t, Positive("quantity", 0.5))
	assert.ErrorIs(t, ID("supplier", 0), ErrInvalidID)
	assert.Equal(t, 3.46, Money(3.456))
}

func TestDateRange(t *testing.T) {
	from := time.Date(2024, 5, 1, 15, 0, 0, 0, time.UTC)
	to := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	// Same calendar day is a valid one-day range even if the clock times are reversed
	f, tt, err := DateRange(from, to)
	require.NoError(t, err)
	assert.True(t, f.Equal(tt))

	_, _, err = DateRange(to.AddDate(0, 0, 1), from)
	assert.True(t, errors.Is(err, ErrInvalidRange))
}

func TestParseTime(t *testing.T) {
	loc := time.FixedZone("CET", 3600)

	got, err := ParseTime("start", "2024-05-01T08:00", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC), got)

	got, err = ParseTime("start", "2024-05-01T08:00:00Z", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC), got)

	_, err = ParseTime("start", "yesterday", loc)
	assert.ErrorIs(t, err, ErrInvalidTime)

	_, err = ParseDate("day", "2024-13-01")
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestIsValidation(t *testing.T) {
	_, err := Name("name", "  ", 10)
	assert.True(t, IsValidation(err))
	assert.True(t, IsValidation(fmt.Errorf("create item: %w", err)))
	assert.False(t, IsValidation(errors.New("disk full")))
	assert.False(t, IsValidation(nil))
}
