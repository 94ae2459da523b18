// Package validation holds the guard clauses and string normalisation shared by
// every service: names are trimmed and whitespace-collapsed, emails lower-cased,
// phones reduced to digits, money rounded to cents.
package validation

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/thenoetrevino/cafe/internal/models"
)

// Generic validation errors. Services wrap them with the offending field.
var (
	ErrEmpty        = errors.New("cannot be empty")
	ErrTooLong      = errors.New("is too long")
	ErrNegative     = errors.New("cannot be negative")
	ErrNotPositive  = errors.New("must be greater than zero")
	ErrNotFinite    = errors.New("must be a finite number")
	ErrInvalidEmail = errors.New("is not a valid email address")
	ErrInvalidPhone = errors.New("is not a valid phone number")
	ErrInvalidID    = errors.New("must be a positive ID")
	ErrInvalidRange = errors.New("start must not be after end")
	ErrInvalidDate  = errors.New("is not a valid date (expected YYYY-MM-DD)")
	ErrInvalidTime  = errors.New("is not a valid time (expected YYYY-MM-DDTHH:MM)")
	ErrZeroDate     = errors.New("is required")
)

var all = []error{
	ErrEmpty, ErrTooLong, ErrNegative, ErrNotPositive, ErrNotFinite, ErrInvalidEmail,
	ErrInvalidPhone, ErrInvalidID, ErrInvalidRange, ErrInvalidDate, ErrInvalidTime, ErrZeroDate,
}

// IsValidation reports whether err wraps one of the generic validation errors
func IsValidation(err error) bool {
	for _, target := range all {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

var emailRegex = regexp.MustCompile(`^[a-z0-9._%+\-]+@[a-z0-9.\-]+\.[a-z]{2,}$`)

// NormalizeName trims the string and collapses inner runs of whitespace to one space
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Name normalises s and checks that it is non-empty and at most max runes long
func Name(field, s string, max int) (string, error) {
	n := NormalizeName(s)
	if n == "" {
		return "", fmt.Errorf("%s %w", field, ErrEmpty)
	}
	if len([]rune(n)) > max {
		return "", fmt.Errorf("%s %w (max %d characters)", field, ErrTooLong, max)
	}
	return n, nil
}

// OptionalText trims s; empty is allowed, but it must fit in max runes
func OptionalText(field, s string, max int) (string, error) {
	n := strings.TrimSpace(s)
	if len([]rune(n)) > max {
		return "", fmt.Errorf("%s %w (max %d characters)", field, ErrTooLong, max)
	}
	return n, nil
}

// Email lower-cases and trims s. Empty input is returned as-is.
func Email(field, s string) (string, error) {
	e := strings.ToLower(strings.TrimSpace(s))
	if e == "" {
		return "", nil
	}
	if !emailRegex.MatchString(e) {
		return "", fmt.Errorf("%s %q %w", field, s, ErrInvalidEmail)
	}
	return e, nil
}

// Phone strips formatting characters, keeping digits and an optional leading '+'.
// Empty input is returned as-is.
func Phone(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	var b strings.Builder
	for i, r := range s {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '+' && i == 0:
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '(' || r == ')' || r == '.':
			// formatting
		default:
			return "", fmt.Errorf("%s %q %w", field, s, ErrInvalidPhone)
		}
	}

	p := b.String()
	digits := strings.TrimPrefix(p, "+")
	if len(digits) < 5 || len(digits) > 15 {
		return "", fmt.Errorf("%s %q %w", field, s, ErrInvalidPhone)
	}
	return p, nil
}

// ID checks that id refers to a stored row
func ID(field string, id int) error {
	if id <= 0 {
		return fmt.Errorf("%s %w", field, ErrInvalidID)
	}
	return nil
}

// NonNegative checks v >= 0
func NonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %w", field, ErrNotFinite)
	}
	if v < 0 {
		return fmt.Errorf("%s %w", field, ErrNegative)
	}
	return nil
}

// Positive checks v > 0
func Positive(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%s %w", field, ErrNotFinite)
	}
	if v <= 0 {
		return fmt.Errorf("%s %w", field, ErrNotPositive)
	}
	return nil
}

// Money rounds v to cents
func Money(v float64) float64 {
	return math.Round(v*100) / 100
}

// Date truncates t to midnight UTC of the same calendar day
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RequireDate rejects the zero time and returns the truncated date
func RequireDate(field string, t time.Time) (time.Time, error) {
	if t.IsZero() {
		return time.Time{}, fmt.Errorf("%s %w", field, ErrZeroDate)
	}
	return Date(t), nil
}

// DateRange checks from <= to after truncating both to dates
func DateRange(from, to time.Time) (time.Time, time.Time, error) {
	from, to = Date(from), Date(to)
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%s > %s: %w",
			from.Format(models.DateLayout), to.Format(models.DateLayout), ErrInvalidRange)
	}
	return from, to, nil
}

// ParseDate parses YYYY-MM-DD
func ParseDate(field, s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%s %q %w", field, s, ErrInvalidDate)
	}
	return t, nil
}

// timeLayouts are accepted by ParseTime, most specific first
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseTime parses an instant. Inputs without a zone are read in loc.
func ParseTime(field, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%s %q %w", field, s, ErrInvalidTime)
}
