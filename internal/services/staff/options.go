package staff

import "time"

// DefaultMaxShift is the longest shift accepted unless configured otherwise
const DefaultMaxShift = 12 * time.Hour

// Option configures the staff service
type Option func(*service)

// WithMaxShiftDuration overrides the maximum shift length. Non-positive values are ignored.
func WithMaxShiftDuration(d time.Duration) Option {
	return func(s *service) {
		if d > 0 {
			s.maxShift = d
		}
	}
}

// withClock replaces the source of "today" for payroll defaults
func withClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}
