package costs

import "time"

// Option configures the costs service
type Option func(*service)

// withClock replaces the source of "today" for expense dates
func withClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}
