package supplier

import "time"

// Option configures the supplier service
type Option func(*service)

// withClock replaces the source of "today" for order dates
func withClock(now func() time.Time) Option {
	return func(s *service) {
		s.now = now
	}
}
