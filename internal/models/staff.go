package models

import "time"

// Position is a job role with an hourly rate (e.g. "Barista")
type Position struct {
	ID         int     `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
}

// Employee is a member of staff
type Employee struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PositionID   int       `json:"position_id"`
	PositionName string    `json:"position"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	HiredOn      time.Time `json:"hired_on"`
}

// FullName returns "First Last"
func (e *Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// EmployeeInput carries the writable employee fields
type EmployeeInput struct {
	FirstName  string
	LastName   string
	PositionID int
	Phone      string
	Email      string
	HiredOn    time.Time
}

// Shift is a block of work time. StartsAt is inclusive, EndsAt exclusive.
type Shift struct {
	ID         int       `json:"id"`
	EmployeeID int       `json:"employee_id"`
	StartsAt   time.Time `json:"starts_at"`
	EndsAt     time.Time `json:"ends_at"`
}

// Hours returns the shift length in hours
func (s *Shift) Hours() float64 {
	return s.EndsAt.Sub(s.StartsAt).Hours()
}

// Payment is a salary payment covering an inclusive date period
type Payment struct {
	ID          int       `json:"id"`
	EmployeeID  int       `json:"employee_id"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
	Amount      float64   `json:"amount"`
	PaidOn      time.Time `json:"paid_on"`
}

// PaymentInput carries the fields needed to record a payment
type PaymentInput struct {
	EmployeeID  int
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      float64
	PaidOn      time.Time
}
