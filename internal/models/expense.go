package models

import "time"

// Expense is an overhead cost that is not stock or payroll (rent, utilities, ...)
type Expense struct {
	ID          int       `json:"id"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Amount      float64   `json:"amount"`
	IncurredOn  time.Time `json:"incurred_on"`
}

// ExpenseInput carries the fields needed to record an expense
type ExpenseInput struct {
	Category    string
	Description string
	Amount      float64
	IncurredOn  time.Time
}
