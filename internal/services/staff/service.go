package staff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Service defines positions, employees, shifts and payroll
type Service interface {
	// Positions
	CreatePosition(ctx context.Context, name string, hourlyRate float64) (*models.Position, error)
	ListPositions(ctx context.Context) ([]*models.Position, error)
	UpdatePosition(ctx context.Context, id int, name string, hourlyRate float64) (*models.Position, error)
	DeletePosition(ctx context.Context, id int) error

	// Employees
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	ListEmployees(ctx context.Context, positionID *int) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error

	// Shifts
	CreateShift(ctx context.Context, employeeID int, start, end time.Time) (*models.Shift, error)
	GetShift(ctx context.Context, id int) (*models.Shift, error)
	ListShifts(ctx context.Context, employeeID *int, from, to time.Time) ([]*models.Shift, error)
	UpdateShift(ctx context.Context, id int, start, end time.Time) (*models.Shift, error)
	DeleteShift(ctx context.Context, id int) error

	// Payments
	CreatePayment(ctx context.Context, req PaymentRequest) (*models.Payment, error)
	GetPayment(ctx context.Context, id int) (*models.Payment, error)
	ListPayments(ctx context.Context, employeeID *int) ([]*models.Payment, error)
	DeletePayment(ctx context.Context, id int) error
	WorkedHours(ctx context.Context, employeeID int, from, to time.Time) (float64, error)
	RunPayroll(ctx context.Context, req PayrollRequest) (*PayrollResult, error)
}

// CreateEmployeeRequest encapsulates data for hiring an employee.
// A zero HiredOn means today.
type CreateEmployeeRequest struct {
	FirstName  string
	LastName   string
	PositionID int
	Phone      string
	Email      string
	HiredOn    time.Time
}

// UpdateEmployeeRequest encapsulates data for updating an employee.
// Nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID         int
	FirstName  *string
	LastName   *string
	PositionID *int
	Phone      *string
	Email      *string
	HiredOn    *time.Time
}

// PaymentRequest records a payment for an inclusive period.
// A zero PaidOn means today.
type PaymentRequest struct {
	EmployeeID  int
	PeriodStart time.Time
	PeriodEnd   time.Time
	Amount      float64
	PaidOn      time.Time
}

// PayrollRequest pays an employee for the shifts worked in a period
type PayrollRequest struct {
	EmployeeID  int
	PeriodStart time.Time
	PeriodEnd   time.Time
	PaidOn      time.Time
}

// PayrollResult is the payment RunPayroll recorded and how it was computed
type PayrollResult struct {
	Payment    *models.Payment `json:"payment"`
	Hours      float64         `json:"hours"`
	HourlyRate float64         `json:"hourly_rate"`
}

// GetID implements the GetID interface for quiet mode output
func (r *PayrollResult) GetID() int {
	return r.Payment.ID
}

// service implements Service interface
type service struct {
	repo     database.StaffStore
	maxShift time.Duration
	now      func() time.Time
}

// NewService creates a new staff service
func NewService(repo database.StaffStore, opts ...Option) Service {
	s := &service{
		repo:     repo,
		maxShift: DefaultMaxShift,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return validation.Date(s.now())
}

// ============================================================================
// Positions
// ============================================================================

// CreatePosition adds a job role
func (s *service) CreatePosition(ctx context.Context, name string, hourlyRate float64) (*models.Position, error) {
	name, rate, err := validatePosition(name, hourlyRate)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.CreatePosition(ctx, name, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}
	return p, nil
}

// ListPositions returns every position
func (s *service) ListPositions(ctx context.Context) ([]*models.Position, error) {
	return s.repo.ListPositions(ctx)
}

// UpdatePosition renames a position and sets its rate
func (s *service) UpdatePosition(ctx context.Context, id int, name string, hourlyRate float64) (*models.Position, error) {
	if err := validation.ID("position ID", id); err != nil {
		return nil, err
	}
	name, rate, err := validatePosition(name, hourlyRate)
	if err != nil {
		return nil, err
	}
	p, err := s.repo.UpdatePosition(ctx, id, name, rate)
	if err != nil {
		return nil, fmt.Errorf("failed to update position: %w", err)
	}
	return p, nil
}

// DeletePosition removes a position nobody holds
func (s *service) DeletePosition(ctx context.Context, id int) error {
	if err := validation.ID("position ID", id); err != nil {
		return err
	}
	if err := s.repo.DeletePosition(ctx, id); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// ============================================================================
// Employees
// ============================================================================

// CreateEmployee validates and stores an employee
func (s *service) CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*models.Employee, error) {
	in := models.EmployeeInput(req)
	if in.HiredOn.IsZero() {
		in.HiredOn = s.today()
	}
	in, err := validateEmployee(in)
	if err != nil {
		return nil, err
	}
	e, err := s.repo.CreateEmployee(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}
	return e, nil
}

// GetEmployee retrieves an employee
func (s *service) GetEmployee(ctx context.Context, id int) (*models.Employee, error) {
	if err := validation.ID("employee ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetEmployee(ctx, id)
}

// ListEmployees returns employees, optionally for one position
func (s *service) ListEmployees(ctx context.Context, positionID *int) ([]*models.Employee, error) {
	return s.repo.ListEmployees(ctx, positionID)
}

// UpdateEmployee applies the non-nil fields of req
func (s *service) UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (*models.Employee, error) {
	if err := validation.ID("employee ID", req.ID); err != nil {
		return nil, err
	}
	if req.FirstName == nil && req.LastName == nil && req.PositionID == nil &&
		req.Phone == nil && req.Email == nil && req.HiredOn == nil {
		return nil, ErrNoChanges
	}

	existing, err := s.repo.GetEmployee(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	in := models.EmployeeInput{
		FirstName:  existing.FirstName,
		LastName:   existing.LastName,
		PositionID: existing.PositionID,
		Phone:      existing.Phone,
		Email:      existing.Email,
		HiredOn:    existing.HiredOn,
	}
	if req.FirstName != nil {
		in.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		in.LastName = *req.LastName
	}
	if req.PositionID != nil {
		in.PositionID = *req.PositionID
	}
	if req.Phone != nil {
		in.Phone = *req.Phone
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	if req.HiredOn != nil {
		in.HiredOn = *req.HiredOn
	}

	if in, err = validateEmployee(in); err != nil {
		return nil, err
	}
	e, err := s.repo.UpdateEmployee(ctx, req.ID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return e, nil
}

// DeleteEmployee removes an employee who was never paid
func (s *service) DeleteEmployee(ctx context.Context, id int) error {
	if err := validation.ID("employee ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteEmployee(ctx, id); err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	return nil
}

// ============================================================================
// Shifts
// ============================================================================

// CreateShift records a shift; it may not overlap the employee's other shifts
func (s *service) CreateShift(ctx context.Context, employeeID int, start, end time.Time) (*models.Shift, error) {
	if err := validation.ID("employee ID", employeeID); err != nil {
		return nil, err
	}
	start, end, err := s.validateShift(start, end)
	if err != nil {
		return nil, err
	}
	sh, err := s.repo.CreateShift(ctx, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}
	return sh, nil
}

// GetShift retrieves a shift
func (s *service) GetShift(ctx context.Context, id int) (*models.Shift, error) {
	if err := validation.ID("shift ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetShift(ctx, id)
}

// ListShifts returns shifts starting in [from, to)
func (s *service) ListShifts(ctx context.Context, employeeID *int, from, to time.Time) ([]*models.Shift, error) {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return nil, fmt.Errorf("shift listing: %w", validation.ErrInvalidRange)
	}
	return s.repo.ListShifts(ctx, employeeID, from, to)
}

// UpdateShift moves a shift
func (s *service) UpdateShift(ctx context.Context, id int, start, end time.Time) (*models.Shift, error) {
	if err := validation.ID("shift ID", id); err != nil {
		return nil, err
	}
	start, end, err := s.validateShift(start, end)
	if err != nil {
		return nil, err
	}
	sh, err := s.repo.UpdateShift(ctx, id, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to update shift: %w", err)
	}
	return sh, nil
}

// DeleteShift removes a shift
func (s *service) DeleteShift(ctx context.Context, id int) error {
	if err := validation.ID("shift ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteShift(ctx, id); err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	return nil
}

// validateShift truncates to whole seconds and checks ordering and length
func (s *service) validateShift(start, end time.Time) (time.Time, time.Time, error) {
	if start.IsZero() {
		return start, end, fmt.Errorf("shift start %w", validation.ErrZeroDate)
	}
	if end.IsZero() {
		return start, end, fmt.Errorf("shift end %w", validation.ErrZeroDate)
	}
	start, end = start.UTC().Truncate(time.Second), end.UTC().Truncate(time.Second)
	if !start.Before(end) {
		return start, end, fmt.Errorf("shift must end after it starts: %w", validation.ErrInvalidRange)
	}
	if end.Sub(start) > s.maxShift {
		return start, end, fmt.Errorf("%s > %s: %w", end.Sub(start), s.maxShift, ErrShiftTooLong)
	}
	return start, end, nil
}

// ============================================================================
// Payments
// ============================================================================

// CreatePayment records a payment; periods of one employee never overlap
func (s *service) CreatePayment(ctx context.Context, req PaymentRequest) (*models.Payment, error) {
	in, err := s.validatePayment(models.PaymentInput(req))
	if err != nil {
		return nil, err
	}
	p, err := s.repo.CreatePayment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return p, nil
}

// GetPayment retrieves a payment
func (s *service) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	if err := validation.ID("payment ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetPayment(ctx, id)
}

// ListPayments returns payments, optionally for one employee
func (s *service) ListPayments(ctx context.Context, employeeID *int) ([]*models.Payment, error) {
	return s.repo.ListPayments(ctx, employeeID)
}

// DeletePayment removes a payment
func (s *service) DeletePayment(ctx context.Context, id int) error {
	if err := validation.ID("payment ID", id); err != nil {
		return err
	}
	if err := s.repo.DeletePayment(ctx, id); err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}
	return nil
}

// WorkedHours sums the hours of shifts starting within [from, to]
func (s *service) WorkedHours(ctx context.Context, employeeID int, from, to time.Time) (float64, error) {
	if err := validation.ID("employee ID", employeeID); err != nil {
		return 0, err
	}
	from, to, err := validation.DateRange(from, to)
	if err != nil {
		return 0, err
	}
	return s.repo.WorkedHours(ctx, employeeID, from, to)
}

// RunPayroll pays an employee worked hours times their position's hourly rate
func (s *service) RunPayroll(ctx context.Context, req PayrollRequest) (*PayrollResult, error) {
	if err := validation.ID("employee ID", req.EmployeeID); err != nil {
		return nil, err
	}
	from, to, err := validation.DateRange(req.PeriodStart, req.PeriodEnd)
	if err != nil {
		return nil, err
	}

	emp, err := s.repo.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}
	pos, err := s.repo.GetPosition(ctx, emp.PositionID)
	if err != nil {
		return nil, err
	}
	hours, err := s.repo.WorkedHours(ctx, emp.ID, from, to)
	if err != nil {
		return nil, err
	}
	if hours == 0 {
		return nil, fmt.Errorf("employee %d, %s..%s: %w",
			emp.ID, from.Format(models.DateLayout), to.Format(models.DateLayout), ErrNoHoursWorked)
	}

	in, err := s.validatePayment(models.PaymentInput{
		EmployeeID:  emp.ID,
		PeriodStart: from,
		PeriodEnd:   to,
		Amount:      hours * pos.HourlyRate,
		PaidOn:      req.PaidOn,
	})
	if err != nil {
		return nil, err
	}
	p, err := s.repo.CreatePayment(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to record payroll: %w", err)
	}

	slog.Info("payroll recorded", "employee", emp.FullName(), "hours", hours, "rate", pos.HourlyRate, "amount", p.Amount)
	return &PayrollResult{Payment: p, Hours: hours, HourlyRate: pos.HourlyRate}, nil
}

func (s *service) validatePayment(in models.PaymentInput) (models.PaymentInput, error) {
	if err := validation.ID("employee ID", in.EmployeeID); err != nil {
		return in, err
	}
	if _, err := validation.RequireDate("period start", in.PeriodStart); err != nil {
		return in, err
	}
	if _, err := validation.RequireDate("period end", in.PeriodEnd); err != nil {
		return in, err
	}
	from, to, err := validation.DateRange(in.PeriodStart, in.PeriodEnd)
	if err != nil {
		return in, err
	}
	in.PeriodStart, in.PeriodEnd = from, to

	if err := validation.NonNegative("amount", in.Amount); err != nil {
		return in, err
	}
	in.Amount = validation.Money(in.Amount)

	if in.PaidOn.IsZero() {
		in.PaidOn = s.today()
	}
	in.PaidOn = validation.Date(in.PaidOn)
	if in.PaidOn.Before(in.PeriodStart) {
		return in, fmt.Errorf("paid %s, period starts %s: %w",
			in.PaidOn.Format(models.DateLayout), in.PeriodStart.Format(models.DateLayout), ErrPaidBeforePeriod)
	}
	return in, nil
}

// ============================================================================
// Validation helpers
// ============================================================================

func validatePosition(name string, rate float64) (string, float64, error) {
	name, err := validation.Name("position name", name, models.MaxNameLength)
	if err != nil {
		return "", 0, err
	}
	if err := validation.NonNegative("hourly rate", rate); err != nil {
		return "", 0, err
	}
	return name, validation.Money(rate), nil
}

func validateEmployee(in models.EmployeeInput) (models.EmployeeInput, error) {
	var err error
	if in.FirstName, err = validation.Name("first name", in.FirstName, models.MaxNameLength); err != nil {
		return in, err
	}
	if in.LastName, err = validation.Name("last name", in.LastName, models.MaxNameLength); err != nil {
		return in, err
	}
	if err = validation.ID("position ID", in.PositionID); err != nil {
		return in, err
	}
	if in.Phone, err = validation.Phone("phone", in.Phone); err != nil {
		return in, err
	}
	if in.Email, err = validation.Email("email", in.Email); err != nil {
		return in, err
	}
	if in.HiredOn, err = validation.RequireDate("hire date", in.HiredOn); err != nil {
		return in, err
	}
	return in, nil
}
