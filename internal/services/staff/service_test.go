package staff

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/testutil"
	"github.com/thenoetrevino/cafe/internal/validation"
)

func setupService(t *testing.T, opts ...Option) (Service, *database.Repository) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	fixed := testutil.Date(t, "2024-04-01")
	opts = append([]Option{withClock(func() time.Time { return fixed })}, opts...)
	return NewService(repo, opts...), repo
}

func TestPositions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := setupService(t)

	p, err := svc.CreatePosition(ctx, "  Head   Barista ", 18.456)
	require.NoError(t, err)
	assert.Equal(t, "Head Barista", p.Name)
	assert.Equal(t, 18.46, p.HourlyRate)

	_, err = svc.CreatePosition(ctx, "head barista", 10)
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = svc.CreatePosition(ctx, "Cashier", -1)
	assert.ErrorIs(t, err, validation.ErrNegative)

	p, err = svc.UpdatePosition(ctx, p.ID, "Lead Barista", 20)
	require.NoError(t, err)
	assert.Equal(t, "Lead Barista", p.Name)

	_, err = svc.CreateEmployee(ctx, CreateEmployeeRequest{FirstName: "Ana", LastName: "Diaz", PositionID: p.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, svc.DeletePosition(ctx, p.ID), models.ErrInUse)
}

func TestCreateEmployee(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t)
	posID := testutil.CreateTestPosition(t, repo, "Barista", 15)

	emp, err := svc.CreateEmployee(ctx, CreateEmployeeRequest{
		FirstName:  " Ana ",
		LastName:   "de  la  Cruz",
		PositionID: posID,
		Phone:      "555-0100",
		Email:      "Ana@Cafe.io",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana", emp.FirstName)
	assert.Equal(t, "de la Cruz", emp.LastName)
	assert.Equal(t, "5550100", emp.Phone)
	assert.Equal(t, "ana@cafe.io", emp.Email)
	assert.Equal(t, "Barista", emp.PositionName)
	assert.Equal(t, testutil.Date(t, "2024-04-01"), emp.HiredOn, "zero hire date defaults to today")

	_, err = svc.CreateEmployee(ctx, CreateEmployeeRequest{
		FirstName: "Ben", LastName: "Ng", PositionID: posID, Email: "ANA@cafe.io",
	})
	assert.ErrorIs(t, err, models.ErrDuplicate)

	_, err = svc.CreateEmployee(ctx, CreateEmployeeRequest{FirstName: "Ben", LastName: "Ng", PositionID: 999})
	assert.ErrorIs(t, err, models.ErrNotFound)

	_, err = svc.CreateEmployee(ctx, CreateEmployeeRequest{FirstName: "", LastName: "Ng", PositionID: posID})
	assert.ErrorIs(t, err, validation.ErrEmpty)
}

func TestUpdateEmployee(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t)
	posID := testutil.CreateTestPosition(t, repo, "Barista", 15)
	cashier := testutil.CreateTestPosition(t, repo, "Cashier", 13)
	id := testutil.CreateTestEmployee(t, repo, posID, "Ana")

	_, err := svc.UpdateEmployee(ctx, UpdateEmployeeRequest{ID: id})
	assert.ErrorIs(t, err, ErrNoChanges)

	emp, err := svc.UpdateEmployee(ctx, UpdateEmployeeRequest{ID: id, PositionID: &cashier})
	require.NoError(t, err)
	assert.Equal(t, "Cashier", emp.PositionName)
	assert.Equal(t, "Ana", emp.FirstName, "unset fields are kept")

	bad := "nope"
	_, err = svc.UpdateEmployee(ctx, UpdateEmployeeRequest{ID: id, Email: &bad})
	assert.ErrorIs(t, err, validation.ErrInvalidEmail)
}

func TestShifts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t, WithMaxShiftDuration(10*time.Hour))
	posID := testutil.CreateTestPosition(t, repo, "Barista", 15)
	empID := testutil.CreateTestEmployee(t, repo, posID, "Ana")

	start := testutil.Instant(t, "2024-03-04T08:00:00Z")
	sh, err := svc.CreateShift(ctx, empID, start, start.Add(4*time.Hour+500*time.Millisecond))
	require.NoError(t, err)
	assert.Equal(t, 4.0, sh.Hours(), "sub-second precision is dropped")

	testCases := []struct {
		name       string
		start, end time.Time
		wantErr    error
	}{
		{"overlapping", start.Add(2 * time.Hour), start.Add(6 * time.Hour), models.ErrOverlap},
		{"reversed", start.Add(6 * time.Hour), start.Add(5 * time.Hour), validation.ErrInvalidRange},
		{"empty", start.Add(6 * time.Hour), start.Add(6 * time.Hour), validation.ErrInvalidRange},
		{"too long", start.Add(24 * time.Hour), start.Add(35 * time.Hour), ErrShiftTooLong},
		{"missing end", start.Add(24 * time.Hour), time.Time{}, validation.ErrZeroDate},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateShift(ctx, empID, tc.start, tc.end)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	// back-to-back shifts touch but do not overlap
	next, err := svc.CreateShift(ctx, empID, start.Add(4*time.Hour), start.Add(8*time.Hour))
	require.NoError(t, err)

	_, err = svc.UpdateShift(ctx, next.ID, start.Add(3*time.Hour), start.Add(8*time.Hour))
	assert.ErrorIs(t, err, models.ErrOverlap)

	_, err = svc.ListShifts(ctx, &empID, start.Add(time.Hour), start)
	assert.ErrorIs(t, err, validation.ErrInvalidRange)

	shifts, err := svc.ListShifts(ctx, &empID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, shifts, 2)
}

func TestCreatePayment(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t)
	posID := testutil.CreateTestPosition(t, repo, "Barista", 15)
	empID := testutil.CreateTestEmployee(t, repo, posID, "Ana")

	p, err := svc.CreatePayment(ctx, PaymentRequest{
		EmployeeID:  empID,
		PeriodStart: testutil.Date(t, "2024-03-01"),
		PeriodEnd:   testutil.Date(t, "2024-03-15"),
		Amount:      600.004,
	})
	require.NoError(t, err)
	assert.Equal(t, 600.0, p.Amount)
	assert.Equal(t, testutil.Date(t, "2024-04-01"), p.PaidOn)

	testCases := []struct {
		name    string
		req     PaymentRequest
		wantErr error
	}{
		{"overlapping period", PaymentRequest{
			EmployeeID: empID, PeriodStart: testutil.Date(t, "2024-03-15"), PeriodEnd: testutil.Date(t, "2024-03-31"), Amount: 1,
		}, models.ErrOverlap},
		{"reversed period", PaymentRequest{
			EmployeeID: empID, PeriodStart: testutil.Date(t, "2024-03-31"), PeriodEnd: testutil.Date(t, "2024-03-16"), Amount: 1,
		}, validation.ErrInvalidRange},
		{"negative amount", PaymentRequest{
			EmployeeID: empID, PeriodStart: testutil.Date(t, "2024-03-16"), PeriodEnd: testutil.Date(t, "2024-03-31"), Amount: -5,
		}, validation.ErrNegative},
		{"paid before period", PaymentRequest{
			EmployeeID: empID, PeriodStart: testutil.Date(t, "2024-03-16"), PeriodEnd: testutil.Date(t, "2024-03-31"), Amount: 1,
			PaidOn: testutil.Date(t, "2024-03-10"),
		}, ErrPaidBeforePeriod},
		{"missing period", PaymentRequest{EmployeeID: empID, Amount: 1}, validation.ErrZeroDate},
		{"unknown employee", PaymentRequest{
			EmployeeID: 999, PeriodStart: testutil.Date(t, "2024-03-16"), PeriodEnd: testutil.Date(t, "2024-03-31"), Amount: 1,
		}, models.ErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreatePayment(ctx, tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestRunPayroll(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t)
	posID := testutil.CreateTestPosition(t, repo, "Barista", 15.5)
	empID := testutil.CreateTestEmployee(t, repo, posID, "Ana")

	for _, s := range []string{"2024-03-04T08:00:00Z", "2024-03-05T08:00:00Z", "2024-03-20T08:00:00Z"} {
		start := testutil.Instant(t, s)
		_, err := svc.CreateShift(ctx, empID, start, start.Add(7*time.Hour+30*time.Minute))
		require.NoError(t, err)
	}

	from, to := testutil.Date(t, "2024-03-01"), testutil.Date(t, "2024-03-15")
	hours, err := svc.WorkedHours(ctx, empID, from, to)
	require.NoError(t, err)
	assert.Equal(t, 15.0, hours)

	res, err := svc.RunPayroll(ctx, PayrollRequest{EmployeeID: empID, PeriodStart: from, PeriodEnd: to})
	require.NoError(t, err)
	assert.Equal(t, 15.0, res.Hours)
	assert.Equal(t, 15.5, res.HourlyRate)
	assert.Equal(t, 232.5, res.Payment.Amount)
	assert.Equal(t, res.Payment.ID, res.GetID())

	_, err = svc.RunPayroll(ctx, PayrollRequest{EmployeeID: empID, PeriodStart: from, PeriodEnd: to})
	assert.ErrorIs(t, err, models.ErrOverlap, "a period is only paid once")

	_, err = svc.RunPayroll(ctx, PayrollRequest{
		EmployeeID:  empID,
		PeriodStart: testutil.Date(t, "2024-02-01"),
		PeriodEnd:   testutil.Date(t, "2024-02-29"),
	})
	assert.ErrorIs(t, err, ErrNoHoursWorked)

	// employees with payments cannot be removed
	assert.ErrorIs(t, svc.DeleteEmployee(ctx, empID), models.ErrInUse)
}
