package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/models"
)

func TestPaymentPeriodOverlap(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	ana := createEmployee(t, repo, "Ana", "")
	ben := createEmployee(t, repo, "Ben", "")

	pay := func(employeeID int, from, to string) error {
		_, err := repo.CreatePayment(ctx, models.PaymentInput{
			EmployeeID:  employeeID,
			PeriodStart: date(from),
			PeriodEnd:   date(to),
			Amount:      100,
			PaidOn:      date(to),
		})
		return err
	}

	require.NoError(t, pay(ana.ID, "2024-03-01", "2024-03-15"))

	tests := []struct {
		name       string
		employeeID int
		from, to   string
		wantErr    error
	}{
		{"same period", ana.ID, "2024-03-01", "2024-03-15", models.ErrOverlap},
		{"shares last day", ana.ID, "2024-03-15", "2024-03-31", models.ErrOverlap},
		{"shares first day", ana.ID, "2024-02-15", "2024-03-01", models.ErrOverlap},
		{"inside", ana.ID, "2024-03-05", "2024-03-06", models.ErrOverlap},
		{"next day", ana.ID, "2024-03-16", "2024-03-31", nil},
		{"single day before", ana.ID, "2024-02-29", "2024-02-29", nil},
		{"other employee", ben.ID, "2024-03-01", "2024-03-15", nil},
		{"unknown employee", 999, "2024-03-01", "2024-03-15", models.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := pay(tt.employeeID, tt.from, tt.to)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}

	payments, err := repo.ListPayments(ctx, &ana.ID)
	require.NoError(t, err)
	require.Len(t, payments, 3)
	assert.Equal(t, date("2024-02-29"), payments[0].PeriodStart, "ordered by period")

	all, err := repo.ListPayments(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestGetAndDeletePayment(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	ana := createEmployee(t, repo, "Ana", "")

	p, err := repo.CreatePayment(ctx, models.PaymentInput{
		EmployeeID: ana.ID, PeriodStart: date("2024-03-01"), PeriodEnd: date("2024-03-31"),
		Amount: 1234.56, PaidOn: date("2024-04-02"),
	})
	require.NoError(t, err)

	got, err := repo.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1234.56, got.Amount)
	assert.Equal(t, date("2024-04-02"), got.PaidOn)

	require.NoError(t, repo.DeletePayment(ctx, p.ID))
	_, err = repo.GetPayment(ctx, p.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.ErrorIs(t, repo.DeletePayment(ctx, p.ID), models.ErrNotFound)
}

func TestWorkedHours(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	ana := createEmployee(t, repo, "Ana", "")

	shifts := [][2]string{
		{"2024-02-29T20:00:00Z", "2024-03-01T02:00:00Z"}, // starts before the range
		{"2024-03-01T08:00:00Z", "2024-03-01T12:30:00Z"},
		{"2024-03-31T22:00:00Z", "2024-04-01T02:00:00Z"}, // starts on the last day
		{"2024-04-01T08:00:00Z", "2024-04-01T12:00:00Z"},
	}
	for _, s := range shifts {
		_, err := repo.CreateShift(ctx, ana.ID, instant(s[0]), instant(s[1]))
		require.NoError(t, err)
	}

	hours, err := repo.WorkedHours(ctx, ana.ID, date("2024-03-01"), date("2024-03-31"))
	require.NoError(t, err)
	assert.Equal(t, 8.5, hours)

	hours, err = repo.WorkedHours(ctx, ana.ID, date("2025-01-01"), date("2025-01-31"))
	require.NoError(t, err)
	assert.Zero(t, hours)

	_, err = repo.WorkedHours(ctx, 999, date("2024-03-01"), date("2024-03-31"))
	assert.ErrorIs(t, err, models.ErrNotFound)
}
