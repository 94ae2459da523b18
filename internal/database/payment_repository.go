package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// PaymentRepo handles salary payments. Each payment covers an inclusive date
// period; periods of one employee never overlap.
type PaymentRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

const paymentColumns = `id, employee_id, period_start, period_end, amount, paid_on`

func scanPayment(s scanner) (*models.Payment, error) {
	p := &models.Payment{}
	var start, end, paidOn string
	if err := s.Scan(&p.ID, &p.EmployeeID, &start, &end, &p.Amount, &paidOn); err != nil {
		return nil, err
	}
	var err error
	if p.PeriodStart, err = parseDate(start); err != nil {
		return nil, err
	}
	if p.PeriodEnd, err = parseDate(end); err != nil {
		return nil, err
	}
	if p.PaidOn, err = parseDate(paidOn); err != nil {
		return nil, err
	}
	return p, nil
}

func getPayment(ctx context.Context, q querier, id int) (*models.Payment, error) {
	p, err := scanPayment(q.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("payment", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get payment %d: %w", id, err)
	}
	return p, nil
}

// CreatePayment records a payment after checking the employee exists and the
// period does not overlap one already paid.
func (r *PaymentRepo) CreatePayment(ctx context.Context, in models.PaymentInput) (*models.Payment, error) {
	var p *models.Payment
	err := withTx(ctx, r.db, r.metrics, "create_payment", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "employees", "employee", in.EmployeeID); err != nil {
			return err
		}

		start, end := formatDate(in.PeriodStart), formatDate(in.PeriodEnd)
		var clash int
		err := tx.QueryRowContext(ctx, `
			SELECT id FROM payments
			WHERE employee_id = ? AND period_start <= ? AND ? <= period_end
			ORDER BY period_start LIMIT 1`,
			in.EmployeeID, end, start,
		).Scan(&clash)
		switch {
		case err == nil:
			return fmt.Errorf("period %s..%s overlaps payment %d of employee %d: %w",
				start, end, clash, in.EmployeeID, models.ErrOverlap)
		case !errors.Is(err, sql.ErrNoRows):
			return fmt.Errorf("failed to check payment overlap for employee %d: %w", in.EmployeeID, err)
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO payments (employee_id, period_start, period_end, amount, paid_on)
			VALUES (?, ?, ?, ?, ?)`,
			in.EmployeeID, start, end, in.Amount, formatDate(in.PaidOn),
		)
		if err != nil {
			return fmt.Errorf("failed to insert payment: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get payment ID after insert: %w", err)
		}
		p, err = getPayment(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPayment retrieves a payment by ID
func (r *PaymentRepo) GetPayment(ctx context.Context, id int) (*models.Payment, error) {
	return getPayment(ctx, r.db, id)
}

// ListPayments returns payments ordered by period, optionally for one employee
func (r *PaymentRepo) ListPayments(ctx context.Context, employeeID *int) ([]*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments`
	var args []any
	if employeeID != nil {
		query += ` WHERE employee_id = ?`
		args = append(args, *employeeID)
	}
	query += ` ORDER BY period_start, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payments: %w", err)
	}
	defer closeRows(rows)

	var payments []*models.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// DeletePayment removes a payment
func (r *PaymentRepo) DeletePayment(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_payment", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM payments WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete payment %d: %w", id, err)
		}
		return requireAffected(result, "payment", id)
	})
}

// WorkedHours sums the hours of the employee's shifts that start within the
// inclusive date range [from, to].
func (r *PaymentRepo) WorkedHours(ctx context.Context, employeeID int, from, to time.Time) (float64, error) {
	if err := requireExists(ctx, r.db, "employees", "employee", employeeID); err != nil {
		return 0, err
	}

	// A bare date sorts before every timestamp of that day.
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, employee_id, starts_at, ends_at FROM shifts
		WHERE employee_id = ? AND starts_at >= ? AND starts_at < ?`,
		employeeID, formatDate(from), formatDate(to.AddDate(0, 0, 1)),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to query shifts of employee %d: %w", employeeID, err)
	}
	defer closeRows(rows)

	var hours float64
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return 0, fmt.Errorf("failed to scan shift: %w", err)
		}
		hours += sh.Hours()
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}
	return roundAmount(hours), nil
}
