package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// ShiftRepo handles work shifts. A shift covers [starts_at, ends_at) and may
// not overlap another shift of the same employee.
type ShiftRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

func scanShift(s scanner) (*models.Shift, error) {
	sh := &models.Shift{}
	var startsAt, endsAt string
	if err := s.Scan(&sh.ID, &sh.EmployeeID, &startsAt, &endsAt); err != nil {
		return nil, err
	}
	var err error
	if sh.StartsAt, err = parseTime(startsAt); err != nil {
		return nil, err
	}
	if sh.EndsAt, err = parseTime(endsAt); err != nil {
		return nil, err
	}
	return sh, nil
}

func getShift(ctx context.Context, q querier, id int) (*models.Shift, error) {
	sh, err := scanShift(q.QueryRowContext(ctx,
		`SELECT id, employee_id, starts_at, ends_at FROM shifts WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("shift", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift %d: %w", id, err)
	}
	return sh, nil
}

// checkShift validates a shift against the employee's hire date and existing
// shifts. excludeID is the shift being updated, 0 on create.
func checkShift(ctx context.Context, q querier, employeeID int, start, end time.Time, excludeID int) error {
	emp, err := getEmployee(ctx, q, employeeID)
	if err != nil {
		return err
	}
	if formatDate(start.UTC()) < formatDate(emp.HiredOn) {
		return fmt.Errorf("shift starts %s before employee %d was hired on %s: %w",
			formatTime(start), employeeID, formatDate(emp.HiredOn), validation.ErrInvalidRange)
	}

	var clash int
	err = q.QueryRowContext(ctx, `
		SELECT id FROM shifts
		WHERE employee_id = ? AND id != ? AND starts_at < ? AND ? < ends_at
		ORDER BY starts_at LIMIT 1`,
		employeeID, excludeID, formatTime(end), formatTime(start),
	).Scan(&clash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to check shift overlap for employee %d: %w", employeeID, err)
	}
	return fmt.Errorf("shift %s to %s overlaps shift %d of employee %d: %w",
		formatTime(start), formatTime(end), clash, employeeID, models.ErrOverlap)
}

// CreateShift records a shift for an existing employee
func (r *ShiftRepo) CreateShift(ctx context.Context, employeeID int, start, end time.Time) (*models.Shift, error) {
	var sh *models.Shift
	err := withTx(ctx, r.db, r.metrics, "create_shift", func(tx *sql.Tx) error {
		if err := checkShift(ctx, tx, employeeID, start, end, 0); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`INSERT INTO shifts (employee_id, starts_at, ends_at) VALUES (?, ?, ?)`,
			employeeID, formatTime(start), formatTime(end),
		)
		if err != nil {
			return fmt.Errorf("failed to insert shift: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get shift ID after insert: %w", err)
		}
		sh, err = getShift(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// GetShift retrieves a shift by ID
func (r *ShiftRepo) GetShift(ctx context.Context, id int) (*models.Shift, error) {
	return getShift(ctx, r.db, id)
}

// ListShifts returns shifts starting in [from, to), oldest first.
// A nil employeeID lists every employee; a zero from or to leaves that side open.
func (r *ShiftRepo) ListShifts(ctx context.Context, employeeID *int, from, to time.Time) ([]*models.Shift, error) {
	query := `SELECT id, employee_id, starts_at, ends_at FROM shifts WHERE 1 = 1`
	var args []any
	if employeeID != nil {
		query += ` AND employee_id = ?`
		args = append(args, *employeeID)
	}
	if !from.IsZero() {
		query += ` AND starts_at >= ?`
		args = append(args, formatTime(from))
	}
	if !to.IsZero() {
		query += ` AND starts_at < ?`
		args = append(args, formatTime(to))
	}
	query += ` ORDER BY starts_at, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query shifts: %w", err)
	}
	defer closeRows(rows)

	var shifts []*models.Shift
	for rows.Next() {
		sh, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, sh)
	}
	return shifts, rows.Err()
}

// UpdateShift moves a shift, re-checking overlap against the employee's other shifts
func (r *ShiftRepo) UpdateShift(ctx context.Context, id int, start, end time.Time) (*models.Shift, error) {
	var sh *models.Shift
	err := withTx(ctx, r.db, r.metrics, "update_shift", func(tx *sql.Tx) error {
		current, err := getShift(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := checkShift(ctx, tx, current.EmployeeID, start, end, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE shifts SET starts_at = ?, ends_at = ? WHERE id = ?`,
			formatTime(start), formatTime(end), id,
		); err != nil {
			return fmt.Errorf("failed to update shift %d: %w", id, err)
		}
		sh, err = getShift(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sh, nil
}

// DeleteShift removes a shift
func (r *ShiftRepo) DeleteShift(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_shift", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM shifts WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete shift %d: %w", id, err)
		}
		return requireAffected(result, "shift", id)
	})
}
