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

// ExpenseRepo handles overhead expenses
type ExpenseRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

func scanExpense(s scanner) (*models.Expense, error) {
	e := &models.Expense{}
	var incurredOn string
	if err := s.Scan(&e.ID, &e.Category, &e.Description, &e.Amount, &incurredOn); err != nil {
		return nil, err
	}
	var err error
	if e.IncurredOn, err = parseDate(incurredOn); err != nil {
		return nil, err
	}
	return e, nil
}

func getExpense(ctx context.Context, q querier, id int) (*models.Expense, error) {
	e, err := scanExpense(q.QueryRowContext(ctx,
		`SELECT id, category, description, amount, incurred_on FROM expenses WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("expense", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense %d: %w", id, err)
	}
	return e, nil
}

// CreateExpense records an expense
func (r *ExpenseRepo) CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	var e *models.Expense
	err := withTx(ctx, r.db, r.metrics, "create_expense", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `
			INSERT INTO expenses (category, description, amount, incurred_on)
			VALUES (?, ?, ?, ?)`,
			in.Category, in.Description, in.Amount, formatDate(in.IncurredOn),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get expense ID after insert: %w", err)
		}
		e, err = getExpense(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return e, nil
}

// GetExpense retrieves an expense by ID
func (r *ExpenseRepo) GetExpense(ctx context.Context, id int) (*models.Expense, error) {
	return getExpense(ctx, r.db, id)
}

// ListExpenses returns expenses incurred in the inclusive range [from, to].
// A zero bound leaves that side open.
func (r *ExpenseRepo) ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	query := `SELECT id, category, description, amount, incurred_on FROM expenses WHERE 1 = 1`
	var args []any
	if !from.IsZero() {
		query += ` AND incurred_on >= ?`
		args = append(args, formatDate(from))
	}
	if !to.IsZero() {
		query += ` AND incurred_on <= ?`
		args = append(args, formatDate(to))
	}
	query += ` ORDER BY incurred_on, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer closeRows(rows)

	var expenses []*models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// DeleteExpense removes an expense
func (r *ExpenseRepo) DeleteExpense(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_expense", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete expense %d: %w", id, err)
		}
		return requireAffected(result, "expense", id)
	})
}
