package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// querier is satisfied by both *sql.DB and *sql.Tx, so read helpers can run
// inside or outside a transaction.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanner is satisfied by *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success,
// and records the outcome under op.
func withTx(ctx context.Context, db *sql.DB, m *metrics.Metrics, op string, fn func(*sql.Tx) error) (err error) {
	start := time.Now()
	defer func() { m.ObserveTx(op, start, err) }()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", op, err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "op", op, "error", rbErr)
		}
	}()

	if err = fn(tx); err != nil {
		slog.Debug("transaction rolled back", "op", op, "error", err)
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction for %s: %w", op, err)
	}

	return nil
}

// closeRows closes a result set, logging instead of returning the error
func closeRows(rows *sql.Rows) {
	if err := rows.Close(); err != nil {
		slog.Error("failed to close rows", "error", err)
	}
}

// notFound wraps models.ErrNotFound with the entity and id
func notFound(entity string, id int) error {
	return fmt.Errorf("%s %d: %w", entity, id, models.ErrNotFound)
}

// requireExists returns ErrNotFound unless table has a row with the given id
func requireExists(ctx context.Context, q querier, table, entity string, id int) error {
	var exists bool
	query := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", table)
	if err := q.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("failed to look up %s %d: %w", entity, id, err)
	}
	if !exists {
		return notFound(entity, id)
	}
	return nil
}

// requireUnique returns ErrDuplicate if another row (id != excludeID) already
// holds value in column, compared case-insensitively.
func requireUnique(ctx context.Context, q querier, table, column, entity, value string, excludeID int) error {
	var taken bool
	query := fmt.Sprintf(
		"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = ? COLLATE NOCASE AND id != ?)", table, column)
	if err := q.QueryRowContext(ctx, query, value, excludeID).Scan(&taken); err != nil {
		return fmt.Errorf("failed to check %s %s: %w", entity, column, err)
	}
	if taken {
		return fmt.Errorf("%s with %s %q: %w", entity, column, value, models.ErrDuplicate)
	}
	return nil
}

// countRows runs a COUNT(*) query
func countRows(ctx context.Context, q querier, query string, args ...any) (int, error) {
	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// requireAffected turns a zero-row UPDATE/DELETE into ErrNotFound
func requireAffected(res sql.Result, entity string, id int) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows for %s %d: %w", entity, id, err)
	}
	if n == 0 {
		return notFound(entity, id)
	}
	return nil
}

// ============================================================================
// Date and time encoding
// ============================================================================

// formatDate encodes a calendar date as YYYY-MM-DD
func formatDate(t time.Time) string {
	return t.Format(models.DateLayout)
}

// formatTime encodes an instant as RFC3339 UTC with second precision.
// Lexical order of the encoded strings equals chronological order.
func formatTime(t time.Time) string {
	return t.UTC().Format(models.TimeLayout)
}

func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt date %q: %w", s, err)
	}
	return t, nil
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(models.TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("corrupt timestamp %q: %w", s, err)
	}
	return t, nil
}

// nullDate encodes an optional date
func nullDate(t *time.Time) sql.NullString {
	if t == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: formatDate(*t), Valid: true}
}

// nullDateToPtr decodes an optional date
func nullDateToPtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid || ns.String == "" {
		return nil, nil
	}
	t, err := parseDate(ns.String)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullInt encodes an optional foreign key
func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

// nullInt64ToPtr converts sql.NullInt64 to *int.
// Returns nil if the value is not valid.
func nullInt64ToPtr(nv sql.NullInt64) *int {
	if nv.Valid {
		val := int(nv.Int64)
		return &val
	}
	return nil
}

// now is replaceable in tests
var now = func() time.Time { return time.Now().UTC() }
