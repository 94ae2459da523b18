package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// UnitRepo handles measurement units
type UnitRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// CreateUnit inserts a unit; names are unique ignoring case
func (r *UnitRepo) CreateUnit(ctx context.Context, name string) (*models.Unit, error) {
	var unit *models.Unit
	err := withTx(ctx, r.db, r.metrics, "create_unit", func(tx *sql.Tx) error {
		if err := requireUnique(ctx, tx, "units", "name", "unit", name, 0); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `INSERT INTO units (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("failed to insert unit %q: %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get unit ID after insert: %w", err)
		}

		unit = &models.Unit{ID: int(id), Name: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return unit, nil
}

// GetUnit retrieves a unit by ID
func (r *UnitRepo) GetUnit(ctx context.Context, id int) (*models.Unit, error) {
	unit := &models.Unit{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM units WHERE id = ?`, id).
		Scan(&unit.ID, &unit.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("unit", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unit %d: %w", id, err)
	}
	return unit, nil
}

// ListUnits returns all units ordered by name
func (r *UnitRepo) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM units ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query units: %w", err)
	}
	defer closeRows(rows)

	var units []*models.Unit
	for rows.Next() {
		u := &models.Unit{}
		if err := rows.Scan(&u.ID, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan unit: %w", err)
		}
		units = append(units, u)
	}
	return units, rows.Err()
}

// DeleteUnit removes a unit that no inventory item uses
func (r *UnitRepo) DeleteUnit(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_unit", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "units", "unit", id); err != nil {
			return err
		}

		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM inventory WHERE unit_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to count inventory using unit %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("unit %d is used by %d inventory item(s): %w", id, n, models.ErrInUse)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM units WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete unit %d: %w", id, err)
		}
		return nil
	})
}
