package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// SupplierRepo handles supplier records
type SupplierRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

const supplierColumns = `id, name, phone, email, address, created_at`

func scanSupplier(s scanner) (*models.Supplier, error) {
	sup := &models.Supplier{}
	var createdAt string
	if err := s.Scan(&sup.ID, &sup.Name, &sup.Phone, &sup.Email, &sup.Address, &createdAt); err != nil {
		return nil, err
	}
	t, err := parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	sup.CreatedAt = t
	return sup, nil
}

func getSupplier(ctx context.Context, q querier, id int) (*models.Supplier, error) {
	sup, err := scanSupplier(q.QueryRowContext(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("supplier", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supplier %d: %w", id, err)
	}
	return sup, nil
}

// CreateSupplier inserts a supplier; names are unique ignoring case
func (r *SupplierRepo) CreateSupplier(ctx context.Context, in models.SupplierInput) (*models.Supplier, error) {
	var sup *models.Supplier
	err := withTx(ctx, r.db, r.metrics, "create_supplier", func(tx *sql.Tx) error {
		if err := requireUnique(ctx, tx, "suppliers", "name", "supplier", in.Name, 0); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO suppliers (name, phone, email, address, created_at) VALUES (?, ?, ?, ?, ?)`,
			in.Name, in.Phone, in.Email, in.Address, formatTime(now()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert supplier %q: %w", in.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get supplier ID after insert: %w", err)
		}

		sup, err = getSupplier(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// GetSupplier retrieves a supplier by ID
func (r *SupplierRepo) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	return getSupplier(ctx, r.db, id)
}

// ListSuppliers returns all suppliers ordered by name
func (r *SupplierRepo) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+supplierColumns+` FROM suppliers ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query suppliers: %w", err)
	}
	defer closeRows(rows)

	var suppliers []*models.Supplier
	for rows.Next() {
		sup, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, rows.Err()
}

// UpdateSupplier overwrites every writable field of a supplier
func (r *SupplierRepo) UpdateSupplier(ctx context.Context, id int, in models.SupplierInput) (*models.Supplier, error) {
	var sup *models.Supplier
	err := withTx(ctx, r.db, r.metrics, "update_supplier", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "suppliers", "supplier", id); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "suppliers", "name", "supplier", in.Name, id); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE suppliers SET name = ?, phone = ?, email = ?, address = ? WHERE id = ?`,
			in.Name, in.Phone, in.Email, in.Address, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update supplier %d: %w", id, err)
		}

		sup, err = getSupplier(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return sup, nil
}

// DeleteSupplier removes a supplier with no supply orders.
// Inventory items that named it as their supplier are unlinked.
func (r *SupplierRepo) DeleteSupplier(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_supplier", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "suppliers", "supplier", id); err != nil {
			return err
		}

		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM supply_orders WHERE supplier_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to count orders for supplier %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("supplier %d has %d supply order(s): %w", id, n, models.ErrInUse)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM suppliers WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete supplier %d: %w", id, err)
		}
		return nil
	})
}
