package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// InventoryRepo handles stocked items
type InventoryRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

const inventorySelect = `
	SELECT i.id, i.name, i.unit_id, u.name, i.amount, i.min_amount, i.unit_cost, i.supplier_id, i.updated_at
	FROM inventory i
	INNER JOIN units u ON u.id = i.unit_id`

func scanInventoryItem(s scanner) (*models.InventoryItem, error) {
	item := &models.InventoryItem{}
	var supplierID sql.NullInt64
	var updatedAt string
	err := s.Scan(&item.ID, &item.Name, &item.UnitID, &item.UnitName,
		&item.Amount, &item.MinAmount, &item.UnitCost, &supplierID, &updatedAt)
	if err != nil {
		return nil, err
	}
	item.SupplierID = nullInt64ToPtr(supplierID)
	if item.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	return item, nil
}

func getInventoryItem(ctx context.Context, q querier, id int) (*models.InventoryItem, error) {
	item, err := scanInventoryItem(q.QueryRowContext(ctx, inventorySelect+` WHERE i.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("inventory item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get inventory item %d: %w", id, err)
	}
	return item, nil
}

func listInventory(ctx context.Context, q querier, where string, args ...any) ([]*models.InventoryItem, error) {
	rows, err := q.QueryContext(ctx, inventorySelect+" "+where+" ORDER BY i.name", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer closeRows(rows)

	var items []*models.InventoryItem
	for rows.Next() {
		item, err := scanInventoryItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// checkInventoryRefs validates the foreign keys of an inventory row
func checkInventoryRefs(ctx context.Context, q querier, in models.InventoryInput) error {
	if err := requireExists(ctx, q, "units", "unit", in.UnitID); err != nil {
		return err
	}
	if in.SupplierID != nil {
		if err := requireExists(ctx, q, "suppliers", "supplier", *in.SupplierID); err != nil {
			return err
		}
	}
	return nil
}

// CreateInventoryItem inserts a stocked item after validating its unit and supplier
func (r *InventoryRepo) CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := withTx(ctx, r.db, r.metrics, "create_inventory_item", func(tx *sql.Tx) error {
		if err := checkInventoryRefs(ctx, tx, in); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "inventory", "name", "inventory item", in.Name, 0); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx, `
			INSERT INTO inventory (name, unit_id, amount, min_amount, unit_cost, supplier_id, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			in.Name, in.UnitID, in.Amount, in.MinAmount, in.UnitCost, nullInt(in.SupplierID), formatTime(now()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert inventory item %q: %w", in.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get inventory ID after insert: %w", err)
		}

		item, err = getInventoryItem(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetInventoryItem retrieves an item by ID
func (r *InventoryRepo) GetInventoryItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	return getInventoryItem(ctx, r.db, id)
}

// ListInventoryItems returns every item ordered by name
func (r *InventoryRepo) ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error) {
	return listInventory(ctx, r.db, "")
}

// ListLowStock returns items whose amount is below their reorder level
func (r *InventoryRepo) ListLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	return listInventory(ctx, r.db, "WHERE i.amount < i.min_amount")
}

// UpdateInventoryItem overwrites every writable field of an item
func (r *InventoryRepo) UpdateInventoryItem(ctx context.Context, id int, in models.InventoryInput) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := withTx(ctx, r.db, r.metrics, "update_inventory_item", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "inventory", "inventory item", id); err != nil {
			return err
		}
		if err := checkInventoryRefs(ctx, tx, in); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "inventory", "name", "inventory item", in.Name, id); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx, `
			UPDATE inventory
			SET name = ?, unit_id = ?, amount = ?, min_amount = ?, unit_cost = ?, supplier_id = ?, updated_at = ?
			WHERE id = ?`,
			in.Name, in.UnitID, in.Amount, in.MinAmount, in.UnitCost, nullInt(in.SupplierID), formatTime(now()), id,
		)
		if err != nil {
			return fmt.Errorf("failed to update inventory item %d: %w", id, err)
		}

		item, err = getInventoryItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AdjustStock adds delta (negative to consume) to an item's amount.
// The resulting amount may not drop below zero.
func (r *InventoryRepo) AdjustStock(ctx context.Context, id int, delta float64) (*models.InventoryItem, error) {
	var item *models.InventoryItem
	err := withTx(ctx, r.db, r.metrics, "adjust_stock", func(tx *sql.Tx) error {
		current, err := getInventoryItem(ctx, tx, id)
		if err != nil {
			return err
		}

		amount := roundAmount(current.Amount + delta)
		if amount < 0 {
			return fmt.Errorf("inventory item %d has %g %s, cannot remove %g: %w",
				id, current.Amount, current.UnitName, -delta, models.ErrInsufficientStock)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE inventory SET amount = ?, updated_at = ? WHERE id = ?`,
			amount, formatTime(now()), id,
		); err != nil {
			return fmt.Errorf("failed to adjust stock of inventory item %d: %w", id, err)
		}

		item, err = getInventoryItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteInventoryItem removes an item that no recipe or supply order references
func (r *InventoryRepo) DeleteInventoryItem(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_inventory_item", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "inventory", "inventory item", id); err != nil {
			return err
		}

		n, err := countRows(ctx, tx, `
			SELECT (SELECT COUNT(*) FROM recipes WHERE inventory_id = ?)
			     + (SELECT COUNT(*) FROM supply_order_items WHERE inventory_id = ?)`, id, id)
		if err != nil {
			return fmt.Errorf("failed to count references to inventory item %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("inventory item %d is referenced by %d recipe or order line(s): %w",
				id, n, models.ErrInUse)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM inventory WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete inventory item %d: %w", id, err)
		}
		return nil
	})
}

// roundAmount trims float noise from repeated stock adjustments
func roundAmount(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
