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

// OrderRepo handles supply orders and their lines
type OrderRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

const orderSelect = `
	SELECT o.id, o.supplier_id, s.name, o.ordered_on, o.expected_on, o.received_on, o.status,
	       COALESCE((SELECT SUM(quantity * unit_price) FROM supply_order_items WHERE order_id = o.id), 0)
	FROM supply_orders o
	INNER JOIN suppliers s ON s.id = o.supplier_id`

func scanSupplyOrder(s scanner) (*models.SupplyOrder, error) {
	o := &models.SupplyOrder{}
	var orderedOn string
	var expectedOn, receivedOn sql.NullString
	err := s.Scan(&o.ID, &o.SupplierID, &o.SupplierName, &orderedOn, &expectedOn, &receivedOn, &o.Status, &o.Total)
	if err != nil {
		return nil, err
	}
	if o.OrderedOn, err = parseDate(orderedOn); err != nil {
		return nil, err
	}
	if o.ExpectedOn, err = nullDateToPtr(expectedOn); err != nil {
		return nil, err
	}
	if o.ReceivedOn, err = nullDateToPtr(receivedOn); err != nil {
		return nil, err
	}
	return o, nil
}

func listOrderItems(ctx context.Context, q querier, orderID int) ([]*models.SupplyOrderItem, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT oi.order_id, oi.inventory_id, i.name, oi.quantity, oi.unit_price
		FROM supply_order_items oi
		INNER JOIN inventory i ON i.id = oi.inventory_id
		WHERE oi.order_id = ?
		ORDER BY i.name`, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines of supply order %d: %w", orderID, err)
	}
	defer closeRows(rows)

	var items []*models.SupplyOrderItem
	for rows.Next() {
		it := &models.SupplyOrderItem{}
		if err := rows.Scan(&it.OrderID, &it.InventoryID, &it.InventoryName, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan supply order line: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// getSupplyOrder loads an order together with its lines
func getSupplyOrder(ctx context.Context, q querier, id int) (*models.SupplyOrder, error) {
	o, err := scanSupplyOrder(q.QueryRowContext(ctx, orderSelect+` WHERE o.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("supply order", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get supply order %d: %w", id, err)
	}
	if o.Items, err = listOrderItems(ctx, q, id); err != nil {
		return nil, err
	}
	return o, nil
}

// requirePending loads an order and fails with ErrInvalidState unless it is pending
func requirePending(ctx context.Context, q querier, id int) (*models.SupplyOrder, error) {
	o, err := getSupplyOrder(ctx, q, id)
	if err != nil {
		return nil, err
	}
	if o.Status != models.OrderStatusPending {
		return nil, fmt.Errorf("supply order %d is %s: %w", id, o.Status, models.ErrInvalidState)
	}
	return o, nil
}

func orderLineKey(orderID, inventoryID int) string {
	return fmt.Sprintf("order line (order %d, inventory %d)", orderID, inventoryID)
}

// CreateSupplyOrder opens a pending order with an existing supplier
func (r *OrderRepo) CreateSupplyOrder(ctx context.Context, in models.SupplyOrderInput) (*models.SupplyOrder, error) {
	var o *models.SupplyOrder
	err := withTx(ctx, r.db, r.metrics, "create_supply_order", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "suppliers", "supplier", in.SupplierID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `
			INSERT INTO supply_orders (supplier_id, ordered_on, expected_on, status)
			VALUES (?, ?, ?, ?)`,
			in.SupplierID, formatDate(in.OrderedOn), nullDate(in.ExpectedOn), models.OrderStatusPending,
		)
		if err != nil {
			return fmt.Errorf("failed to insert supply order: %w", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get supply order ID after insert: %w", err)
		}
		o, err = getSupplyOrder(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// GetSupplyOrder retrieves an order with its lines and total
func (r *OrderRepo) GetSupplyOrder(ctx context.Context, id int) (*models.SupplyOrder, error) {
	return getSupplyOrder(ctx, r.db, id)
}

// ListSupplyOrders returns orders newest first. An empty status lists all.
// Lines are not loaded; Total is.
func (r *OrderRepo) ListSupplyOrders(ctx context.Context, status string) ([]*models.SupplyOrder, error) {
	query := orderSelect
	var args []any
	if status != "" {
		query += ` WHERE o.status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY o.ordered_on DESC, o.id DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query supply orders: %w", err)
	}
	defer closeRows(rows)

	var orders []*models.SupplyOrder
	for rows.Next() {
		o, err := scanSupplyOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan supply order: %w", err)
		}
		orders = append(orders, o)
	}
	return orders, rows.Err()
}

// AddOrderItem adds a line to a pending order
func (r *OrderRepo) AddOrderItem(ctx context.Context, orderID, inventoryID int, quantity, unitPrice float64) (*models.SupplyOrder, error) {
	item := models.SupplyOrderItem{OrderID: orderID, InventoryID: inventoryID, Quantity: quantity, UnitPrice: unitPrice}
	var o *models.SupplyOrder
	err := withTx(ctx, r.db, r.metrics, "add_order_item", func(tx *sql.Tx) error {
		if _, err := requirePending(ctx, tx, item.OrderID); err != nil {
			return err
		}
		if err := requireExists(ctx, tx, "inventory", "inventory item", item.InventoryID); err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM supply_order_items WHERE order_id = ? AND inventory_id = ?)`,
			item.OrderID, item.InventoryID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("failed to check %s: %w", orderLineKey(item.OrderID, item.InventoryID), err)
		}
		if exists {
			return fmt.Errorf("%s: %w", orderLineKey(item.OrderID, item.InventoryID), models.ErrDuplicate)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO supply_order_items (order_id, inventory_id, quantity, unit_price)
			VALUES (?, ?, ?, ?)`,
			item.OrderID, item.InventoryID, item.Quantity, item.UnitPrice,
		); err != nil {
			return fmt.Errorf("failed to insert %s: %w", orderLineKey(item.OrderID, item.InventoryID), err)
		}

		var err error
		o, err = getSupplyOrder(ctx, tx, item.OrderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// RemoveOrderItem deletes a line from a pending order
func (r *OrderRepo) RemoveOrderItem(ctx context.Context, orderID, inventoryID int) (*models.SupplyOrder, error) {
	var o *models.SupplyOrder
	err := withTx(ctx, r.db, r.metrics, "remove_order_item", func(tx *sql.Tx) error {
		if _, err := requirePending(ctx, tx, orderID); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx,
			`DELETE FROM supply_order_items WHERE order_id = ? AND inventory_id = ?`, orderID, inventoryID)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", orderLineKey(orderID, inventoryID), err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", orderLineKey(orderID, inventoryID), models.ErrNotFound)
		}

		o, err = getSupplyOrder(ctx, tx, orderID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// ReceiveSupplyOrder marks a pending order received and books every line into
// stock. The received quantity is added to the item's amount and the line's
// unit price becomes the item's unit cost.
func (r *OrderRepo) ReceiveSupplyOrder(ctx context.Context, id int, receivedOn time.Time) (*models.SupplyOrder, error) {
	var o *models.SupplyOrder
	err := withTx(ctx, r.db, r.metrics, "receive_supply_order", func(tx *sql.Tx) error {
		pending, err := requirePending(ctx, tx, id)
		if err != nil {
			return err
		}
		if len(pending.Items) == 0 {
			return fmt.Errorf("supply order %d has no lines: %w", id, models.ErrInvalidState)
		}
		if receivedOn.Before(pending.OrderedOn) {
			return fmt.Errorf("supply order %d received %s before it was ordered %s: %w",
				id, formatDate(receivedOn), formatDate(pending.OrderedOn), validation.ErrInvalidRange)
		}

		stamp := formatTime(now())
		for _, line := range pending.Items {
			if _, err := tx.ExecContext(ctx, `
				UPDATE inventory SET amount = ROUND(amount + ?, 6), unit_cost = ?, updated_at = ?
				WHERE id = ?`,
				line.Quantity, line.UnitPrice, stamp, line.InventoryID,
			); err != nil {
				return fmt.Errorf("failed to restock inventory item %d: %w", line.InventoryID, err)
			}
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE supply_orders SET status = ?, received_on = ? WHERE id = ?`,
			models.OrderStatusReceived, formatDate(receivedOn), id,
		); err != nil {
			return fmt.Errorf("failed to mark supply order %d received: %w", id, err)
		}

		o, err = getSupplyOrder(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CancelSupplyOrder marks a pending order cancelled. Stock is untouched.
func (r *OrderRepo) CancelSupplyOrder(ctx context.Context, id int) (*models.SupplyOrder, error) {
	var o *models.SupplyOrder
	err := withTx(ctx, r.db, r.metrics, "cancel_supply_order", func(tx *sql.Tx) error {
		if _, err := requirePending(ctx, tx, id); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE supply_orders SET status = ? WHERE id = ?`, models.OrderStatusCancelled, id,
		); err != nil {
			return fmt.Errorf("failed to cancel supply order %d: %w", id, err)
		}
		var err error
		o, err = getSupplyOrder(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// DeleteSupplyOrder removes a pending or cancelled order and its lines.
// Received orders are part of the cost history and cannot be deleted.
func (r *OrderRepo) DeleteSupplyOrder(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_supply_order", func(tx *sql.Tx) error {
		var status string
		err := tx.QueryRowContext(ctx, `SELECT status FROM supply_orders WHERE id = ?`, id).Scan(&status)
		if errors.Is(err, sql.ErrNoRows) {
			return notFound("supply order", id)
		}
		if err != nil {
			return fmt.Errorf("failed to get supply order %d: %w", id, err)
		}
		if status == models.OrderStatusReceived {
			return fmt.Errorf("supply order %d is received: %w", id, models.ErrInvalidState)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM supply_orders WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete supply order %d: %w", id, err)
		}
		return nil
	})
}
