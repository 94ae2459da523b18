package database

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// Date strings compare lexically, so these bracket every stored date.
const (
	openStart = "0000-01-01"
	openEnd   = "9999-12-31"
)

// CostRepo answers read-only cost questions across entities
type CostRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// MenuItemCost prices a menu item's recipe at current inventory unit costs
func (r *CostRepo) MenuItemCost(ctx context.Context, menuID int) (*models.MenuItemCost, error) {
	var c *models.MenuItemCost
	err := withTx(ctx, r.db, r.metrics, "menu_item_cost", func(tx *sql.Tx) error {
		item, err := getMenuItem(ctx, tx, menuID)
		if err != nil {
			return err
		}
		lines, err := listRecipe(ctx, tx, menuID)
		if err != nil {
			return err
		}
		c = buildMenuItemCost(item, lines)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func buildMenuItemCost(item *models.MenuItem, lines []*models.RecipeItem) *models.MenuItemCost {
	var cost float64
	for _, l := range lines {
		cost += l.Cost()
	}
	cost = roundCents(cost)

	c := &models.MenuItemCost{
		Item:           item,
		Lines:          lines,
		IngredientCost: cost,
		Margin:         roundCents(item.Price - cost),
	}
	if item.Price > 0 {
		c.MarginPercent = math.Round((item.Price-cost)/item.Price*10000) / 100
	}
	return c
}

// PeriodCosts sums received supply orders, payroll and expenses dated in the
// inclusive range [from, to]. A zero bound leaves that side open. All three
// sums read one snapshot.
func (r *CostRepo) PeriodCosts(ctx context.Context, from, to time.Time) (*models.PeriodCosts, error) {
	start, end := openStart, openEnd
	if !from.IsZero() {
		start = formatDate(from)
	}
	if !to.IsZero() {
		end = formatDate(to)
	}
	pc := &models.PeriodCosts{From: from, To: to}

	err := withTx(ctx, r.db, r.metrics, "period_costs", func(tx *sql.Tx) error {
		sums := []struct {
			name  string
			dest  *float64
			query string
			args  []any
		}{
			{"supplies", &pc.Supplies, `
				SELECT COALESCE(SUM(oi.quantity * oi.unit_price), 0)
				FROM supply_order_items oi
				INNER JOIN supply_orders o ON o.id = oi.order_id
				WHERE o.status = ? AND o.received_on BETWEEN ? AND ?`,
				[]any{models.OrderStatusReceived, start, end}},
			{"payroll", &pc.Payroll,
				`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE paid_on BETWEEN ? AND ?`,
				[]any{start, end}},
			{"expenses", &pc.Expenses,
				`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE incurred_on BETWEEN ? AND ?`,
				[]any{start, end}},
		}
		for _, s := range sums {
			if err := tx.QueryRowContext(ctx, s.query, s.args...).Scan(s.dest); err != nil {
				return fmt.Errorf("failed to sum %s for %s..%s: %w", s.name, start, end, err)
			}
			*s.dest = roundCents(*s.dest)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	pc.Total = roundCents(pc.Supplies + pc.Payroll + pc.Expenses)
	return pc, nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
