package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// migration is one forward-only schema step. The applied version is kept in
// PRAGMA user_version.
type migration struct {
	version int
	name    string
	sql     string
}

var migrations = []migration{
	{version: 1, name: "initial_schema", sql: schemaV1},
	{version: 2, name: "seed_lookups", sql: seedV2},
}

const schemaV1 = `
CREATE TABLE IF NOT EXISTS units (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS suppliers (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	address TEXT NOT NULL DEFAULT '',
	created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS inventory (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	unit_id INTEGER NOT NULL,
	amount REAL NOT NULL DEFAULT 0 CHECK(amount >= 0),
	min_amount REAL NOT NULL DEFAULT 0 CHECK(min_amount >= 0),
	unit_cost REAL NOT NULL DEFAULT 0 CHECK(unit_cost >= 0),
	supplier_id INTEGER,
	updated_at TEXT NOT NULL,
	FOREIGN KEY (unit_id) REFERENCES units(id) ON DELETE RESTRICT,
	FOREIGN KEY (supplier_id) REFERENCES suppliers(id) ON DELETE SET NULL
);

CREATE TABLE IF NOT EXISTS menu_categories (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE
);

CREATE TABLE IF NOT EXISTS menu (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	category_id INTEGER NOT NULL,
	price REAL NOT NULL CHECK(price >= 0),
	available INTEGER NOT NULL DEFAULT 1,
	FOREIGN KEY (category_id) REFERENCES menu_categories(id) ON DELETE RESTRICT
);

-- Recipe lines: composite key (menu_id, inventory_id)
CREATE TABLE IF NOT EXISTS recipes (
	menu_id INTEGER NOT NULL,
	inventory_id INTEGER NOT NULL,
	amount REAL NOT NULL CHECK(amount > 0),
	PRIMARY KEY (menu_id, inventory_id),
	FOREIGN KEY (menu_id) REFERENCES menu(id) ON DELETE CASCADE,
	FOREIGN KEY (inventory_id) REFERENCES inventory(id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS supply_orders (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	supplier_id INTEGER NOT NULL,
	ordered_on TEXT NOT NULL,
	expected_on TEXT,
	received_on TEXT,
	status TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'received', 'cancelled')),
	FOREIGN KEY (supplier_id) REFERENCES suppliers(id) ON DELETE RESTRICT
);

-- Order lines: composite key (order_id, inventory_id)
CREATE TABLE IF NOT EXISTS supply_order_items (
	order_id INTEGER NOT NULL,
	inventory_id INTEGER NOT NULL,
	quantity REAL NOT NULL CHECK(quantity > 0),
	unit_price REAL NOT NULL CHECK(unit_price >= 0),
	PRIMARY KEY (order_id, inventory_id),
	FOREIGN KEY (order_id) REFERENCES supply_orders(id) ON DELETE CASCADE,
	FOREIGN KEY (inventory_id) REFERENCES inventory(id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS positions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	hourly_rate REAL NOT NULL CHECK(hourly_rate >= 0)
);

CREATE TABLE IF NOT EXISTS employees (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	first_name TEXT NOT NULL,
	last_name TEXT NOT NULL,
	position_id INTEGER NOT NULL,
	phone TEXT NOT NULL DEFAULT '',
	email TEXT NOT NULL DEFAULT '',
	hired_on TEXT NOT NULL,
	FOREIGN KEY (position_id) REFERENCES positions(id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS shifts (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id INTEGER NOT NULL,
	starts_at TEXT NOT NULL,
	ends_at TEXT NOT NULL,
	CHECK(starts_at < ends_at),
	FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS payments (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	employee_id INTEGER NOT NULL,
	period_start TEXT NOT NULL,
	period_end TEXT NOT NULL,
	amount REAL NOT NULL CHECK(amount >= 0),
	paid_on TEXT NOT NULL,
	CHECK(period_start <= period_end),
	FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE RESTRICT
);

CREATE TABLE IF NOT EXISTS expenses (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	category TEXT NOT NULL CHECK(category IN ('rent', 'utilities', 'equipment', 'maintenance', 'marketing', 'other')),
	description TEXT NOT NULL DEFAULT '',
	amount REAL NOT NULL CHECK(amount >= 0),
	incurred_on TEXT NOT NULL
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_employees_email ON employees(email) WHERE email != '';
CREATE INDEX IF NOT EXISTS idx_inventory_unit ON inventory(unit_id);
CREATE INDEX IF NOT EXISTS idx_inventory_supplier ON inventory(supplier_id);
CREATE INDEX IF NOT EXISTS idx_menu_category ON menu(category_id);
CREATE INDEX IF NOT EXISTS idx_recipes_inventory ON recipes(inventory_id);
CREATE INDEX IF NOT EXISTS idx_supply_orders_supplier ON supply_orders(supplier_id);
CREATE INDEX IF NOT EXISTS idx_supply_orders_received ON supply_orders(received_on);
CREATE INDEX IF NOT EXISTS idx_supply_order_items_inventory ON supply_order_items(inventory_id);
CREATE INDEX IF NOT EXISTS idx_employees_position ON employees(position_id);
CREATE INDEX IF NOT EXISTS idx_shifts_employee_start ON shifts(employee_id, starts_at);
CREATE INDEX IF NOT EXISTS idx_payments_employee_period ON payments(employee_id, period_start);
CREATE INDEX IF NOT EXISTS idx_payments_paid_on ON payments(paid_on);
CREATE INDEX IF NOT EXISTS idx_expenses_incurred_on ON expenses(incurred_on);
`

const seedV2 = `
INSERT OR IGNORE INTO units (name) VALUES ('g'), ('kg'), ('ml'), ('l'), ('pcs');
INSERT OR IGNORE INTO menu_categories (name) VALUES ('Coffee'), ('Tea'), ('Pastry');
`

// Migrate applies every migration newer than the database's user_version
func Migrate(ctx context.Context, db *sql.DB) error {
	var current int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		slog.Info("applied migration", "version", m.version, "name", m.name)
	}

	return nil
}

// SchemaVersion returns the applied migration version
func SchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var v int
	err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	return withTx(ctx, db, nil, "migrate", func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, m.sql); err != nil {
			return fmt.Errorf("migration %d (%s) failed: %w", m.version, m.name, err)
		}
		// PRAGMA does not accept bound parameters
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", m.version)); err != nil {
			return fmt.Errorf("failed to record schema version %d: %w", m.version, err)
		}
		return nil
	})
}
