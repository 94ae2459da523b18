package database

import (
	"database/sql"

	"github.com/thenoetrevino/cafe/internal/metrics"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UnitRepo
	*SupplierRepo
	*InventoryRepo
	*MenuRepo
	*OrderRepo
	*StaffRepo
	*ShiftRepo
	*PaymentRepo
	*ExpenseRepo
	*CostRepo
}

// NewRepository creates a new Repository instance wrapping the given database
// connection. m may be nil, in which case transactions are not measured.
func NewRepository(db *sql.DB, m *metrics.Metrics) *Repository {
	return &Repository{
		UnitRepo:      &UnitRepo{db: db, metrics: m},
		SupplierRepo:  &SupplierRepo{db: db, metrics: m},
		InventoryRepo: &InventoryRepo{db: db, metrics: m},
		MenuRepo:      &MenuRepo{db: db, metrics: m},
		OrderRepo:     &OrderRepo{db: db, metrics: m},
		StaffRepo:     &StaffRepo{db: db, metrics: m},
		ShiftRepo:     &ShiftRepo{db: db, metrics: m},
		PaymentRepo:   &PaymentRepo{db: db, metrics: m},
		ExpenseRepo:   &ExpenseRepo{db: db, metrics: m},
		CostRepo:      &CostRepo{db: db, metrics: m},
	}
}
