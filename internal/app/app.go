// Package app wires the database, metrics and business services together.
package app

import (
	"database/sql"
	"log/slog"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/services/costs"
	"github.com/thenoetrevino/cafe/internal/services/inventory"
	"github.com/thenoetrevino/cafe/internal/services/menu"
	"github.com/thenoetrevino/cafe/internal/services/staff"
	"github.com/thenoetrevino/cafe/internal/services/supplier"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	db      *sql.DB
	repo    *database.Repository
	metrics *metrics.Metrics
	logger  *slog.Logger

	// Service layer (business logic)
	InventoryService inventory.Service
	MenuService      menu.Service
	SupplierService  supplier.Service
	StaffService     staff.Service
	CostService      costs.Service
}

// New creates a new App over an open, migrated database. The App owns db
// and closes it in Close.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{
		logger:   slog.Default(),
		maxShift: staff.DefaultMaxShift,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.metrics == nil {
		cfg.metrics = metrics.New()
	}

	repo := database.NewRepository(db, cfg.metrics)
	return &App{
		db:               db,
		repo:             repo,
		metrics:          cfg.metrics,
		logger:           cfg.logger,
		InventoryService: inventory.NewService(repo),
		MenuService:      menu.NewService(repo),
		SupplierService:  supplier.NewService(repo, repo),
		StaffService:     staff.NewService(repo, staff.WithMaxShiftDuration(cfg.maxShift)),
		CostService:      costs.NewService(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Metrics returns the transaction metrics collected by this App
func (a *App) Metrics() *metrics.Metrics {
	return a.metrics
}

// Close logs the transaction counts of this run and closes the database.
func (a *App) Close() error {
	snap, err := a.metrics.Snapshot()
	if err != nil {
		a.logger.Warn("failed to gather metrics", "error", err)
	}
	for _, c := range snap {
		a.logger.Debug("db transactions", "op", c.Op, "committed", c.Committed, "rolled_back", c.RolledBack)
	}
	return a.db.Close()
}
