package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database with the production migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := InitDB(context.Background(), MemoryPath)
	require.NoError(t, err, "failed to create test database")
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// setupTestRepo returns a repository over a fresh database plus its metrics
func setupTestRepo(t *testing.T) (*Repository, *metrics.Metrics) {
	t.Helper()
	m := metrics.New()
	return NewRepository(setupTestDB(t), m), m
}

// ============================================================================
// FIXTURES
// ============================================================================

func date(s string) time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func instant(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

// unitID returns the id of a seeded unit
func unitID(t *testing.T, repo *Repository, name string) int {
	t.Helper()
	units, err := repo.ListUnits(context.Background())
	require.NoError(t, err)
	for _, u := range units {
		if u.Name == name {
			return u.ID
		}
	}
	t.Fatalf("unit %q not seeded", name)
	return 0
}

// categoryID returns the id of a seeded menu category
func categoryID(t *testing.T, repo *Repository, name string) int {
	t.Helper()
	cats, err := repo.ListMenuCategories(context.Background())
	require.NoError(t, err)
	for _, c := range cats {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("menu category %q not seeded", name)
	return 0
}

func createSupplier(t *testing.T, repo *Repository, name string) *models.Supplier {
	t.Helper()
	s, err := repo.CreateSupplier(context.Background(), models.SupplierInput{Name: name})
	require.NoError(t, err)
	return s
}

func createItem(t *testing.T, repo *Repository, name string, amount, unitCost float64) *models.InventoryItem {
	t.Helper()
	item, err := repo.CreateInventoryItem(context.Background(), models.InventoryInput{
		Name:     name,
		UnitID:   unitID(t, repo, "g"),
		Amount:   amount,
		UnitCost: unitCost,
	})
	require.NoError(t, err)
	return item
}

func createMenuItem(t *testing.T, repo *Repository, name string, price float64) *models.MenuItem {
	t.Helper()
	item, err := repo.CreateMenuItem(context.Background(), models.MenuItemInput{
		Name:       name,
		CategoryID: categoryID(t, repo, "Coffee"),
		Price:      price,
		Available:  true,
	})
	require.NoError(t, err)
	return item
}

func createEmployee(t *testing.T, repo *Repository, first, email string) *models.Employee {
	t.Helper()
	ctx := context.Background()
	positions, err := repo.ListPositions(ctx)
	require.NoError(t, err)

	var positionID int
	if len(positions) == 0 {
		p, err := repo.CreatePosition(ctx, "Barista", 15)
		require.NoError(t, err)
		positionID = p.ID
	} else {
		positionID = positions[0].ID
	}

	e, err := repo.CreateEmployee(ctx, models.EmployeeInput{
		FirstName:  first,
		LastName:   "Tester",
		PositionID: positionID,
		Email:      email,
		HiredOn:    date("2024-01-01"),
	})
	require.NoError(t, err)
	return e
}
