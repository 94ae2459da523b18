package testutil

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
)

// SetupTestDB creates an in-memory database with the production schema and seeds
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.InitDB(context.Background(), database.MemoryPath)
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SetupTestRepo returns a repository over a fresh in-memory database
func SetupTestRepo(t *testing.T) *database.Repository {
	t.Helper()
	return database.NewRepository(SetupTestDB(t), nil)
}

// Date parses YYYY-MM-DD or fails the test
func Date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

// Instant parses an RFC3339 timestamp or fails the test
func Instant(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", s, err)
	}
	return ts.UTC()
}

// UnitID returns the ID of a seeded unit (g, kg, ml, l, pcs)
func UnitID(t *testing.T, repo *database.Repository, name string) int {
	t.Helper()
	units, err := repo.ListUnits(context.Background())
	if err != nil {
		t.Fatalf("Failed to list units: %v", err)
	}
	for _, u := range units {
		if u.Name == name {
			return u.ID
		}
	}
	t.Fatalf("unit %q is not seeded", name)
	return 0
}

// CategoryID returns the ID of a seeded menu category (Coffee, Tea, Pastry)
func CategoryID(t *testing.T, repo *database.Repository, name string) int {
	t.Helper()
	cats, err := repo.ListMenuCategories(context.Background())
	if err != nil {
		t.Fatalf("Failed to list menu categories: %v", err)
	}
	for _, c := range cats {
		if c.Name == name {
			return c.ID
		}
	}
	t.Fatalf("menu category %q is not seeded", name)
	return 0
}

// CreateTestSupplier creates a supplier and returns its ID
func CreateTestSupplier(t *testing.T, repo *database.Repository, name string) int {
	t.Helper()
	s, err := repo.CreateSupplier(context.Background(), models.SupplierInput{Name: name})
	if err != nil {
		t.Fatalf("Failed to create test supplier: %v", err)
	}
	return s.ID
}

// CreateTestItem creates an inventory item measured in grams and returns its ID
func CreateTestItem(t *testing.T, repo *database.Repository, name string, amount, unitCost float64) int {
	t.Helper()
	item, err := repo.CreateInventoryItem(context.Background(), models.InventoryInput{
		Name:     name,
		UnitID:   UnitID(t, repo, "g"),
		Amount:   amount,
		UnitCost: unitCost,
	})
	if err != nil {
		t.Fatalf("Failed to create test inventory item: %v", err)
	}
	return item.ID
}

// CreateTestMenuItem creates an available Coffee menu item and returns its ID
func CreateTestMenuItem(t *testing.T, repo *database.Repository, name string, price float64) int {
	t.Helper()
	item, err := repo.CreateMenuItem(context.Background(), models.MenuItemInput{
		Name:       name,
		CategoryID: CategoryID(t, repo, "Coffee"),
		Price:      price,
		Available:  true,
	})
	if err != nil {
		t.Fatalf("Failed to create test menu item: %v", err)
	}
	return item.ID
}

// CreateTestPosition creates a position and returns its ID
func CreateTestPosition(t *testing.T, repo *database.Repository, name string, rate float64) int {
	t.Helper()
	p, err := repo.CreatePosition(context.Background(), name, rate)
	if err != nil {
		t.Fatalf("Failed to create test position: %v", err)
	}
	return p.ID
}

// CreateTestEmployee creates an employee hired on 2024-01-01 and returns its ID
func CreateTestEmployee(t *testing.T, repo *database.Repository, positionID int, firstName string) int {
	t.Helper()
	e, err := repo.CreateEmployee(context.Background(), models.EmployeeInput{
		FirstName:  firstName,
		LastName:   "Tester",
		PositionID: positionID,
		HiredOn:    Date(t, "2024-01-01"),
	})
	if err != nil {
		t.Fatalf("Failed to create test employee: %v", err)
	}
	return e.ID
}
