package database

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateSetsSchemaVersion(t *testing.T) {
	db := setupTestDB(t)

	v, err := SchemaVersion(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, migrations[len(migrations)-1].version, v)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	require.NoError(t, Migrate(ctx, db))
	require.NoError(t, Migrate(ctx, db))

	var units int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM units").Scan(&units))
	assert.Equal(t, 5, units, "seed rows must not be duplicated")
}

func TestInitDBEnablesForeignKeys(t *testing.T) {
	db := setupTestDB(t)

	var on int
	require.NoError(t, db.QueryRow("PRAGMA foreign_keys").Scan(&on))
	assert.Equal(t, 1, on)
}

func TestInitDBFilePersists(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/nested/cafe.db"

	db, err := InitDB(ctx, path)
	require.NoError(t, err)
	repo := NewRepository(db, nil)
	_, err = repo.CreateUnit(ctx, "tbsp")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = InitDB(ctx, path)
	require.NoError(t, err)
	defer db.Close()

	units, err := NewRepository(db, nil).ListUnits(ctx)
	require.NoError(t, err)
	var names []string
	for _, u := range units {
		names = append(names, u.Name)
	}
	assert.Contains(t, names, "tbsp")
}

func TestMigrateSeedsLookups(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(setupTestDB(t), nil)

	units, err := repo.ListUnits(ctx)
	require.NoError(t, err)
	var unitNames []string
	for _, u := range units {
		unitNames = append(unitNames, u.Name)
	}
	if diff := cmp.Diff([]string{"g", "kg", "l", "ml", "pcs"}, unitNames); diff != "" {
		t.Errorf("seeded units mismatch (-want +got):\n%s", diff)
	}

	cats, err := repo.ListMenuCategories(ctx)
	require.NoError(t, err)
	var catNames []string
	for _, c := range cats {
		catNames = append(catNames, c.Name)
	}
	if diff := cmp.Diff([]string{"Coffee", "Pastry", "Tea"}, catNames); diff != "" {
		t.Errorf("seeded categories mismatch (-want +got):\n%s", diff)
	}
}
