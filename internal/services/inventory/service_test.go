package inventory

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/testutil"
	"github.com/thenoetrevino/cafe/internal/validation"
)

func ptr[T any](v T) *T { return &v }

func TestCreateItem(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	grams := testutil.UnitID(t, repo, "g")

	item, err := svc.CreateItem(context.Background(), CreateItemRequest{
		Name:      "  Arabica   beans ",
		UnitID:    grams,
		Amount:    500,
		MinAmount: 200,
		UnitCost:  0.03,
	})
	require.NoError(t, err)
	assert.Equal(t, "Arabica beans", item.Name, "names are trimmed and whitespace-collapsed")
	assert.Equal(t, "g", item.UnitName)
}

func TestCreateItem_Validation(t *testing.T) {
	t.Parallel()

	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	grams := testutil.UnitID(t, repo, "g")

	testCases := []struct {
		name    string
		req     CreateItemRequest
		wantErr error
	}{
		{"empty name", CreateItemRequest{Name: "   ", UnitID: grams}, validation.ErrEmpty},
		{"long name", CreateItemRequest{Name: strings.Repeat("a", models.MaxNameLength+1), UnitID: grams}, validation.ErrTooLong},
		{"no unit", CreateItemRequest{Name: "Milk"}, validation.ErrInvalidID},
		{"negative amount", CreateItemRequest{Name: "Milk", UnitID: grams, Amount: -1}, validation.ErrNegative},
		{"negative minimum", CreateItemRequest{Name: "Milk", UnitID: grams, MinAmount: -1}, validation.ErrNegative},
		{"negative cost", CreateItemRequest{Name: "Milk", UnitID: grams, UnitCost: -0.1}, validation.ErrNegative},
		{"bad supplier", CreateItemRequest{Name: "Milk", UnitID: grams, SupplierID: ptr(0)}, validation.ErrInvalidID},
		{"unknown unit", CreateItemRequest{Name: "Milk", UnitID: 999}, models.ErrNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateItem(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	supplierID := testutil.CreateTestSupplier(t, repo, "Bean Co")
	id := testutil.CreateTestItem(t, repo, "Beans", 100, 0.02)

	_, err := svc.UpdateItem(ctx, UpdateItemRequest{ID: id})
	assert.ErrorIs(t, err, ErrNoChanges)

	item, err := svc.UpdateItem(ctx, UpdateItemRequest{ID: id, MinAmount: ptr(250.0), SupplierID: &supplierID})
	require.NoError(t, err)
	assert.Equal(t, "Beans", item.Name, "untouched fields are preserved")
	assert.Equal(t, 100.0, item.Amount)
	assert.Equal(t, 250.0, item.MinAmount)
	require.NotNil(t, item.SupplierID)
	assert.True(t, item.LowStock())

	item, err = svc.UpdateItem(ctx, UpdateItemRequest{ID: id, ClearSupplier: true})
	require.NoError(t, err)
	assert.Nil(t, item.SupplierID)

	_, err = svc.UpdateItem(ctx, UpdateItemRequest{ID: id, Name: ptr("")})
	assert.ErrorIs(t, err, validation.ErrEmpty)

	_, err = svc.UpdateItem(ctx, UpdateItemRequest{ID: 999, Name: ptr("x")})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRestockAndConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)
	id := testutil.CreateTestItem(t, repo, "Milk", 1000, 0.001)

	item, err := svc.Restock(ctx, id, 500)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, item.Amount)

	item, err = svc.Consume(ctx, id, 1200)
	require.NoError(t, err)
	assert.Equal(t, 300.0, item.Amount)

	_, err = svc.Consume(ctx, id, 301)
	assert.ErrorIs(t, err, models.ErrInsufficientStock)

	_, err = svc.Restock(ctx, id, 0)
	assert.ErrorIs(t, err, validation.ErrNotPositive)
	_, err = svc.Consume(ctx, id, -5)
	assert.ErrorIs(t, err, validation.ErrNotPositive, "negative consumption would be a restock")

	item, err = svc.GetItem(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 300.0, item.Amount, "failed adjustments leave stock untouched")
}

func TestUnits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := testutil.SetupTestRepo(t)
	svc := NewService(repo)

	u, err := svc.CreateUnit(ctx, " tbsp ")
	require.NoError(t, err)
	assert.Equal(t, "tbsp", u.Name)

	_, err = svc.CreateUnit(ctx, "KG")
	assert.ErrorIs(t, err, models.ErrDuplicate)

	units, err := svc.ListUnits(ctx)
	require.NoError(t, err)
	assert.Len(t, units, 6)

	require.NoError(t, svc.DeleteUnit(ctx, u.ID))
	assert.ErrorIs(t, svc.DeleteUnit(ctx, 0), validation.ErrInvalidID)
	assert.NoError(t, svc.DeleteUnit(ctx, testutil.UnitID(t, repo, "g")), "unused seeded units can be removed")
}
