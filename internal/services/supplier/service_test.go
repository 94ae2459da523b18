package supplier

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/testutil"
	"github.com/thenoetrevino/cafe/internal/validation"
)

func setupService(t *testing.T, today string) (Service, *database.Repository) {
	t.Helper()
	repo := testutil.SetupTestRepo(t)
	fixed := testutil.Date(t, today)
	return NewService(repo, repo, withClock(func() time.Time { return fixed })), repo
}

func TestCreateSupplier_Normalises(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t, "2024-03-01")

	sup, err := svc.CreateSupplier(context.Background(), CreateSupplierRequest{
		Name:    "  Bean   Co ",
		Phone:   "+1 (555) 123-4567",
		Email:   " Orders@Bean.CO ",
		Address: "  1 Roastery Lane ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bean Co", sup.Name)
	assert.Equal(t, "+15551234567", sup.Phone)
	assert.Equal(t, "orders@bean.co", sup.Email)
	assert.Equal(t, "1 Roastery Lane", sup.Address)
}

func TestCreateSupplier_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := setupService(t, "2024-03-01")

	testCases := []struct {
		name    string
		req     CreateSupplierRequest
		wantErr error
	}{
		{"empty name", CreateSupplierRequest{Name: " "}, validation.ErrEmpty},
		{"bad email", CreateSupplierRequest{Name: "X", Email: "not-an-email"}, validation.ErrInvalidEmail},
		{"bad phone", CreateSupplierRequest{Name: "X", Phone: "call me"}, validation.ErrInvalidPhone},
		{"short phone", CreateSupplierRequest{Name: "X", Phone: "12"}, validation.ErrInvalidPhone},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateSupplier(context.Background(), tc.req)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUpdateSupplier(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t, "2024-03-01")
	id := testutil.CreateTestSupplier(t, repo, "Bean Co")

	_, err := svc.UpdateSupplier(ctx, UpdateSupplierRequest{ID: id})
	assert.ErrorIs(t, err, ErrNoChanges)

	email := "SALES@bean.co"
	sup, err := svc.UpdateSupplier(ctx, UpdateSupplierRequest{ID: id, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "sales@bean.co", sup.Email)
	assert.Equal(t, "Bean Co", sup.Name)

	cleared := ""
	sup, err = svc.UpdateSupplier(ctx, UpdateSupplierRequest{ID: id, Email: &cleared})
	require.NoError(t, err)
	assert.Empty(t, sup.Email)
}

func TestOrderLifecycle(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t, "2024-03-10")
	supplierID := testutil.CreateTestSupplier(t, repo, "Bean Co")
	beans := testutil.CreateTestItem(t, repo, "Beans", 0, 0)

	order, err := svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: supplierID})
	require.NoError(t, err)
	assert.Equal(t, testutil.Date(t, "2024-03-10"), order.OrderedOn, "defaults to today")

	order, err = svc.AddOrderLine(ctx, OrderLineRequest{OrderID: order.ID, InventoryID: beans, Quantity: 2000, UnitPrice: 0.02})
	require.NoError(t, err)
	assert.InDelta(t, 40.0, order.Total, 1e-9)

	_, err = svc.AddOrderLine(ctx, OrderLineRequest{OrderID: order.ID, InventoryID: beans, Quantity: 0, UnitPrice: 1})
	assert.ErrorIs(t, err, validation.ErrNotPositive)

	order, err = svc.ReceiveOrder(ctx, order.ID, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReceived, order.Status)

	item, err := repo.GetInventoryItem(ctx, beans)
	require.NoError(t, err)
	assert.Equal(t, 2000.0, item.Amount)
	assert.Equal(t, 0.02, item.UnitCost)

	assert.ErrorIs(t, svc.DeleteOrder(ctx, order.ID), models.ErrInvalidState)
	assert.ErrorIs(t, svc.DeleteSupplier(ctx, supplierID), models.ErrInUse)
}

func TestCreateOrder_DateOrdering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t, "2024-03-10")
	supplierID := testutil.CreateTestSupplier(t, repo, "Bean Co")

	early := testutil.Date(t, "2024-03-05")
	_, err := svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: supplierID, ExpectedOn: &early})
	assert.ErrorIs(t, err, validation.ErrInvalidRange)

	sameDay := testutil.Date(t, "2024-03-10")
	order, err := svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: supplierID, ExpectedOn: &sameDay})
	require.NoError(t, err)
	require.NotNil(t, order.ExpectedOn)

	_, err = svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: 999})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListOrders(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, repo := setupService(t, "2024-03-10")
	supplierID := testutil.CreateTestSupplier(t, repo, "Bean Co")

	first, err := svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: supplierID})
	require.NoError(t, err)
	_, err = svc.CreateOrder(ctx, CreateOrderRequest{SupplierID: supplierID})
	require.NoError(t, err)
	_, err = svc.CancelOrder(ctx, first.ID)
	require.NoError(t, err)

	cancelled, err := svc.ListOrders(ctx, models.OrderStatusCancelled)
	require.NoError(t, err)
	assert.Len(t, cancelled, 1)

	_, err = svc.ListOrders(ctx, "lost")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
