package database

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

func TestSupplyOrderLines(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	sup := createSupplier(t, repo, "Bean Co")
	beans := createItem(t, repo, "Beans", 0, 0)
	milk := createItem(t, repo, "Milk", 0, 0)

	expected := date("2024-03-05")
	order, err := repo.CreateSupplyOrder(ctx, models.SupplyOrderInput{
		SupplierID: sup.ID, OrderedOn: date("2024-03-01"), ExpectedOn: &expected,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "Bean Co", order.SupplierName)
	require.NotNil(t, order.ExpectedOn)
	assert.Equal(t, expected, *order.ExpectedOn)

	_, err = repo.CreateSupplyOrder(ctx, models.SupplyOrderInput{SupplierID: 999, OrderedOn: date("2024-03-01")})
	assert.ErrorIs(t, err, models.ErrNotFound)

	order, err = repo.AddOrderItem(ctx, order.ID, beans.ID, 1000, 0.025)
	require.NoError(t, err)
	order, err = repo.AddOrderItem(ctx, order.ID, milk.ID, 2000, 0.001)
	require.NoError(t, err)
	assert.Len(t, order.Items, 2)
	assert.InDelta(t, 27.0, order.Total, 1e-9)

	_, err = repo.AddOrderItem(ctx, order.ID, beans.ID, 5, 1)
	assert.ErrorIs(t, err, models.ErrDuplicate)

	order, err = repo.RemoveOrderItem(ctx, order.ID, milk.ID)
	require.NoError(t, err)
	assert.Len(t, order.Items, 1)

	_, err = repo.RemoveOrderItem(ctx, order.ID, milk.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestReceiveSupplyOrder(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	sup := createSupplier(t, repo, "Bean Co")
	beans := createItem(t, repo, "Beans", 100, 0.02)

	order, err := repo.CreateSupplyOrder(ctx, models.SupplyOrderInput{SupplierID: sup.ID, OrderedOn: date("2024-03-01")})
	require.NoError(t, err)

	_, err = repo.ReceiveSupplyOrder(ctx, order.ID, date("2024-03-02"))
	assert.ErrorIs(t, err, models.ErrInvalidState, "empty orders cannot be received")

	_, err = repo.AddOrderItem(ctx, order.ID, beans.ID, 1000, 0.025)
	require.NoError(t, err)

	_, err = repo.ReceiveSupplyOrder(ctx, order.ID, date("2024-02-28"))
	assert.ErrorIs(t, err, validation.ErrInvalidRange)

	order, err = repo.ReceiveSupplyOrder(ctx, order.ID, date("2024-03-03"))
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusReceived, order.Status)
	require.NotNil(t, order.ReceivedOn)
	assert.Equal(t, date("2024-03-03"), *order.ReceivedOn)

	got, err := repo.GetInventoryItem(ctx, beans.ID)
	require.NoError(t, err)
	assert.Equal(t, 1100.0, got.Amount)
	assert.Equal(t, 0.025, got.UnitCost)

	_, err = repo.ReceiveSupplyOrder(ctx, order.ID, date("2024-03-04"))
	assert.ErrorIs(t, err, models.ErrInvalidState, "received twice")
	_, err = repo.AddOrderItem(ctx, order.ID, beans.ID, 1, 1)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	_, err = repo.CancelSupplyOrder(ctx, order.ID)
	assert.ErrorIs(t, err, models.ErrInvalidState)
	assert.ErrorIs(t, repo.DeleteSupplyOrder(ctx, order.ID), models.ErrInvalidState)
}

func TestCancelAndListSupplyOrders(t *testing.T) {
	ctx := context.Background()
	repo, _ := setupTestRepo(t)
	sup := createSupplier(t, repo, "Bean Co")

	first, err := repo.CreateSupplyOrder(ctx, models.SupplyOrderInput{SupplierID: sup.ID, OrderedOn: date("2024-03-01")})
	require.NoError(t, err)
	_, err = repo.CreateSupplyOrder(ctx, models.SupplyOrderInput{SupplierID: sup.ID, OrderedOn: date("2024-03-02")})
	require.NoError(t, err)

	cancelled, err := repo.CancelSupplyOrder(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	all, err := repo.ListSupplyOrders(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, date("2024-03-02"), all[0].OrderedOn, "newest first")

	pending, err := repo.ListSupplyOrders(ctx, models.OrderStatusPending)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	require.NoError(t, repo.DeleteSupplyOrder(ctx, first.ID))
	_, err = repo.GetSupplyOrder(ctx, first.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}
