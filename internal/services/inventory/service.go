package inventory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Service defines all unit and stock operations
type Service interface {
	// Units
	CreateUnit(ctx context.Context, name string) (*models.Unit, error)
	ListUnits(ctx context.Context) ([]*models.Unit, error)
	DeleteUnit(ctx context.Context, id int) error

	// Read operations
	GetItem(ctx context.Context, id int) (*models.InventoryItem, error)
	ListItems(ctx context.Context) ([]*models.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]*models.InventoryItem, error)

	// Write operations
	CreateItem(ctx context.Context, req CreateItemRequest) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*models.InventoryItem, error)
	Restock(ctx context.Context, id int, quantity float64) (*models.InventoryItem, error)
	Consume(ctx context.Context, id int, quantity float64) (*models.InventoryItem, error)
	DeleteItem(ctx context.Context, id int) error
}

// CreateItemRequest encapsulates data for creating an inventory item
type CreateItemRequest struct {
	Name       string
	UnitID     int
	Amount     float64
	MinAmount  float64
	UnitCost   float64
	SupplierID *int
}

// UpdateItemRequest encapsulates data for updating an inventory item.
// Nil fields are left unchanged; ClearSupplier unlinks the supplier.
type UpdateItemRequest struct {
	ID            int
	Name          *string
	UnitID        *int
	Amount        *float64
	MinAmount     *float64
	UnitCost      *float64
	SupplierID    *int
	ClearSupplier bool
}

// service implements Service interface
type service struct {
	repo database.InventoryStore
}

// NewService creates a new inventory service
func NewService(repo database.InventoryStore) Service {
	return &service{repo: repo}
}

// CreateUnit adds a measurement unit
func (s *service) CreateUnit(ctx context.Context, name string) (*models.Unit, error) {
	name, err := validation.Name("unit name", name, models.MaxNameLength)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.CreateUnit(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create unit: %w", err)
	}
	return u, nil
}

// ListUnits returns every unit
func (s *service) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	return s.repo.ListUnits(ctx)
}

// DeleteUnit removes a unit that no item uses
func (s *service) DeleteUnit(ctx context.Context, id int) error {
	if err := validation.ID("unit ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteUnit(ctx, id); err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}
	return nil
}

// GetItem retrieves an inventory item
func (s *service) GetItem(ctx context.Context, id int) (*models.InventoryItem, error) {
	if err := validation.ID("inventory ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetInventoryItem(ctx, id)
}

// ListItems returns every inventory item
func (s *service) ListItems(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.repo.ListInventoryItems(ctx)
}

// ListLowStock returns items below their reorder level
func (s *service) ListLowStock(ctx context.Context) ([]*models.InventoryItem, error) {
	return s.repo.ListLowStock(ctx)
}

// CreateItem validates and stores a new inventory item
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*models.InventoryItem, error) {
	in, err := validateItem(models.InventoryInput{
		Name:       req.Name,
		UnitID:     req.UnitID,
		Amount:     req.Amount,
		MinAmount:  req.MinAmount,
		UnitCost:   req.UnitCost,
		SupplierID: req.SupplierID,
	})
	if err != nil {
		return nil, err
	}

	item, err := s.repo.CreateInventoryItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create inventory item: %w", err)
	}
	return item, nil
}

// UpdateItem applies the non-nil fields of req to an existing item
func (s *service) UpdateItem(ctx context.Context, req UpdateItemRequest) (*models.InventoryItem, error) {
	if err := validation.ID("inventory ID", req.ID); err != nil {
		return nil, err
	}
	if req.Name == nil && req.UnitID == nil && req.Amount == nil && req.MinAmount == nil &&
		req.UnitCost == nil && req.SupplierID == nil && !req.ClearSupplier {
		return nil, ErrNoChanges
	}

	existing, err := s.repo.GetInventoryItem(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	in := models.InventoryInput{
		Name:       existing.Name,
		UnitID:     existing.UnitID,
		Amount:     existing.Amount,
		MinAmount:  existing.MinAmount,
		UnitCost:   existing.UnitCost,
		SupplierID: existing.SupplierID,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.UnitID != nil {
		in.UnitID = *req.UnitID
	}
	if req.Amount != nil {
		in.Amount = *req.Amount
	}
	if req.MinAmount != nil {
		in.MinAmount = *req.MinAmount
	}
	if req.UnitCost != nil {
		in.UnitCost = *req.UnitCost
	}
	if req.SupplierID != nil {
		in.SupplierID = req.SupplierID
	}
	if req.ClearSupplier {
		in.SupplierID = nil
	}

	if in, err = validateItem(in); err != nil {
		return nil, err
	}

	item, err := s.repo.UpdateInventoryItem(ctx, req.ID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update inventory item: %w", err)
	}
	return item, nil
}

// Restock adds quantity to an item's amount
func (s *service) Restock(ctx context.Context, id int, quantity float64) (*models.InventoryItem, error) {
	if err := validation.ID("inventory ID", id); err != nil {
		return nil, err
	}
	if err := validation.Positive("quantity", quantity); err != nil {
		return nil, err
	}
	item, err := s.repo.AdjustStock(ctx, id, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to restock inventory item: %w", err)
	}
	slog.Info("restocked", "item", item.Name, "quantity", quantity, "amount", item.Amount)
	return item, nil
}

// Consume removes quantity from an item's amount; stock never goes negative
func (s *service) Consume(ctx context.Context, id int, quantity float64) (*models.InventoryItem, error) {
	if err := validation.ID("inventory ID", id); err != nil {
		return nil, err
	}
	if err := validation.Positive("quantity", quantity); err != nil {
		return nil, err
	}
	item, err := s.repo.AdjustStock(ctx, id, -quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to consume inventory item: %w", err)
	}
	if item.LowStock() {
		slog.Warn("inventory item below reorder level", "item", item.Name, "amount", item.Amount, "min", item.MinAmount)
	}
	return item, nil
}

// DeleteItem removes an item nothing references
func (s *service) DeleteItem(ctx context.Context, id int) error {
	if err := validation.ID("inventory ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteInventoryItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	return nil
}

// validateItem normalises the name and checks every numeric field
func validateItem(in models.InventoryInput) (models.InventoryInput, error) {
	name, err := validation.Name("item name", in.Name, models.MaxNameLength)
	if err != nil {
		return in, err
	}
	in.Name = name

	if err := validation.ID("unit ID", in.UnitID); err != nil {
		return in, err
	}
	if in.SupplierID != nil {
		if err := validation.ID("supplier ID", *in.SupplierID); err != nil {
			return in, err
		}
	}
	if err := validation.NonNegative("amount", in.Amount); err != nil {
		return in, err
	}
	if err := validation.NonNegative("minimum amount", in.MinAmount); err != nil {
		return in, err
	}
	if err := validation.NonNegative("unit cost", in.UnitCost); err != nil {
		return in, err
	}
	return in, nil
}
