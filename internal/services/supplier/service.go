package supplier

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Service defines supplier and supply order operations
type Service interface {
	// Suppliers
	CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*models.Supplier, error)
	GetSupplier(ctx context.Context, id int) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	UpdateSupplier(ctx context.Context, req UpdateSupplierRequest) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error

	// Supply orders
	CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.SupplyOrder, error)
	GetOrder(ctx context.Context, id int) (*models.SupplyOrder, error)
	ListOrders(ctx context.Context, status string) ([]*models.SupplyOrder, error)
	AddOrderLine(ctx context.Context, req OrderLineRequest) (*models.SupplyOrder, error)
	RemoveOrderLine(ctx context.Context, orderID, inventoryID int) (*models.SupplyOrder, error)
	ReceiveOrder(ctx context.Context, id int, receivedOn time.Time) (*models.SupplyOrder, error)
	CancelOrder(ctx context.Context, id int) (*models.SupplyOrder, error)
	DeleteOrder(ctx context.Context, id int) error
}

// CreateSupplierRequest encapsulates data for creating a supplier
type CreateSupplierRequest struct {
	Name    string
	Phone   string
	Email   string
	Address string
}

// UpdateSupplierRequest encapsulates data for updating a supplier.
// Nil fields are left unchanged; an empty string clears an optional field.
type UpdateSupplierRequest struct {
	ID      int
	Name    *string
	Phone   *string
	Email   *string
	Address *string
}

// CreateOrderRequest encapsulates data for opening a supply order.
// A zero OrderedOn means today.
type CreateOrderRequest struct {
	SupplierID int
	OrderedOn  time.Time
	ExpectedOn *time.Time
}

// OrderLineRequest is one line to add to a pending order
type OrderLineRequest struct {
	OrderID     int
	InventoryID int
	Quantity    float64
	UnitPrice   float64
}

// service implements Service interface
type service struct {
	suppliers database.SupplierStore
	orders    database.OrderStore
	now       func() time.Time
}

// NewService creates a new supplier service
func NewService(suppliers database.SupplierStore, orders database.OrderStore, opts ...Option) Service {
	s := &service{
		suppliers: suppliers,
		orders:    orders,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return validation.Date(s.now())
}

// CreateSupplier normalises and stores a supplier
func (s *service) CreateSupplier(ctx context.Context, req CreateSupplierRequest) (*models.Supplier, error) {
	in, err := validateSupplier(models.SupplierInput(req))
	if err != nil {
		return nil, err
	}
	sup, err := s.suppliers.CreateSupplier(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	return sup, nil
}

// GetSupplier retrieves a supplier
func (s *service) GetSupplier(ctx context.Context, id int) (*models.Supplier, error) {
	if err := validation.ID("supplier ID", id); err != nil {
		return nil, err
	}
	return s.suppliers.GetSupplier(ctx, id)
}

// ListSuppliers returns every supplier
func (s *service) ListSuppliers(ctx context.Context) ([]*models.Supplier, error) {
	return s.suppliers.ListSuppliers(ctx)
}

// UpdateSupplier applies the non-nil fields of req
func (s *service) UpdateSupplier(ctx context.Context, req UpdateSupplierRequest) (*models.Supplier, error) {
	if err := validation.ID("supplier ID", req.ID); err != nil {
		return nil, err
	}
	if req.Name == nil && req.Phone == nil && req.Email == nil && req.Address == nil {
		return nil, ErrNoChanges
	}

	existing, err := s.suppliers.GetSupplier(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	in := models.SupplierInput{
		Name:    existing.Name,
		Phone:   existing.Phone,
		Email:   existing.Email,
		Address: existing.Address,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Phone != nil {
		in.Phone = *req.Phone
	}
	if req.Email != nil {
		in.Email = *req.Email
	}
	if req.Address != nil {
		in.Address = *req.Address
	}

	if in, err = validateSupplier(in); err != nil {
		return nil, err
	}
	sup, err := s.suppliers.UpdateSupplier(ctx, req.ID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update supplier: %w", err)
	}
	return sup, nil
}

// DeleteSupplier removes a supplier that has no orders
func (s *service) DeleteSupplier(ctx context.Context, id int) error {
	if err := validation.ID("supplier ID", id); err != nil {
		return err
	}
	if err := s.suppliers.DeleteSupplier(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supplier: %w", err)
	}
	return nil
}

// CreateOrder opens a pending supply order
func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (*models.SupplyOrder, error) {
	if err := validation.ID("supplier ID", req.SupplierID); err != nil {
		return nil, err
	}

	in := models.SupplyOrderInput{SupplierID: req.SupplierID, OrderedOn: s.today()}
	if !req.OrderedOn.IsZero() {
		in.OrderedOn = validation.Date(req.OrderedOn)
	}
	if req.ExpectedOn != nil {
		_, expected, err := validation.DateRange(in.OrderedOn, *req.ExpectedOn)
		if err != nil {
			return nil, fmt.Errorf("expected delivery before order date: %w", err)
		}
		in.ExpectedOn = &expected
	}

	o, err := s.orders.CreateSupplyOrder(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create supply order: %w", err)
	}
	return o, nil
}

// GetOrder retrieves an order with its lines
func (s *service) GetOrder(ctx context.Context, id int) (*models.SupplyOrder, error) {
	if err := validation.ID("order ID", id); err != nil {
		return nil, err
	}
	return s.orders.GetSupplyOrder(ctx, id)
}

// ListOrders returns orders, optionally filtered by status
func (s *service) ListOrders(ctx context.Context, status string) ([]*models.SupplyOrder, error) {
	switch status {
	case "", models.OrderStatusPending, models.OrderStatusReceived, models.OrderStatusCancelled:
	default:
		return nil, fmt.Errorf("%q: %w", status, ErrInvalidStatus)
	}
	return s.orders.ListSupplyOrders(ctx, status)
}

// AddOrderLine adds a line to a pending order
func (s *service) AddOrderLine(ctx context.Context, req OrderLineRequest) (*models.SupplyOrder, error) {
	if err := validation.ID("order ID", req.OrderID); err != nil {
		return nil, err
	}
	if err := validation.ID("inventory ID", req.InventoryID); err != nil {
		return nil, err
	}
	if err := validation.Positive("quantity", req.Quantity); err != nil {
		return nil, err
	}
	if err := validation.NonNegative("unit price", req.UnitPrice); err != nil {
		return nil, err
	}

	o, err := s.orders.AddOrderItem(ctx, req.OrderID, req.InventoryID, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, fmt.Errorf("failed to add order line: %w", err)
	}
	return o, nil
}

// RemoveOrderLine removes a line from a pending order
func (s *service) RemoveOrderLine(ctx context.Context, orderID, inventoryID int) (*models.SupplyOrder, error) {
	if err := validation.ID("order ID", orderID); err != nil {
		return nil, err
	}
	if err := validation.ID("inventory ID", inventoryID); err != nil {
		return nil, err
	}
	o, err := s.orders.RemoveOrderItem(ctx, orderID, inventoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to remove order line: %w", err)
	}
	return o, nil
}

// ReceiveOrder books a pending order into stock. A zero receivedOn means today.
func (s *service) ReceiveOrder(ctx context.Context, id int, receivedOn time.Time) (*models.SupplyOrder, error) {
	if err := validation.ID("order ID", id); err != nil {
		return nil, err
	}
	if receivedOn.IsZero() {
		receivedOn = s.today()
	}
	o, err := s.orders.ReceiveSupplyOrder(ctx, id, validation.Date(receivedOn))
	if err != nil {
		return nil, fmt.Errorf("failed to receive supply order: %w", err)
	}
	slog.Info("supply order received", "order", o.ID, "supplier", o.SupplierName, "lines", len(o.Items), "total", o.Total)
	return o, nil
}

// CancelOrder cancels a pending order
func (s *service) CancelOrder(ctx context.Context, id int) (*models.SupplyOrder, error) {
	if err := validation.ID("order ID", id); err != nil {
		return nil, err
	}
	o, err := s.orders.CancelSupplyOrder(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to cancel supply order: %w", err)
	}
	return o, nil
}

// DeleteOrder removes an order that was never received
func (s *service) DeleteOrder(ctx context.Context, id int) error {
	if err := validation.ID("order ID", id); err != nil {
		return err
	}
	if err := s.orders.DeleteSupplyOrder(ctx, id); err != nil {
		return fmt.Errorf("failed to delete supply order: %w", err)
	}
	return nil
}

func validateSupplier(in models.SupplierInput) (models.SupplierInput, error) {
	var err error
	if in.Name, err = validation.Name("supplier name", in.Name, models.MaxNameLength); err != nil {
		return in, err
	}
	if in.Phone, err = validation.Phone("phone", in.Phone); err != nil {
		return in, err
	}
	if in.Email, err = validation.Email("email", in.Email); err != nil {
		return in, err
	}
	if in.Address, err = validation.OptionalText("address", in.Address, models.MaxDescriptionLength); err != nil {
		return in, err
	}
	return in, nil
}
