package database

import (
	"context"
	"time"

	"github.com/thenoetrevino/cafe/internal/models"
)

// ============================================================================
// Inventory
// ============================================================================

// UnitStore manages measurement units
type UnitStore interface {
	CreateUnit(ctx context.Context, name string) (*models.Unit, error)
	GetUnit(ctx context.Context, id int) (*models.Unit, error)
	ListUnits(ctx context.Context) ([]*models.Unit, error)
	DeleteUnit(ctx context.Context, id int) error
}

// InventoryReader reads stocked items
type InventoryReader interface {
	GetInventoryItem(ctx context.Context, id int) (*models.InventoryItem, error)
	ListInventoryItems(ctx context.Context) ([]*models.InventoryItem, error)
	ListLowStock(ctx context.Context) ([]*models.InventoryItem, error)
}

// InventoryWriter mutates stocked items
type InventoryWriter interface {
	CreateInventoryItem(ctx context.Context, in models.InventoryInput) (*models.InventoryItem, error)
	UpdateInventoryItem(ctx context.Context, id int, in models.InventoryInput) (*models.InventoryItem, error)
	AdjustStock(ctx context.Context, id int, delta float64) (*models.InventoryItem, error)
	DeleteInventoryItem(ctx context.Context, id int) error
}

// InventoryStore is everything the inventory service needs
type InventoryStore interface {
	UnitStore
	InventoryReader
	InventoryWriter
}

// ============================================================================
// Menu
// ============================================================================

// MenuReader reads categories, menu items and recipes
type MenuReader interface {
	ListMenuCategories(ctx context.Context) ([]*models.MenuCategory, error)
	GetMenuItem(ctx context.Context, id int) (*models.MenuItem, error)
	ListMenuItems(ctx context.Context, categoryID *int) ([]*models.MenuItem, error)
	GetRecipe(ctx context.Context, menuID int) ([]*models.RecipeItem, error)
}

// MenuWriter mutates categories, menu items and recipes
type MenuWriter interface {
	CreateMenuCategory(ctx context.Context, name string) (*models.MenuCategory, error)
	DeleteMenuCategory(ctx context.Context, id int) error
	CreateMenuItem(ctx context.Context, in models.MenuItemInput) (*models.MenuItem, error)
	UpdateMenuItem(ctx context.Context, id int, in models.MenuItemInput) (*models.MenuItem, error)
	DeleteMenuItem(ctx context.Context, id int) error
	AddRecipeItem(ctx context.Context, menuID, inventoryID int, amount float64) (*models.RecipeItem, error)
	UpdateRecipeItem(ctx context.Context, menuID, inventoryID int, amount float64) (*models.RecipeItem, error)
	RemoveRecipeItem(ctx context.Context, menuID, inventoryID int) error
	ReplaceRecipe(ctx context.Context, menuID int, lines []models.RecipeItem) ([]*models.RecipeItem, error)
}

// MenuStore is everything the menu service needs
type MenuStore interface {
	MenuReader
	MenuWriter
}

// ============================================================================
// Suppliers and supply orders
// ============================================================================

// SupplierStore manages suppliers
type SupplierStore interface {
	CreateSupplier(ctx context.Context, in models.SupplierInput) (*models.Supplier, error)
	GetSupplier(ctx context.Context, id int) (*models.Supplier, error)
	ListSuppliers(ctx context.Context) ([]*models.Supplier, error)
	UpdateSupplier(ctx context.Context, id int, in models.SupplierInput) (*models.Supplier, error)
	DeleteSupplier(ctx context.Context, id int) error
}

// OrderStore manages supply orders and their lines
type OrderStore interface {
	CreateSupplyOrder(ctx context.Context, in models.SupplyOrderInput) (*models.SupplyOrder, error)
	GetSupplyOrder(ctx context.Context, id int) (*models.SupplyOrder, error)
	ListSupplyOrders(ctx context.Context, status string) ([]*models.SupplyOrder, error)
	AddOrderItem(ctx context.Context, orderID, inventoryID int, quantity, unitPrice float64) (*models.SupplyOrder, error)
	RemoveOrderItem(ctx context.Context, orderID, inventoryID int) (*models.SupplyOrder, error)
	ReceiveSupplyOrder(ctx context.Context, id int, receivedOn time.Time) (*models.SupplyOrder, error)
	CancelSupplyOrder(ctx context.Context, id int) (*models.SupplyOrder, error)
	DeleteSupplyOrder(ctx context.Context, id int) error
}

// ============================================================================
// Staff
// ============================================================================

// PositionStore manages job positions
type PositionStore interface {
	CreatePosition(ctx context.Context, name string, hourlyRate float64) (*models.Position, error)
	GetPosition(ctx context.Context, id int) (*models.Position, error)
	ListPositions(ctx context.Context) ([]*models.Position, error)
	UpdatePosition(ctx context.Context, id int, name string, hourlyRate float64) (*models.Position, error)
	DeletePosition(ctx context.Context, id int) error
}

// EmployeeStore manages employees
type EmployeeStore interface {
	CreateEmployee(ctx context.Context, in models.EmployeeInput) (*models.Employee, error)
	GetEmployee(ctx context.Context, id int) (*models.Employee, error)
	ListEmployees(ctx context.Context, positionID *int) ([]*models.Employee, error)
	UpdateEmployee(ctx context.Context, id int, in models.EmployeeInput) (*models.Employee, error)
	DeleteEmployee(ctx context.Context, id int) error
}

// ShiftStore manages shifts
type ShiftStore interface {
	CreateShift(ctx context.Context, employeeID int, start, end time.Time) (*models.Shift, error)
	GetShift(ctx context.Context, id int) (*models.Shift, error)
	ListShifts(ctx context.Context, employeeID *int, from, to time.Time) ([]*models.Shift, error)
	UpdateShift(ctx context.Context, id int, start, end time.Time) (*models.Shift, error)
	DeleteShift(ctx context.Context, id int) error
}

// PaymentStore manages payments and the hours they are computed from
type PaymentStore interface {
	CreatePayment(ctx context.Context, in models.PaymentInput) (*models.Payment, error)
	GetPayment(ctx context.Context, id int) (*models.Payment, error)
	ListPayments(ctx context.Context, employeeID *int) ([]*models.Payment, error)
	DeletePayment(ctx context.Context, id int) error
	WorkedHours(ctx context.Context, employeeID int, from, to time.Time) (float64, error)
}

// StaffStore is everything the staff service needs
type StaffStore interface {
	PositionStore
	EmployeeStore
	ShiftStore
	PaymentStore
}

// ============================================================================
// Costs
// ============================================================================

// ExpenseStore manages overhead expenses
type ExpenseStore interface {
	CreateExpense(ctx context.Context, in models.ExpenseInput) (*models.Expense, error)
	GetExpense(ctx context.Context, id int) (*models.Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id int) error
}

// CostReader answers read-only cost queries
type CostReader interface {
	MenuItemCost(ctx context.Context, menuID int) (*models.MenuItemCost, error)
	PeriodCosts(ctx context.Context, from, to time.Time) (*models.PeriodCosts, error)
}

// CostStore is everything the costs service needs
type CostStore interface {
	ExpenseStore
	CostReader
	ListMenuItems(ctx context.Context, categoryID *int) ([]*models.MenuItem, error)
}

// DataStore defines the unified interface for all data operations.
// This interface enables mocking with testify for unit testing.
type DataStore interface {
	InventoryStore
	MenuStore
	SupplierStore
	OrderStore
	StaffStore
	ExpenseStore
	CostReader
}

var _ DataStore = (*Repository)(nil)
