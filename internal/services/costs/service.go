package costs

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Service defines the expense ledger and cost estimates
type Service interface {
	CreateExpense(ctx context.Context, req CreateExpenseRequest) (*models.Expense, error)
	GetExpense(ctx context.Context, id int) (*models.Expense, error)
	ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error)
	DeleteExpense(ctx context.Context, id int) error

	EstimateMenuItem(ctx context.Context, menuID int) (*models.MenuItemCost, error)
	EstimateMenu(ctx context.Context) ([]*models.MenuItemCost, error)
	EstimatePeriod(ctx context.Context, from, to time.Time) (*models.PeriodCosts, error)
}

// CreateExpenseRequest encapsulates data for recording an expense.
// A zero IncurredOn means today.
type CreateExpenseRequest struct {
	Category    string
	Description string
	Amount      float64
	IncurredOn  time.Time
}

// service implements Service interface
type service struct {
	repo database.CostStore
	now  func() time.Time
}

// NewService creates a new costs service
func NewService(repo database.CostStore, opts ...Option) Service {
	s := &service{
		repo: repo,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) today() time.Time {
	return validation.Date(s.now())
}

// CreateExpense validates and records an expense
func (s *service) CreateExpense(ctx context.Context, req CreateExpenseRequest) (*models.Expense, error) {
	in := models.ExpenseInput(req)

	in.Category = strings.ToLower(strings.TrimSpace(in.Category))
	if !slices.Contains(models.ExpenseCategories, in.Category) {
		return nil, fmt.Errorf("%q (want one of %s): %w",
			req.Category, strings.Join(models.ExpenseCategories, ", "), ErrUnknownCategory)
	}

	var err error
	if in.Description, err = validation.OptionalText("description", in.Description, models.MaxDescriptionLength); err != nil {
		return nil, err
	}
	if err := validation.NonNegative("amount", in.Amount); err != nil {
		return nil, err
	}
	in.Amount = validation.Money(in.Amount)

	if in.IncurredOn.IsZero() {
		in.IncurredOn = s.today()
	}
	in.IncurredOn = validation.Date(in.IncurredOn)

	e, err := s.repo.CreateExpense(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}
	return e, nil
}

// GetExpense retrieves an expense
func (s *service) GetExpense(ctx context.Context, id int) (*models.Expense, error) {
	if err := validation.ID("expense ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetExpense(ctx, id)
}

// ListExpenses returns expenses incurred within [from, to]; zero bounds are open
func (s *service) ListExpenses(ctx context.Context, from, to time.Time) ([]*models.Expense, error) {
	if !from.IsZero() && !to.IsZero() {
		var err error
		if from, to, err = validation.DateRange(from, to); err != nil {
			return nil, err
		}
	}
	return s.repo.ListExpenses(ctx, from, to)
}

// DeleteExpense removes an expense
func (s *service) DeleteExpense(ctx context.Context, id int) error {
	if err := validation.ID("expense ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

// EstimateMenuItem prices one menu item's recipe at current ingredient costs
func (s *service) EstimateMenuItem(ctx context.Context, menuID int) (*models.MenuItemCost, error) {
	if err := validation.ID("menu item ID", menuID); err != nil {
		return nil, err
	}
	return s.repo.MenuItemCost(ctx, menuID)
}

// EstimateMenu prices every menu item
func (s *service) EstimateMenu(ctx context.Context) ([]*models.MenuItemCost, error) {
	items, err := s.repo.ListMenuItems(ctx, nil)
	if err != nil {
		return nil, err
	}

	costs := make([]*models.MenuItemCost, 0, len(items))
	for _, item := range items {
		c, err := s.repo.MenuItemCost(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to cost %q: %w", item.Name, err)
		}
		costs = append(costs, c)
	}
	return costs, nil
}

// EstimatePeriod sums supplies, payroll and expenses over [from, to]
func (s *service) EstimatePeriod(ctx context.Context, from, to time.Time) (*models.PeriodCosts, error) {
	from, err := validation.RequireDate("from", from)
	if err != nil {
		return nil, err
	}
	to, err = validation.RequireDate("to", to)
	if err != nil {
		return nil, err
	}
	if from, to, err = validation.DateRange(from, to); err != nil {
		return nil, err
	}
	return s.repo.PeriodCosts(ctx, from, to)
}
