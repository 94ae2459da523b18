package menu

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/cafe/internal/database"
	"github.com/thenoetrevino/cafe/internal/models"
	"github.com/thenoetrevino/cafe/internal/validation"
)

// Service defines all menu-related business operations
type Service interface {
	// Categories
	CreateCategory(ctx context.Context, name string) (*models.MenuCategory, error)
	ListCategories(ctx context.Context) ([]*models.MenuCategory, error)
	DeleteCategory(ctx context.Context, id int) error

	// Menu items
	CreateItem(ctx context.Context, req CreateItemRequest) (*models.MenuItem, error)
	GetItem(ctx context.Context, id int) (*models.MenuItem, error)
	ListItems(ctx context.Context, categoryID *int) ([]*models.MenuItem, error)
	UpdateItem(ctx context.Context, req UpdateItemRequest) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id int) error

	// Recipes
	GetRecipe(ctx context.Context, menuID int) ([]*models.RecipeItem, error)
	AddIngredient(ctx context.Context, req IngredientRequest) (*models.RecipeItem, error)
	UpdateIngredient(ctx context.Context, req IngredientRequest) (*models.RecipeItem, error)
	RemoveIngredient(ctx context.Context, menuID, inventoryID int) error
	SetRecipe(ctx context.Context, menuID int, lines []IngredientRequest) ([]*models.RecipeItem, error)
}

// CreateItemRequest encapsulates data for creating a menu item
type CreateItemRequest struct {
	Name       string
	CategoryID int
	Price      float64
	Available  bool
}

// UpdateItemRequest encapsulates data for updating a menu item.
// Nil fields are left unchanged.
type UpdateItemRequest struct {
	ID         int
	Name       *string
	CategoryID *int
	Price      *float64
	Available  *bool
}

// IngredientRequest is one recipe line. MenuID is ignored by SetRecipe.
type IngredientRequest struct {
	MenuID      int
	InventoryID int
	Amount      float64
}

// service implements Service interface
type service struct {
	repo database.MenuStore
}

// NewService creates a new menu service
func NewService(repo database.MenuStore) Service {
	return &service{repo: repo}
}

// CreateCategory adds a menu category
func (s *service) CreateCategory(ctx context.Context, name string) (*models.MenuCategory, error) {
	name, err := validation.Name("category name", name, models.MaxNameLength)
	if err != nil {
		return nil, err
	}
	c, err := s.repo.CreateMenuCategory(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu category: %w", err)
	}
	return c, nil
}

// ListCategories returns every category
func (s *service) ListCategories(ctx context.Context) ([]*models.MenuCategory, error) {
	return s.repo.ListMenuCategories(ctx)
}

// DeleteCategory removes an empty category
func (s *service) DeleteCategory(ctx context.Context, id int) error {
	if err := validation.ID("category ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuCategory(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu category: %w", err)
	}
	return nil
}

// CreateItem validates and stores a menu item. Prices are rounded to cents.
func (s *service) CreateItem(ctx context.Context, req CreateItemRequest) (*models.MenuItem, error) {
	in, err := validateItem(models.MenuItemInput(req))
	if err != nil {
		return nil, err
	}
	item, err := s.repo.CreateMenuItem(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to create menu item: %w", err)
	}
	return item, nil
}

// GetItem retrieves a menu item
func (s *service) GetItem(ctx context.Context, id int) (*models.MenuItem, error) {
	if err := validation.ID("menu item ID", id); err != nil {
		return nil, err
	}
	return s.repo.GetMenuItem(ctx, id)
}

// ListItems returns menu items, optionally for one category
func (s *service) ListItems(ctx context.Context, categoryID *int) ([]*models.MenuItem, error) {
	if categoryID != nil {
		if err := validation.ID("category ID", *categoryID); err != nil {
			return nil, err
		}
	}
	return s.repo.ListMenuItems(ctx, categoryID)
}

// UpdateItem applies the non-nil fields of req
func (s *service) UpdateItem(ctx context.Context, req UpdateItemRequest) (*models.MenuItem, error) {
	if err := validation.ID("menu item ID", req.ID); err != nil {
		return nil, err
	}
	if req.Name == nil && req.CategoryID == nil && req.Price == nil && req.Available == nil {
		return nil, ErrNoChanges
	}

	existing, err := s.repo.GetMenuItem(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	in := models.MenuItemInput{
		Name:       existing.Name,
		CategoryID: existing.CategoryID,
		Price:      existing.Price,
		Available:  existing.Available,
	}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.CategoryID != nil {
		in.CategoryID = *req.CategoryID
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	if req.Available != nil {
		in.Available = *req.Available
	}

	if in, err = validateItem(in); err != nil {
		return nil, err
	}
	item, err := s.repo.UpdateMenuItem(ctx, req.ID, in)
	if err != nil {
		return nil, fmt.Errorf("failed to update menu item: %w", err)
	}
	return item, nil
}

// DeleteItem removes a menu item and its recipe
func (s *service) DeleteItem(ctx context.Context, id int) error {
	if err := validation.ID("menu item ID", id); err != nil {
		return err
	}
	if err := s.repo.DeleteMenuItem(ctx, id); err != nil {
		return fmt.Errorf("failed to delete menu item: %w", err)
	}
	return nil
}

// GetRecipe returns a menu item's ingredient lines
func (s *service) GetRecipe(ctx context.Context, menuID int) ([]*models.RecipeItem, error) {
	if err := validation.ID("menu item ID", menuID); err != nil {
		return nil, err
	}
	return s.repo.GetRecipe(ctx, menuID)
}

// AddIngredient adds one line to a recipe
func (s *service) AddIngredient(ctx context.Context, req IngredientRequest) (*models.RecipeItem, error) {
	if err := validateIngredient(req, true); err != nil {
		return nil, err
	}
	line, err := s.repo.AddRecipeItem(ctx, req.MenuID, req.InventoryID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to add ingredient: %w", err)
	}
	return line, nil
}

// UpdateIngredient changes the amount of one recipe line
func (s *service) UpdateIngredient(ctx context.Context, req IngredientRequest) (*models.RecipeItem, error) {
	if err := validateIngredient(req, true); err != nil {
		return nil, err
	}
	line, err := s.repo.UpdateRecipeItem(ctx, req.MenuID, req.InventoryID, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to update ingredient: %w", err)
	}
	return line, nil
}

// RemoveIngredient deletes one recipe line
func (s *service) RemoveIngredient(ctx context.Context, menuID, inventoryID int) error {
	if err := validation.ID("menu item ID", menuID); err != nil {
		return err
	}
	if err := validation.ID("inventory ID", inventoryID); err != nil {
		return err
	}
	if err := s.repo.RemoveRecipeItem(ctx, menuID, inventoryID); err != nil {
		return fmt.Errorf("failed to remove ingredient: %w", err)
	}
	return nil
}

// SetRecipe replaces the whole recipe atomically. An empty list clears it.
func (s *service) SetRecipe(ctx context.Context, menuID int, lines []IngredientRequest) ([]*models.RecipeItem, error) {
	if err := validation.ID("menu item ID", menuID); err != nil {
		return nil, err
	}

	seen := make(map[int]bool, len(lines))
	items := make([]models.RecipeItem, 0, len(lines))
	for _, l := range lines {
		if err := validateIngredient(l, false); err != nil {
			return nil, err
		}
		if seen[l.InventoryID] {
			return nil, fmt.Errorf("inventory item %d: %w", l.InventoryID, ErrDuplicateIngredient)
		}
		seen[l.InventoryID] = true
		items = append(items, models.RecipeItem{MenuID: menuID, InventoryID: l.InventoryID, Amount: l.Amount})
	}

	recipe, err := s.repo.ReplaceRecipe(ctx, menuID, items)
	if err != nil {
		return nil, fmt.Errorf("failed to set recipe: %w", err)
	}
	return recipe, nil
}

func validateItem(in models.MenuItemInput) (models.MenuItemInput, error) {
	name, err := validation.Name("menu item name", in.Name, models.MaxNameLength)
	if err != nil {
		return in, err
	}
	in.Name = name
	if err := validation.ID("category ID", in.CategoryID); err != nil {
		return in, err
	}
	if err := validation.NonNegative("price", in.Price); err != nil {
		return in, err
	}
	in.Price = validation.Money(in.Price)
	return in, nil
}

func validateIngredient(req IngredientRequest, withMenu bool) error {
	if withMenu {
		if err := validation.ID("menu item ID", req.MenuID); err != nil {
			return err
		}
	}
	if err := validation.ID("inventory ID", req.InventoryID); err != nil {
		return err
	}
	return validation.Positive("amount", req.Amount)
}
