package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/cafe/internal/metrics"
	"github.com/thenoetrevino/cafe/internal/models"
)

// MenuRepo handles menu categories, menu items and their recipes
type MenuRepo struct {
	db      *sql.DB
	metrics *metrics.Metrics
}

// ============================================================================
// Menu Categories
// ============================================================================

// CreateMenuCategory inserts a category; names are unique ignoring case
func (r *MenuRepo) CreateMenuCategory(ctx context.Context, name string) (*models.MenuCategory, error) {
	var cat *models.MenuCategory
	err := withTx(ctx, r.db, r.metrics, "create_menu_category", func(tx *sql.Tx) error {
		if err := requireUnique(ctx, tx, "menu_categories", "name", "menu category", name, 0); err != nil {
			return err
		}
		result, err := tx.ExecContext(ctx, `INSERT INTO menu_categories (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("failed to insert menu category %q: %w", name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get menu category ID after insert: %w", err)
		}
		cat = &models.MenuCategory{ID: int(id), Name: name}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// ListMenuCategories returns all categories ordered by name
func (r *MenuRepo) ListMenuCategories(ctx context.Context) ([]*models.MenuCategory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM menu_categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu categories: %w", err)
	}
	defer closeRows(rows)

	var cats []*models.MenuCategory
	for rows.Next() {
		c := &models.MenuCategory{}
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan menu category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// DeleteMenuCategory removes a category that holds no menu items
func (r *MenuRepo) DeleteMenuCategory(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_menu_category", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "menu_categories", "menu category", id); err != nil {
			return err
		}
		n, err := countRows(ctx, tx, `SELECT COUNT(*) FROM menu WHERE category_id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to count menu items in category %d: %w", id, err)
		}
		if n > 0 {
			return fmt.Errorf("menu category %d holds %d menu item(s): %w", id, n, models.ErrInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM menu_categories WHERE id = ?`, id); err != nil {
			return fmt.Errorf("failed to delete menu category %d: %w", id, err)
		}
		return nil
	})
}

// ============================================================================
// Menu Items
// ============================================================================

const menuSelect = `
	SELECT m.id, m.name, m.category_id, c.name, m.price, m.available
	FROM menu m
	INNER JOIN menu_categories c ON c.id = m.category_id`

func scanMenuItem(s scanner) (*models.MenuItem, error) {
	item := &models.MenuItem{}
	err := s.Scan(&item.ID, &item.Name, &item.CategoryID, &item.CategoryName, &item.Price, &item.Available)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func getMenuItem(ctx context.Context, q querier, id int) (*models.MenuItem, error) {
	item, err := scanMenuItem(q.QueryRowContext(ctx, menuSelect+` WHERE m.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, notFound("menu item", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get menu item %d: %w", id, err)
	}
	return item, nil
}

func listMenuItems(ctx context.Context, q querier, categoryID *int) ([]*models.MenuItem, error) {
	query := menuSelect
	var args []any
	if categoryID != nil {
		query += ` WHERE m.category_id = ?`
		args = append(args, *categoryID)
	}
	query += ` ORDER BY c.name, m.name`

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query menu items: %w", err)
	}
	defer closeRows(rows)

	var items []*models.MenuItem
	for rows.Next() {
		item, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan menu item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateMenuItem inserts a menu item in an existing category
func (r *MenuRepo) CreateMenuItem(ctx context.Context, in models.MenuItemInput) (*models.MenuItem, error) {
	var item *models.MenuItem
	err := withTx(ctx, r.db, r.metrics, "create_menu_item", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "menu_categories", "menu category", in.CategoryID); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "menu", "name", "menu item", in.Name, 0); err != nil {
			return err
		}

		result, err := tx.ExecContext(ctx,
			`INSERT INTO menu (name, category_id, price, available) VALUES (?, ?, ?, ?)`,
			in.Name, in.CategoryID, in.Price, in.Available,
		)
		if err != nil {
			return fmt.Errorf("failed to insert menu item %q: %w", in.Name, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get menu item ID after insert: %w", err)
		}

		item, err = getMenuItem(ctx, tx, int(id))
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetMenuItem retrieves a menu item by ID
func (r *MenuRepo) GetMenuItem(ctx context.Context, id int) (*models.MenuItem, error) {
	return getMenuItem(ctx, r.db, id)
}

// ListMenuItems returns menu items, optionally limited to one category
func (r *MenuRepo) ListMenuItems(ctx context.Context, categoryID *int) ([]*models.MenuItem, error) {
	return listMenuItems(ctx, r.db, categoryID)
}

// UpdateMenuItem overwrites every writable field of a menu item
func (r *MenuRepo) UpdateMenuItem(ctx context.Context, id int, in models.MenuItemInput) (*models.MenuItem, error) {
	var item *models.MenuItem
	err := withTx(ctx, r.db, r.metrics, "update_menu_item", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "menu", "menu item", id); err != nil {
			return err
		}
		if err := requireExists(ctx, tx, "menu_categories", "menu category", in.CategoryID); err != nil {
			return err
		}
		if err := requireUnique(ctx, tx, "menu", "name", "menu item", in.Name, id); err != nil {
			return err
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE menu SET name = ?, category_id = ?, price = ?, available = ? WHERE id = ?`,
			in.Name, in.CategoryID, in.Price, in.Available, id,
		)
		if err != nil {
			return fmt.Errorf("failed to update menu item %d: %w", id, err)
		}

		item, err = getMenuItem(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

// DeleteMenuItem removes a menu item; its recipe lines cascade
func (r *MenuRepo) DeleteMenuItem(ctx context.Context, id int) error {
	return withTx(ctx, r.db, r.metrics, "delete_menu_item", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx, `DELETE FROM menu WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete menu item %d: %w", id, err)
		}
		return requireAffected(result, "menu item", id)
	})
}

// ============================================================================
// Recipes (composite key: menu_id + inventory_id)
// ============================================================================

const recipeSelect = `
	SELECT r.menu_id, r.inventory_id, i.name, u.name, i.unit_cost, r.amount
	FROM recipes r
	INNER JOIN inventory i ON i.id = r.inventory_id
	INNER JOIN units u ON u.id = i.unit_id`

func scanRecipeItem(s scanner) (*models.RecipeItem, error) {
	ri := &models.RecipeItem{}
	if err := s.Scan(&ri.MenuID, &ri.InventoryID, &ri.InventoryName, &ri.UnitName, &ri.UnitCost, &ri.Amount); err != nil {
		return nil, err
	}
	return ri, nil
}

func recipeKey(menuID, inventoryID int) string {
	return fmt.Sprintf("recipe line (menu %d, inventory %d)", menuID, inventoryID)
}

func getRecipeItem(ctx context.Context, q querier, menuID, inventoryID int) (*models.RecipeItem, error) {
	ri, err := scanRecipeItem(q.QueryRowContext(ctx,
		recipeSelect+` WHERE r.menu_id = ? AND r.inventory_id = ?`, menuID, inventoryID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", recipeKey(menuID, inventoryID), models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", recipeKey(menuID, inventoryID), err)
	}
	return ri, nil
}

func listRecipe(ctx context.Context, q querier, menuID int) ([]*models.RecipeItem, error) {
	rows, err := q.QueryContext(ctx, recipeSelect+` WHERE r.menu_id = ? ORDER BY i.name`, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to query recipe of menu item %d: %w", menuID, err)
	}
	defer closeRows(rows)

	var lines []*models.RecipeItem
	for rows.Next() {
		ri, err := scanRecipeItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe line: %w", err)
		}
		lines = append(lines, ri)
	}
	return lines, rows.Err()
}

func insertRecipeItem(ctx context.Context, tx *sql.Tx, menuID, inventoryID int, amount float64) error {
	if err := requireExists(ctx, tx, "inventory", "inventory item", inventoryID); err != nil {
		return err
	}

	var exists bool
	if err := tx.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM recipes WHERE menu_id = ? AND inventory_id = ?)`,
		menuID, inventoryID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check %s: %w", recipeKey(menuID, inventoryID), err)
	}
	if exists {
		return fmt.Errorf("%s: %w", recipeKey(menuID, inventoryID), models.ErrDuplicate)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (menu_id, inventory_id, amount) VALUES (?, ?, ?)`,
		menuID, inventoryID, amount,
	); err != nil {
		return fmt.Errorf("failed to insert %s: %w", recipeKey(menuID, inventoryID), err)
	}
	return nil
}

// AddRecipeItem adds an ingredient line to a menu item
func (r *MenuRepo) AddRecipeItem(ctx context.Context, menuID, inventoryID int, amount float64) (*models.RecipeItem, error) {
	var ri *models.RecipeItem
	err := withTx(ctx, r.db, r.metrics, "add_recipe_item", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "menu", "menu item", menuID); err != nil {
			return err
		}
		if err := insertRecipeItem(ctx, tx, menuID, inventoryID, amount); err != nil {
			return err
		}
		var err error
		ri, err = getRecipeItem(ctx, tx, menuID, inventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ri, nil
}

// UpdateRecipeItem changes the amount of an existing ingredient line
func (r *MenuRepo) UpdateRecipeItem(ctx context.Context, menuID, inventoryID int, amount float64) (*models.RecipeItem, error) {
	var ri *models.RecipeItem
	err := withTx(ctx, r.db, r.metrics, "update_recipe_item", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE recipes SET amount = ? WHERE menu_id = ? AND inventory_id = ?`,
			amount, menuID, inventoryID,
		)
		if err != nil {
			return fmt.Errorf("failed to update %s: %w", recipeKey(menuID, inventoryID), err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", recipeKey(menuID, inventoryID), models.ErrNotFound)
		}

		ri, err = getRecipeItem(ctx, tx, menuID, inventoryID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ri, nil
}

// RemoveRecipeItem deletes one ingredient line
func (r *MenuRepo) RemoveRecipeItem(ctx context.Context, menuID, inventoryID int) error {
	return withTx(ctx, r.db, r.metrics, "remove_recipe_item", func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM recipes WHERE menu_id = ? AND inventory_id = ?`, menuID, inventoryID)
		if err != nil {
			return fmt.Errorf("failed to delete %s: %w", recipeKey(menuID, inventoryID), err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("%s: %w", recipeKey(menuID, inventoryID), models.ErrNotFound)
		}
		return nil
	})
}

// GetRecipe returns the ingredient lines of a menu item
func (r *MenuRepo) GetRecipe(ctx context.Context, menuID int) ([]*models.RecipeItem, error) {
	if err := requireExists(ctx, r.db, "menu", "menu item", menuID); err != nil {
		return nil, err
	}
	return listRecipe(ctx, r.db, menuID)
}

// ReplaceRecipe swaps the whole recipe of a menu item in one transaction.
// Line MenuID fields are ignored; an inventory item may appear only once.
func (r *MenuRepo) ReplaceRecipe(ctx context.Context, menuID int, lines []models.RecipeItem) ([]*models.RecipeItem, error) {
	var out []*models.RecipeItem
	err := withTx(ctx, r.db, r.metrics, "replace_recipe", func(tx *sql.Tx) error {
		if err := requireExists(ctx, tx, "menu", "menu item", menuID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE menu_id = ?`, menuID); err != nil {
			return fmt.Errorf("failed to clear recipe of menu item %d: %w", menuID, err)
		}
		for _, line := range lines {
			if err := insertRecipeItem(ctx, tx, menuID, line.InventoryID, line.Amount); err != nil {
				return err
			}
		}
		var err error
		out, err = listRecipe(ctx, tx, menuID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
