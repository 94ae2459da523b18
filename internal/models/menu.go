package models

// MenuCategory groups menu items (e.g. "Coffee", "Pastry")
type MenuCategory struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MenuItem is something the café sells
type MenuItem struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	CategoryID   int     `json:"category_id"`
	CategoryName string  `json:"category"`
	Price        float64 `json:"price"`
	Available    bool    `json:"available"`
}

// MenuItemInput carries the writable menu item fields
type MenuItemInput struct {
	Name       string
	CategoryID int
	Price      float64
	Available  bool
}

// RecipeItem is one ingredient line of a menu item.
// The pair (MenuID, InventoryID) is the primary key.
type RecipeItem struct {
	MenuID        int     `json:"menu_id"`
	InventoryID   int     `json:"inventory_id"`
	InventoryName string  `json:"inventory"`
	UnitName      string  `json:"unit"`
	UnitCost      float64 `json:"unit_cost"`
	Amount        float64 `json:"amount"`
}

// Cost returns the ingredient cost of this line
func (r *RecipeItem) Cost() float64 {
	return r.Amount * r.UnitCost
}
