package models

import "time"

// MenuItemCost is the ingredient cost breakdown of one menu item
type MenuItemCost struct {
	Item           *MenuItem     `json:"item"`
	Lines          []*RecipeItem `json:"lines"`
	IngredientCost float64       `json:"ingredient_cost"`
	Margin         float64       `json:"margin"`
	MarginPercent  float64       `json:"margin_percent"`
}

// PeriodCosts sums what the café spent over an inclusive date range
type PeriodCosts struct {
	From     time.Time `json:"from"`
	To       time.Time `json:"to"`
	Supplies float64   `json:"supplies"`
	Payroll  float64   `json:"payroll"`
	Expenses float64   `json:"expenses"`
	Total    float64   `json:"total"`
}
