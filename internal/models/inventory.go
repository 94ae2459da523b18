package models

import "time"

// InventoryItem is a stocked ingredient or consumable.
// Amount is expressed in the item's Unit; UnitCost is the price of one unit.
type InventoryItem struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	UnitID     int       `json:"unit_id"`
	UnitName   string    `json:"unit"`
	Amount     float64   `json:"amount"`
	MinAmount  float64   `json:"min_amount"`
	UnitCost   float64   `json:"unit_cost"`
	SupplierID *int      `json:"supplier_id,omitempty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// LowStock reports whether the item has fallen below its reorder level
func (i *InventoryItem) LowStock() bool {
	return i.Amount < i.MinAmount
}

// InventoryInput carries the writable inventory fields
type InventoryInput struct {
	Name       string
	UnitID     int
	Amount     float64
	MinAmount  float64
	UnitCost   float64
	SupplierID *int
}
