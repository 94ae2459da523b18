package models

import "time"

// SupplyOrder is a purchase order placed with a supplier
type SupplyOrder struct {
	ID           int                `json:"id"`
	SupplierID   int                `json:"supplier_id"`
	SupplierName string             `json:"supplier"`
	OrderedOn    time.Time          `json:"ordered_on"`
	ExpectedOn   *time.Time         `json:"expected_on,omitempty"`
	ReceivedOn   *time.Time         `json:"received_on,omitempty"`
	Status       string             `json:"status"`
	Items        []*SupplyOrderItem `json:"items,omitempty"`
	Total        float64            `json:"total"`
}

// SupplyOrderInput carries the fields needed to open an order
type SupplyOrderInput struct {
	SupplierID int
	OrderedOn  time.Time
	ExpectedOn *time.Time
}

// SupplyOrderItem is one line of a supply order.
// The pair (OrderID, InventoryID) is the primary key.
type SupplyOrderItem struct {
	OrderID       int     `json:"order_id"`
	InventoryID   int     `json:"inventory_id"`
	InventoryName string  `json:"inventory"`
	Quantity      float64 `json:"quantity"`
	UnitPrice     float64 `json:"unit_price"`
}

// LineTotal returns quantity times unit price
func (i *SupplyOrderItem) LineTotal() float64 {
	return i.Quantity * i.UnitPrice
}
