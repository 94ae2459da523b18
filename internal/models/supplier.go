package models

import "time"

// Supplier is a company the café buys stock from
type Supplier struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SupplierInput carries the writable supplier fields
type SupplierInput struct {
	Name    string
	Phone   string
	Email   string
	Address string
}
