package models

// Unit is a measurement unit for stock amounts (e.g. "kg", "ml", "pcs")
type Unit struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}
