// Package entity contains the core business objects of the project.
package entity

// Product is a catalog entry resolved by SKU. The catalog itself is an
// external collaborator; only the name and pack sizes are consumed here.
type Product struct {
	SKU       string   `json:"sku"`
	Name      string   `json:"name"`
	PackSizes []string `json:"packSizes"`
}
