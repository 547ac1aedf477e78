package service

import "fieldops/internal/domain/entity"

// CatalogService resolves product SKUs to catalog entries. Backed by the
// static catalog in configuration; unknown SKUs are still accepted by the
// write paths and surface under their raw SKU in rollups.
type CatalogService interface {
	// Lookup returns the product for a SKU, with ok=false when unknown.
	Lookup(sku string) (*entity.Product, bool)

	// List returns the full catalog in configuration order.
	List() []*entity.Product
}
