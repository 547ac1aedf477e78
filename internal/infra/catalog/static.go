// Package catalog provides the static product catalog.
package catalog

import (
	"fieldops/config"
	"fieldops/internal/domain/entity"
	"fieldops/internal/domain/service"
)

// defaultProducts seeds the catalog when configuration supplies none.
var defaultProducts = []entity.Product{
	{SKU: "bio-npk", Name: "Bio NPK", PackSizes: []string{"500ml", "1L", "5L"}},
	{SKU: "bio-potash", Name: "Bio Potash", PackSizes: []string{"500ml", "1L", "5L"}},
	{SKU: "organic-manure", Name: "Organic Manure", PackSizes: []string{"5kg", "25kg", "50kg"}},
}

type staticCatalog struct {
	ordered []*entity.Product
	bySKU   map[string]*entity.Product
}

// New builds the catalog from configuration, falling back to the default
// product set when the config carries no entries.
func New(cfg *config.Config) service.CatalogService {
	products := make([]*entity.Product, 0, len(cfg.Catalog))
	for _, item := range cfg.Catalog {
		products = append(products, &entity.Product{
			SKU:       item.SKU,
			Name:      item.Name,
			PackSizes: item.PackSizes,
		})
	}
	if len(products) == 0 {
		for i := range defaultProducts {
			product := defaultProducts[i]
			products = append(products, &product)
		}
	}

	bySKU := make(map[string]*entity.Product, len(products))
	for _, product := range products {
		bySKU[product.SKU] = product
	}

	return &staticCatalog{ordered: products, bySKU: bySKU}
}

func (c *staticCatalog) Lookup(sku string) (*entity.Product, bool) {
	product, ok := c.bySKU[sku]

	return product, ok
}

func (c *staticCatalog) List() []*entity.Product {
	out := make([]*entity.Product, len(c.ordered))
	copy(out, c.ordered)

	return out
}
