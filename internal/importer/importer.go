// Package importer forwards extracted product data to its destination,
// the product catalog API or a local sink.
package importer

import (
	"context"
	"fmt"

	"github.com/samber/lo"
	"github.com/semjacko/product-harvester/internal/platform/catalogapi"
	"github.com/semjacko/product-harvester/internal/platform/models"
)

//go:generate mockery --name CatalogClient --filename catalogclient.go

// CatalogClient calls the product catalog API.
type CatalogClient interface {
	Categories(ctx context.Context) ([]catalogapi.Category, error)
	CreateProduct(ctx context.Context, payload catalogapi.ProductPayload) error
}

// CatalogImporter imports products into the catalog on behalf of one
// shop. Category names are resolved to catalog ids through a mapping
// fetched once at construction.
type CatalogImporter struct {
	client      CatalogClient
	shopID      int
	categoryIDs map[string]int64
}

// NewCatalogImporter returns new CatalogImporter. It fetches catalog
// categories eagerly, so a misconfigured catalog fails fast.
func NewCatalogImporter(ctx context.Context, client CatalogClient, shopID int) (*CatalogImporter, error) {
	categories, err := client.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("can't fetch catalog categories: %w", err)
	}

	return &CatalogImporter{
		client: client,
		shopID: shopID,
		categoryIDs: lo.SliceToMap(categories, func(c catalogapi.Category) (string, int64) {
			return c.Name, c.ID
		}),
	}, nil
}

// Import registers provided product in the catalog.
func (i *CatalogImporter) Import(ctx context.Context, product models.ImportedProduct) error {
	categoryID, ok := i.categoryIDs[product.Category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, product.Category)
	}

	payload := toPayload(product, categoryID, i.shopID)
	if err := i.client.CreateProduct(ctx, payload); err != nil {
		return fmt.Errorf("can't create catalog product: %w", err)
	}

	return nil
}

// toPayload maps extracted product data to a catalog API payload.
func toPayload(product models.ImportedProduct, categoryID int64, shopID int) catalogapi.ProductPayload {
	unit, amount := ConvertUnit(product.Unit, product.Quantity)

	brand := product.Brand
	if brand == "" {
		brand = "unknown"
	}

	return catalogapi.ProductPayload{
		Product: catalogapi.ProductDetail{
			Barcode:          product.Barcode,
			Name:             product.Name,
			Amount:           amount,
			Brand:            brand,
			Unit:             string(unit),
			CategoryID:       categoryID,
			SourceImage:      product.SourceImageID,
			IsBarcodeChecked: product.BarcodeVerified,
		},
		Price:  product.Price,
		ShopID: shopID,
	}
}
