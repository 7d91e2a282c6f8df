package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CatalogRepository interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
	// LockProducts returns the requested products ordered by id, row-locked.
	LockProducts(ctx context.Context, productIDs []string) ([]domain.Product, error)

	InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error)

	// AdjustQuantity adds delta to the stock of a product and returns the new quantity.
	// A delta that would drive stock negative fails with domain.ErrInsufficientStock.
	AdjustQuantity(ctx context.Context, productID string, delta int) (int, error)
}

// ProductReader is the read-only slice of the catalog used by the cart.
type ProductReader interface {
	GetProduct(ctx context.Context, productID string) (domain.Product, error)
}
