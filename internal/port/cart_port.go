package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CartStore interface {
	Get(ctx context.Context, customerID string) (domain.Cart, error)
	// Update runs fn against the customer's lines under the customer's lock.
	// Changes made by fn are kept only if it returns nil.
	Update(ctx context.Context, customerID string, fn func(lines map[string]int) error) (domain.Cart, error)
	Clear(ctx context.Context, customerID string) error
}
