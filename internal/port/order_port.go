package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type OrderRepository interface {
	GetOrder(ctx context.Context, orderID string) (domain.Order, error)
	// LockOrder reads the order with a row lock held until the surrounding transaction ends.
	LockOrder(ctx context.Context, orderID string) (domain.Order, error)

	SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error)

	InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) (domain.Order, error)

	OrderIDExists(ctx context.Context, orderID string) (bool, error)
}
