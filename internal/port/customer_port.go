package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type CustomerRepository interface {
	GetCustomer(ctx context.Context, customerID string) (domain.Customer, error)
	InsertCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error)
	CustomerIDExists(ctx context.Context, customerID string) (bool, error)
}

type CustomerReader interface {
	GetCustomer(ctx context.Context, customerID string) (domain.Customer, error)
}
