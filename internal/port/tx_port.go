package port

import (
	"context"
)

type SequenceRepository interface {
	// Next increments the named counter and returns the new value, starting at 1.
	Next(ctx context.Context, name string) (int64, error)
}

// Repositories are bound to one transaction.
type Repositories struct {
	Catalog   CatalogRepository
	Customers CustomerRepository
	Orders    OrderRepository
	Payments  PaymentAttemptRepository
	Invoices  InvoiceRepository
	Sequences SequenceRepository
	Feedback  FeedbackRepository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(repos Repositories) error) error
}
