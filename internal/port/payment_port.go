package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

// PaymentAttemptRepository is append-only.
type PaymentAttemptRepository interface {
	InsertAttempt(ctx context.Context, attempt domain.PaymentAttempt) (domain.PaymentAttempt, error)
	ListAttempts(ctx context.Context, orderID string) ([]domain.PaymentAttempt, error)
}

type InvoiceRepository interface {
	GetInvoice(ctx context.Context, orderID string) (domain.Invoice, error)
	InsertInvoice(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error)
	UpdateTransactionID(ctx context.Context, orderID, transactionID string) (domain.Invoice, error)
}

// Settler charges the customer. A nil error means the money moved.
type Settler interface {
	Settle(ctx context.Context, order domain.Order, details domain.PaymentDetails) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Release(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}
