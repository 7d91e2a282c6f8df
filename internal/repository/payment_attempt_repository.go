package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type paymentAttemptRepository struct {
	q *db.Queries
}

func NewPaymentAttempt(pool *pgxpool.Pool) port.PaymentAttemptRepository {
	return &paymentAttemptRepository{
		q: db.New(pool),
	}
}

func NewPaymentAttemptWithTx(tx pgx.Tx) port.PaymentAttemptRepository {
	return &paymentAttemptRepository{
		q: db.New(tx),
	}
}

func (r *paymentAttemptRepository) InsertAttempt(ctx context.Context, attempt domain.PaymentAttempt) (domain.PaymentAttempt, error) {
	if attempt.OrderID == "" {
		return attempt, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}

	row, err := r.q.InsertPaymentAttempt(ctx, db.InsertPaymentAttemptParams{
		OrderID:       attempt.OrderID,
		Mode:          string(attempt.Mode),
		Payload:       emptyJSONIfNil(attempt.Payload),
		Status:        string(attempt.Status),
		TransactionID: attempt.TransactionID,
	})
	if err != nil {
		return attempt, fmt.Errorf("q.InsertPaymentAttempt: %w", translateError(err))
	}

	attempt.ID = row.ID
	attempt.CreatedAt = row.CreatedAt

	return attempt, nil
}

// ListAttempts returns the attempts of an order oldest first.
func (r *paymentAttemptRepository) ListAttempts(ctx context.Context, orderID string) ([]domain.PaymentAttempt, error) {
	rows, err := r.q.ListPaymentAttempts(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("q.ListPaymentAttempts: %w", err)
	}

	attempts := make([]domain.PaymentAttempt, 0, len(rows))
	for _, row := range rows {
		mode, err := domain.ToPaymentMode(row.Mode)
		if err != nil {
			return nil, fmt.Errorf("domain.ToPaymentMode[%s]: %w", row.Mode, err)
		}

		attempts = append(attempts, domain.PaymentAttempt{
			ID:            row.ID,
			OrderID:       row.OrderID,
			Mode:          mode,
			Payload:       row.Payload,
			Status:        domain.PaymentStatus(row.Status),
			TransactionID: row.TransactionID,
			CreatedAt:     row.CreatedAt,
		})
	}

	return attempts, nil
}
