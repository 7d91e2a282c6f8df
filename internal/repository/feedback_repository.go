package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type feedbackRepository struct {
	q *db.Queries
}

func NewFeedback(pool *pgxpool.Pool) port.FeedbackRepository {
	return &feedbackRepository{
		q: db.New(pool),
	}
}

func NewFeedbackWithTx(tx pgx.Tx) port.FeedbackRepository {
	return &feedbackRepository{
		q: db.New(tx),
	}
}

func (r *feedbackRepository) InsertFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error) {
	if feedback.OrderID == "" {
		return domain.Feedback{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}
	if feedback.ProductID == "" {
		return domain.Feedback{}, fmt.Errorf("%w: productID is empty", domain.ErrValidation)
	}
	if feedback.CustomerID == "" {
		return domain.Feedback{}, fmt.Errorf("%w: customerID is empty", domain.ErrValidation)
	}

	dbFeedback, err := r.q.InsertFeedback(ctx, db.InsertFeedbackParams{
		OrderID:     feedback.OrderID,
		ProductID:   feedback.ProductID,
		CustomerID:  feedback.CustomerID,
		Rating:      int32(feedback.Rating),
		Description: feedback.Description,
	})
	if err != nil {
		return domain.Feedback{}, fmt.Errorf("q.InsertFeedback: %w", translateError(err))
	}

	return mapDBFeedbackToDomain(dbFeedback), nil
}

func (r *feedbackRepository) ListProductFeedback(ctx context.Context, productID string) ([]domain.Feedback, error) {
	rows, err := r.q.ListFeedbackByProductID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("q.ListFeedbackByProductID[%s]: %w", productID, translateError(err))
	}

	return lo.Map(rows, func(row db.Feedback, _ int) domain.Feedback {
		return mapDBFeedbackToDomain(row)
	}), nil
}

func mapDBFeedbackToDomain(dbFeedback db.Feedback) domain.Feedback {
	return domain.Feedback{
		ID:          dbFeedback.ID,
		OrderID:     dbFeedback.OrderID,
		ProductID:   dbFeedback.ProductID,
		CustomerID:  dbFeedback.CustomerID,
		Rating:      int(dbFeedback.Rating),
		Description: dbFeedback.Description,
		CreatedAt:   dbFeedback.CreatedAt,
	}
}
