package port

import (
	"context"

	"github.com/nikolayk812/storefront/internal/domain"
)

type FeedbackRepository interface {
	InsertFeedback(ctx context.Context, feedback domain.Feedback) (domain.Feedback, error)
	ListProductFeedback(ctx context.Context, productID string) ([]domain.Feedback, error)
}
