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

type sequenceRepository struct {
	q *db.Queries
}

func NewSequence(pool *pgxpool.Pool) port.SequenceRepository {
	return &sequenceRepository{
		q: db.New(pool),
	}
}

func NewSequenceWithTx(tx pgx.Tx) port.SequenceRepository {
	return &sequenceRepository{
		q: db.New(tx),
	}
}

func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%w: counter name is empty", domain.ErrValidation)
	}

	value, err := r.q.NextCounterValue(ctx, name)
	if err != nil {
		return 0, fmt.Errorf("q.NextCounterValue[%s]: %w", name, err)
	}

	return value, nil
}
