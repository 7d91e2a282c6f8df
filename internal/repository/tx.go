package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/port"
)

// withTx executes fn within a transaction if the repository was created with a pool,
// or uses the existing transaction if the repository was created with a transaction
func withTx[T any](ctx context.Context, dbtx db.DBTX, fn func(q *db.Queries) (T, error)) (T, error) {
	return inTx(ctx, dbtx, func(tx pgx.Tx) (T, error) {
		return fn(db.New(tx))
	})
}

func inTx[T any](ctx context.Context, dbtx db.DBTX, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	if tx, ok := dbtx.(pgx.Tx); ok {
		return fn(tx)
	}

	pool, ok := dbtx.(*pgxpool.Pool)
	if !ok {
		return zero, fmt.Errorf("dbtx is neither pgx.Tx nor *pgxpool.Pool: %T", dbtx)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return zero, fmt.Errorf("pool.Begin: %w", err)
	}

	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

type unitOfWork struct {
	pool *pgxpool.Pool
}

func NewUnitOfWork(pool *pgxpool.Pool) (port.UnitOfWork, error) {
	if pool == nil {
		return nil, errors.New("pool is nil")
	}

	return &unitOfWork{pool: pool}, nil
}

func (u *unitOfWork) WithinTx(ctx context.Context, fn func(repos port.Repositories) error) error {
	_, err := inTx(ctx, u.pool, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(NewRepositoriesWithTx(tx))
	})
	return err
}

// NewRepositoriesWithTx binds every repository to tx.
func NewRepositoriesWithTx(tx pgx.Tx) port.Repositories {
	return port.Repositories{
		Catalog:   NewCatalogWithTx(tx),
		Customers: NewCustomerWithTx(tx),
		Orders:    NewOrderWithTx(tx),
		Payments:  NewPaymentAttemptWithTx(tx),
		Invoices:  NewInvoiceWithTx(tx),
		Sequences: NewSequenceWithTx(tx),
		Feedback:  NewFeedbackWithTx(tx),
	}
}
