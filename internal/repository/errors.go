package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/nikolayk812/storefront/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"

	productQuantityCheck = "products_quantity_available_check"
)

// translateError maps driver errors onto domain error kinds, other errors pass through.
func translateError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		return fmt.Errorf("%w: %s: %w", domain.ErrConflict, pgErr.ConstraintName, err)
	case pgForeignKeyViolation:
		return fmt.Errorf("%w: %s: %w", domain.ErrNotFound, pgErr.ConstraintName, err)
	case pgCheckViolation:
		if pgErr.ConstraintName == productQuantityCheck {
			return fmt.Errorf("%w: %w", domain.ErrInsufficientStock, err)
		}
		return fmt.Errorf("%w: %s: %w", domain.ErrValidation, pgErr.ConstraintName, err)
	}

	return err
}
