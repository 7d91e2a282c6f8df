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

type customerRepository struct {
	q *db.Queries
}

func NewCustomer(pool *pgxpool.Pool) port.CustomerRepository {
	return &customerRepository{
		q: db.New(pool),
	}
}

func NewCustomerWithTx(tx pgx.Tx) port.CustomerRepository {
	return &customerRepository{
		q: db.New(tx),
	}
}

func (r *customerRepository) GetCustomer(ctx context.Context, customerID string) (domain.Customer, error) {
	var c domain.Customer

	if customerID == "" {
		return c, fmt.Errorf("%w: customerID is empty", domain.ErrValidation)
	}

	dbCustomer, err := r.q.GetCustomer(ctx, customerID)
	if err != nil {
		return c, fmt.Errorf("q.GetCustomer[%s]: %w", customerID, translateError(err))
	}

	c, err = mapDBCustomerToDomain(dbCustomer)
	if err != nil {
		return c, fmt.Errorf("mapDBCustomerToDomain: %w", err)
	}

	return c, nil
}

func (r *customerRepository) InsertCustomer(ctx context.Context, customer domain.Customer) (domain.Customer, error) {
	var c domain.Customer

	if customer.CustomerID == "" {
		return c, fmt.Errorf("%w: customerID is empty", domain.ErrValidation)
	}

	address, err := customer.Address.MarshalSnapshot()
	if err != nil {
		return c, fmt.Errorf("customer.Address.MarshalSnapshot: %w", err)
	}

	status := customer.Status
	if status == "" {
		status = domain.CustomerStatusActive
	}

	dbCustomer, err := r.q.InsertCustomer(ctx, db.InsertCustomerParams{
		CustomerID: customer.CustomerID,
		Name:       customer.Name,
		Email:      customer.Email,
		Phone:      customer.Phone,
		Address:    address,
		Status:     string(status),
	})
	if err != nil {
		return c, fmt.Errorf("q.InsertCustomer: %w", translateError(err))
	}

	c, err = mapDBCustomerToDomain(dbCustomer)
	if err != nil {
		return c, fmt.Errorf("mapDBCustomerToDomain: %w", err)
	}

	return c, nil
}

func (r *customerRepository) CustomerIDExists(ctx context.Context, customerID string) (bool, error) {
	exists, err := r.q.CustomerIDExists(ctx, customerID)
	if err != nil {
		return false, fmt.Errorf("q.CustomerIDExists: %w", err)
	}
	return exists, nil
}

func mapDBCustomerToDomain(dbCustomer db.Customer) (domain.Customer, error) {
	address, err := domain.UnmarshalAddressSnapshot(dbCustomer.Address)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("domain.UnmarshalAddressSnapshot: %w", err)
	}

	return domain.Customer{
		CustomerID: dbCustomer.CustomerID,
		Name:       dbCustomer.Name,
		Email:      dbCustomer.Email,
		Phone:      dbCustomer.Phone,
		Address:    address,
		Status:     domain.CustomerStatus(dbCustomer.Status),
		CreatedAt:  dbCustomer.CreatedAt,
		UpdatedAt:  dbCustomer.UpdatedAt,
	}, nil
}
