package service

import (
	"context"
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/validation"
)

type CustomerService struct {
	uow       port.UnitOfWork
	customers port.CustomerReader
	ids       *idgen.Generator
	validate  *validatorv10.Validate
}

func NewCustomerService(uow port.UnitOfWork, customers port.CustomerReader, ids *idgen.Generator) (*CustomerService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if customers == nil {
		return nil, errors.New("customers is nil")
	}
	if ids == nil {
		return nil, errors.New("ids is nil")
	}

	return &CustomerService{
		uow:       uow,
		customers: customers,
		ids:       ids,
		validate:  validation.New(),
	}, nil
}

// Register creates an ACTIVE customer with a CUST-yyyymmdd-NNNN id.
// A taken email fails with domain.ErrConflict.
func (s *CustomerService) Register(ctx context.Context, nc domain.NewCustomer) (domain.Customer, error) {
	log := logging.FromCtx(ctx).With("method", "CustomerService.Register")

	if err := validation.Check(s.validate, nc); err != nil {
		return domain.Customer{}, fmt.Errorf("validation.Check: %w", err)
	}

	var customer domain.Customer

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		customerID, err := s.ids.CustomerID(ctx, repos.Sequences, repos.Customers.CustomerIDExists)
		if err != nil {
			return fmt.Errorf("ids.CustomerID: %w", err)
		}

		customer, err = repos.Customers.InsertCustomer(ctx, domain.Customer{
			CustomerID: customerID,
			Name:       nc.Name,
			Email:      nc.Email,
			Phone:      nc.Phone,
			Address:    nc.Address,
			Status:     domain.CustomerStatusActive,
		})
		if err != nil {
			return fmt.Errorf("repos.Customers.InsertCustomer: %w", err)
		}

		return nil
	})
	if err != nil {
		logFailure(log, "registration", err)
		return domain.Customer{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	log.Info("customer registered", "customerID", customer.CustomerID)
	return customer, nil
}

func (s *CustomerService) Get(ctx context.Context, customerID string) (domain.Customer, error) {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("customers.GetCustomer: %w", err)
	}
	return customer, nil
}
