package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
)

type CatalogService struct {
	uow     port.UnitOfWork
	catalog port.ProductReader
	ids     *idgen.Generator
}

func NewCatalogService(uow port.UnitOfWork, catalog port.ProductReader, ids *idgen.Generator) (*CatalogService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if ids == nil {
		return nil, errors.New("ids is nil")
	}

	return &CatalogService{
		uow:     uow,
		catalog: catalog,
		ids:     ids,
	}, nil
}

// AddProduct creates an ACTIVE product. Names are unique, a taken name fails with
// domain.ErrConflict and does not consume a product id.
func (s *CatalogService) AddProduct(ctx context.Context, np domain.NewProduct) (domain.Product, error) {
	log := logging.FromCtx(ctx).With("method", "CatalogService.AddProduct")

	if err := np.Validate(); err != nil {
		return domain.Product{}, fmt.Errorf("np.Validate: %w", err)
	}

	var product domain.Product

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		productID, err := s.ids.ProductID(ctx, repos.Sequences)
		if err != nil {
			return fmt.Errorf("ids.ProductID: %w", err)
		}

		product, err = repos.Catalog.InsertProduct(ctx, domain.Product{
			ProductID:         productID,
			Name:              np.Name,
			Category:          np.Category,
			Description:       np.Description,
			Price:             np.Price,
			QuantityAvailable: np.QuantityAvailable,
			Status:            domain.ProductStatusActive,
		})
		if err != nil {
			return fmt.Errorf("repos.Catalog.InsertProduct: %w", err)
		}

		return nil
	})
	if err != nil {
		logFailure(log, "product creation", err)
		return domain.Product{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	log.Info("product added", "productID", product.ProductID, "name", product.Name)
	return product, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, fmt.Errorf("catalog.GetProduct: %w", err)
	}
	return product, nil
}
