package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
)

// CartService validates cart mutations against the catalog. Stock checks here are
// advisory, nothing is reserved until checkout.
type CartService struct {
	store     port.CartStore
	catalog   port.ProductReader
	customers port.CustomerReader
}

func NewCartService(store port.CartStore, catalog port.ProductReader, customers port.CustomerReader) (*CartService, error) {
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if catalog == nil {
		return nil, errors.New("catalog is nil")
	}
	if customers == nil {
		return nil, errors.New("customers is nil")
	}

	return &CartService{
		store:     store,
		catalog:   catalog,
		customers: customers,
	}, nil
}

// Add merges qty into the existing line of the product.
func (s *CartService) Add(ctx context.Context, customerID, productID string, qty int) (domain.Cart, error) {
	if qty <= 0 {
		return domain.Cart{}, fmt.Errorf("%w: quantity[%d] must be positive", domain.ErrValidation, qty)
	}

	if err := s.checkCustomer(ctx, customerID); err != nil {
		return domain.Cart{}, err
	}

	product, err := s.availableProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.store.Update(ctx, customerID, func(lines map[string]int) error {
		inCart := lines[productID]
		if qty > product.QuantityAvailable-inCart {
			return fmt.Errorf("product[%s] has %d, in cart %d, requested %d more: %w",
				product.ProductID, product.QuantityAvailable, inCart, qty, domain.ErrLimitExceeded)
		}

		lines[productID] = inCart + qty
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("store.Update: %w", err)
	}

	return cart, nil
}

// Update replaces the quantity of a line already in the cart, qty <= 0 removes it.
func (s *CartService) Update(ctx context.Context, customerID, productID string, qty int) (domain.Cart, error) {
	if err := s.checkCustomer(ctx, customerID); err != nil {
		return domain.Cart{}, err
	}

	if qty <= 0 {
		return s.Remove(ctx, customerID, productID)
	}

	product, err := s.availableProduct(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.store.Update(ctx, customerID, func(lines map[string]int) error {
		if _, ok := lines[productID]; !ok {
			return lineNotFound(productID)
		}
		if qty > product.QuantityAvailable {
			return limitExceeded(product, qty)
		}

		lines[productID] = qty
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("store.Update: %w", err)
	}

	return cart, nil
}

func (s *CartService) Remove(ctx context.Context, customerID, productID string) (domain.Cart, error) {
	cart, err := s.store.Update(ctx, customerID, func(lines map[string]int) error {
		if _, ok := lines[productID]; !ok {
			return lineNotFound(productID)
		}

		delete(lines, productID)
		return nil
	})
	if err != nil {
		return domain.Cart{}, fmt.Errorf("store.Update: %w", err)
	}

	return cart, nil
}

// Get prices every line from the catalog at read time. Lines whose product
// disappeared from the catalog are skipped.
func (s *CartService) Get(ctx context.Context, customerID string) (domain.CartView, error) {
	view := domain.CartView{CustomerID: customerID}

	cart, err := s.store.Get(ctx, customerID)
	if err != nil {
		return view, fmt.Errorf("store.Get: %w", err)
	}

	for _, productID := range slices.Sorted(maps.Keys(cart.Lines)) {
		product, err := s.catalog.GetProduct(ctx, productID)
		if errors.Is(err, domain.ErrNotFound) {
			logging.FromCtx(ctx).Warn("cart line skipped, product is gone",
				"method", "CartService.Get", "customerID", customerID, "productID", productID)
			continue
		}
		if err != nil {
			return view, fmt.Errorf("catalog.GetProduct: %w", err)
		}

		view.Lines = append(view.Lines, domain.CartLine{
			ProductID:   product.ProductID,
			Name:        product.Name,
			Category:    product.Category,
			Description: product.Description,
			UnitPrice:   product.Price,
			Quantity:    cart.Lines[productID],
		})
	}

	return view, nil
}

func (s *CartService) Clear(ctx context.Context, customerID string) error {
	if err := s.store.Clear(ctx, customerID); err != nil {
		return fmt.Errorf("store.Clear: %w", err)
	}
	return nil
}

func (s *CartService) checkCustomer(ctx context.Context, customerID string) error {
	customer, err := s.customers.GetCustomer(ctx, customerID)
	if err != nil {
		return fmt.Errorf("customers.GetCustomer: %w", err)
	}
	if !customer.Active() {
		return fmt.Errorf("customer[%s]: %w", customerID, domain.ErrUnavailable)
	}
	return nil
}

func (s *CartService) availableProduct(ctx context.Context, productID string) (domain.Product, error) {
	product, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return product, fmt.Errorf("catalog.GetProduct: %w", err)
	}
	if !product.Available() {
		return product, fmt.Errorf("product[%s]: %w", productID, domain.ErrUnavailable)
	}
	return product, nil
}

func limitExceeded(product domain.Product, requested int) error {
	return fmt.Errorf("product[%s] has %d, requested %d: %w",
		product.ProductID, product.QuantityAvailable, requested, domain.ErrLimitExceeded)
}

func lineNotFound(productID string) error {
	return fmt.Errorf("cart line[%s]: %w", productID, domain.ErrNotFound)
}
