package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

type catalogRepository struct {
	q *db.Queries
}

func NewCatalog(pool *pgxpool.Pool) port.CatalogRepository {
	return &catalogRepository{
		q: db.New(pool),
	}
}

func NewCatalogWithTx(tx pgx.Tx) port.CatalogRepository {
	return &catalogRepository{
		q: db.New(tx),
	}
}

func (r *catalogRepository) GetProduct(ctx context.Context, productID string) (domain.Product, error) {
	var p domain.Product

	if productID == "" {
		return p, fmt.Errorf("%w: productID is empty", domain.ErrValidation)
	}

	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return p, fmt.Errorf("q.GetProduct[%s]: %w", productID, translateError(err))
	}

	product, err := mapDBProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return product, nil
}

func (r *catalogRepository) LockProducts(ctx context.Context, productIDs []string) ([]domain.Product, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	ids := lo.Uniq(productIDs)
	slices.Sort(ids)

	dbProducts, err := r.q.GetProductsForUpdate(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.GetProductsForUpdate: %w", err)
	}

	if len(dbProducts) != len(ids) {
		found := lo.Map(dbProducts, func(p db.Product, _ int) string { return p.ProductID })
		missing, _ := lo.Difference(ids, found)
		return nil, fmt.Errorf("products%v: %w", missing, domain.ErrNotFound)
	}

	products := make([]domain.Product, 0, len(dbProducts))
	for _, dbProduct := range dbProducts {
		product, err := mapDBProductToDomain(dbProduct)
		if err != nil {
			return nil, fmt.Errorf("mapDBProductToDomain: %w", err)
		}
		products = append(products, product)
	}

	return products, nil
}

func (r *catalogRepository) InsertProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	var p domain.Product

	if product.ProductID == "" {
		return p, fmt.Errorf("%w: productID is empty", domain.ErrValidation)
	}

	status := product.Status
	if status == "" {
		status = domain.ProductStatusActive
	}

	dbProduct, err := r.q.InsertProduct(ctx, db.InsertProductParams{
		ProductID:         product.ProductID,
		Name:              product.Name,
		Category:          string(product.Category),
		Description:       product.Description,
		PriceAmount:       product.Price.Amount,
		PriceCurrency:     product.Price.Currency.String(),
		QuantityAvailable: int32(product.QuantityAvailable),
		Status:            string(status),
	})
	if err != nil {
		return p, fmt.Errorf("q.InsertProduct: %w", translateError(err))
	}

	p, err = mapDBProductToDomain(dbProduct)
	if err != nil {
		return p, fmt.Errorf("mapDBProductToDomain: %w", err)
	}

	return p, nil
}

func (r *catalogRepository) AdjustQuantity(ctx context.Context, productID string, delta int) (int, error) {
	if productID == "" {
		return 0, fmt.Errorf("%w: productID is empty", domain.ErrValidation)
	}

	quantity, err := r.q.AdjustProductQuantity(ctx, db.AdjustProductQuantityParams{
		Delta:     int32(delta),
		ProductID: productID,
	})
	if err == nil {
		return int(quantity), nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("q.AdjustProductQuantity: %w", translateError(err))
	}

	// no row updated: either the product is missing or the stock is too low
	dbProduct, err := r.q.GetProduct(ctx, productID)
	if err != nil {
		return 0, fmt.Errorf("q.GetProduct[%s]: %w", productID, translateError(err))
	}

	return 0, fmt.Errorf("product[%s] has %d, requested %d: %w",
		productID, dbProduct.QuantityAvailable, -delta, domain.ErrInsufficientStock)
}

func mapDBProductToDomain(dbProduct db.Product) (domain.Product, error) {
	var p domain.Product

	price, err := toMoney(dbProduct.PriceAmount, dbProduct.PriceCurrency)
	if err != nil {
		return p, fmt.Errorf("toMoney: %w", err)
	}

	category, err := domain.ToProductCategory(dbProduct.Category)
	if err != nil {
		return p, fmt.Errorf("domain.ToProductCategory[%s]: %w", dbProduct.Category, err)
	}

	status, err := domain.ToProductStatus(dbProduct.Status)
	if err != nil {
		return p, fmt.Errorf("domain.ToProductStatus[%s]: %w", dbProduct.Status, err)
	}

	return domain.Product{
		ProductID:         dbProduct.ProductID,
		Name:              dbProduct.Name,
		Category:          category,
		Description:       dbProduct.Description,
		Price:             price,
		QuantityAvailable: int(dbProduct.QuantityAvailable),
		Status:            status,
		SoftDeleted:       dbProduct.SoftDeleted,
		CreatedAt:         dbProduct.CreatedAt,
		UpdatedAt:         dbProduct.UpdatedAt,
	}, nil
}
