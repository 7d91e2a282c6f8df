package domain

import (
	"fmt"
	"time"
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
)

type ProductCategory string

// remember to add new categories to the validProductCategories map
const (
	CategoryElectronics ProductCategory = "ELECTRONICS"
	CategoryClothing    ProductCategory = "CLOTHING"
	CategoryBooks       ProductCategory = "BOOKS"
	CategoryHome        ProductCategory = "HOME"
	CategorySports      ProductCategory = "SPORTS"
	CategoryToys        ProductCategory = "TOYS"
	CategoryFood        ProductCategory = "FOOD"
	CategoryOther       ProductCategory = "OTHER"
)

var validProductCategories = map[ProductCategory]struct{}{
	CategoryElectronics: {},
	CategoryClothing:    {},
	CategoryBooks:       {},
	CategoryHome:        {},
	CategorySports:      {},
	CategoryToys:        {},
	CategoryFood:        {},
	CategoryOther:       {},
}

func ToProductCategory(s string) (ProductCategory, error) {
	c := ProductCategory(s)
	if _, ok := validProductCategories[c]; ok {
		return c, nil
	}

	return "", fmt.Errorf("%w: invalid product category[%s]", ErrValidation, s)
}

func ToProductStatus(s string) (ProductStatus, error) {
	switch ProductStatus(s) {
	case ProductStatusActive, ProductStatusInactive:
		return ProductStatus(s), nil
	}

	return "", fmt.Errorf("%w: invalid product status[%s]", ErrValidation, s)
}

// Product is owned by the catalog, the core only reads it and adjusts QuantityAvailable.
type Product struct {
	ProductID         string
	Name              string
	Category          ProductCategory
	Description       string
	Price             Money
	QuantityAvailable int
	Status            ProductStatus
	SoftDeleted       bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) Available() bool {
	return p.Status == ProductStatusActive && !p.SoftDeleted
}

type NewProduct struct {
	Name              string
	Category          ProductCategory
	Description       string
	Price             Money
	QuantityAvailable int
}

func (p NewProduct) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: name is empty", ErrValidation)
	}
	if _, ok := validProductCategories[p.Category]; !ok {
		return fmt.Errorf("%w: invalid product category[%s]", ErrValidation, p.Category)
	}
	if !p.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive", ErrValidation)
	}
	if p.QuantityAvailable < 0 {
		return fmt.Errorf("%w: quantity available is negative", ErrValidation)
	}

	return nil
}
