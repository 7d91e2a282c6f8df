package config

import (
	"fmt"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"

	"github.com/nikolayk812/storefront/internal/domain"
)

type Seed struct {
	Products []SeedProduct `koanf:"products"`
}

type SeedProduct struct {
	Name        string `koanf:"name"`
	Description string `koanf:"description"`
	Category    string `koanf:"category"`
	Price       string `koanf:"price"`
	Quantity    int    `koanf:"quantity"`
}

func LoadSeed(path string) (Seed, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return Seed{}, fmt.Errorf("load %s: %w", path, err)
	}

	var seed Seed
	if err := k.Unmarshal("", &seed); err != nil {
		return Seed{}, fmt.Errorf("unmarshal: %w", err)
	}

	return seed, nil
}

// NewProducts converts the seed into validated catalog entries priced in cur.
// A missing category defaults to OTHER.
func (s Seed) NewProducts(cur currency.Unit) ([]domain.NewProduct, error) {
	products := make([]domain.NewProduct, 0, len(s.Products))

	for i, sp := range s.Products {
		price, err := decimal.NewFromString(sp.Price)
		if err != nil {
			return nil, fmt.Errorf("products[%d].price[%s]: %w", i, sp.Price, err)
		}

		category := domain.CategoryOther
		if sp.Category != "" {
			category, err = domain.ToProductCategory(sp.Category)
			if err != nil {
				return nil, fmt.Errorf("products[%d]: %w", i, err)
			}
		}

		np := domain.NewProduct{
			Name:              sp.Name,
			Category:          category,
			Description:       sp.Description,
			Price:             domain.NewMoney(price, cur),
			QuantityAvailable: sp.Quantity,
		}
		if err := np.Validate(); err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}

		products = append(products, np)
	}

	return products, nil
}
