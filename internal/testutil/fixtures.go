package testutil

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// CurrencyComparer compares currency units by ISO code.
var CurrencyComparer = cmp.Comparer(func(x, y currency.Unit) bool {
	return x.String() == y.String()
})

func FakeAddress() domain.Address {
	return domain.Address{
		Line1:   gofakeit.Street(),
		City:    gofakeit.City(),
		State:   gofakeit.State(),
		Country: gofakeit.Country(),
		ZipCode: gofakeit.Zip(),
	}
}

// FakeProduct returns an active product with a unique name and the given stock.
func FakeProduct(productID string, quantity int) domain.Product {
	suffix := strings.ToUpper(uuid.NewString()[:8])

	return domain.Product{
		ProductID:         productID,
		Name:              fmt.Sprintf("%.30s %s", gofakeit.ProductName(), suffix),
		Category:          domain.CategoryElectronics,
		Description:       fmt.Sprintf("%.150s", gofakeit.ProductDescription()),
		Price:             domain.NewMoney(decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2), currency.USD),
		QuantityAvailable: quantity,
		Status:            domain.ProductStatusActive,
	}
}

func FakeCustomer(customerID string) domain.Customer {
	return domain.Customer{
		CustomerID: customerID,
		Name:       gofakeit.Name(),
		Email:      strings.ToLower(uuid.NewString()[:8]) + "." + gofakeit.Email(),
		Phone:      gofakeit.Phone(),
		Address:    FakeAddress(),
		Status:     domain.CustomerStatusActive,
	}
}

func ValidCard() domain.PaymentDetails {
	return domain.PaymentDetails{
		Mode:           domain.PaymentModeCreditCard,
		CardNumber:     gofakeit.CreditCardNumber(nil),
		CardHolderName: gofakeit.Name(),
		ExpiryDate:     gofakeit.CreditCardExp(),
		CVV:            gofakeit.CreditCardCvv(),
	}
}
