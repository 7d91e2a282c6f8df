package domain

// Cart is the uncommitted selection of a customer, product id to quantity.
type Cart struct {
	CustomerID string
	Lines      map[string]int
}

func (c Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartLine is a cart entry priced from the catalog at read time.
type CartLine struct {
	ProductID   string
	Name        string
	Category    ProductCategory
	Description string
	UnitPrice   Money
	Quantity    int
}

func (l CartLine) Subtotal() Money {
	return l.UnitPrice.Mul(l.Quantity)
}

type CartView struct {
	CustomerID string
	Lines      []CartLine
}

// Total fails on mixed currencies.
func (v CartView) Total() (Money, error) {
	if len(v.Lines) == 0 {
		return Money{}, ErrEmptyCart
	}

	total := ZeroMoney(v.Lines[0].UnitPrice.Currency)
	for _, line := range v.Lines {
		var err error
		total, err = total.Add(line.Subtotal())
		if err != nil {
			return Money{}, err
		}
	}

	return total, nil
}
