package service_test

import (
	"errors"
	"regexp"
	"time"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var orderIDPattern = regexp.MustCompile(`^ORD-\d{14}-[0-9A-F]{8}$`)

func (suite *storefrontSuite) TestCheckout() {
	t := suite.T()
	ctx := t.Context()

	suite.addToCart(suite.alice.CustomerID, suite.p1.ProductID, 3)
	address := testutil.FakeAddress()

	order, err := suite.orders.Checkout(ctx, suite.alice.CustomerID, address)
	require.NoError(t, err)

	assert.Regexp(t, orderIDPattern, order.OrderID)
	assert.Equal(t, domain.OrderStatusConfirmed, order.Status)
	assert.Equal(t, domain.DefaultPaymentMode, order.PaymentMode)
	assert.Equal(t, address, order.AddressSnapshot)
	assert.False(t, order.Paid())
	assert.True(t, decimal.RequireFromString("59.97").Equal(order.Total.Amount), order.Total.String())

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, suite.p1.ProductID, item.ProductID)
	assert.Equal(t, suite.p1.Name, item.ProductName)
	assert.Equal(t, suite.p1.Category, item.Category)
	assert.Equal(t, suite.p1.Description, item.Description)
	assert.True(t, suite.p1.Price.Amount.Equal(item.UnitPrice.Amount))
	assert.Equal(t, 3, item.Quantity)

	assert.Equal(t, 7, suite.stock(suite.p1.ProductID))

	// the cart survives until the order is paid
	c, err := suite.store.Get(ctx, suite.alice.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{suite.p1.ProductID: 3}, c.Lines)

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, stored.OrderID)
	assert.Len(t, stored.Items, 1)

	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Checkouts.WithLabelValues(metrics.OutcomeSuccess)), 0)
}

func (suite *storefrontSuite) TestCheckout_SnapshotSurvivesCatalogChanges() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	suite.exec(`UPDATE products SET name = 'renamed', price_amount = 1.00 WHERE product_id = $1`, suite.p1.ProductID)

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, suite.p1.Name, stored.Items[0].ProductName)
	assert.True(t, suite.p1.Price.Amount.Equal(stored.Items[0].UnitPrice.Amount))
}

func (suite *storefrontSuite) TestCheckout_DefaultsToCustomerAddress() {
	t := suite.T()

	suite.addToCart(suite.alice.CustomerID, suite.p1.ProductID, 1)

	order, err := suite.orders.Checkout(t.Context(), suite.alice.CustomerID, domain.Address{})
	require.NoError(t, err)
	assert.Equal(t, suite.alice.Address, order.AddressSnapshot)
}

func (suite *storefrontSuite) TestCheckout_EmptyCart() {
	t := suite.T()
	ctx := t.Context()

	_, err := suite.orders.Checkout(ctx, suite.alice.CustomerID, testutil.FakeAddress())
	require.ErrorIs(t, err, domain.ErrEmptyCart)
	require.ErrorIs(t, err, domain.ErrValidation)

	assert.Zero(t, suite.count(`SELECT count(*) FROM orders`))
	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Checkouts.WithLabelValues(metrics.OutcomeRejected)), 0)
}

func (suite *storefrontSuite) TestCheckout_AllOrNothing() {
	tests := []struct {
		name      string
		mutate    func()
		wantErrIs error
	}{
		{
			name: "stock dropped below a line",
			mutate: func() {
				suite.exec(`UPDATE products SET quantity_available = 2 WHERE product_id = $1`, suite.p2.ProductID)
			},
			wantErrIs: domain.ErrInsufficientStock,
		},
		{
			name: "product deactivated",
			mutate: func() {
				suite.exec(`UPDATE products SET status = 'INACTIVE' WHERE product_id = $1`, suite.p2.ProductID)
			},
			wantErrIs: domain.ErrUnavailable,
		},
		{
			name: "product soft deleted",
			mutate: func() {
				suite.exec(`UPDATE products SET soft_deleted = TRUE WHERE product_id = $1`, suite.p2.ProductID)
			},
			wantErrIs: domain.ErrUnavailable,
		},
		{
			name: "customer deactivated",
			mutate: func() {
				suite.exec(`UPDATE customers SET status = 'INACTIVE' WHERE customer_id = $1`, suite.alice.CustomerID)
			},
			wantErrIs: domain.ErrUnavailable,
		},
		{
			name: "mixed currencies",
			mutate: func() {
				suite.exec(`UPDATE products SET price_currency = 'EUR' WHERE product_id = $1`, suite.p2.ProductID)
			},
			wantErrIs: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.NoError(suite.store.Clear(ctx, suite.alice.CustomerID))
			suite.exec(`UPDATE products SET quantity_available = 10, status = 'ACTIVE', soft_deleted = FALSE, price_currency = 'USD' WHERE product_id = $1`, suite.p1.ProductID)
			suite.exec(`UPDATE products SET quantity_available = 5, status = 'ACTIVE', soft_deleted = FALSE, price_currency = 'USD' WHERE product_id = $1`, suite.p2.ProductID)
			suite.exec(`UPDATE customers SET status = 'ACTIVE' WHERE customer_id = $1`, suite.alice.CustomerID)

			suite.addToCart(suite.alice.CustomerID, suite.p1.ProductID, 3)
			suite.addToCart(suite.alice.CustomerID, suite.p2.ProductID, 5)

			tt.mutate()

			_, err := suite.orders.Checkout(ctx, suite.alice.CustomerID, testutil.FakeAddress())
			require.ErrorIs(t, err, tt.wantErrIs)

			assert.Zero(t, suite.count(`SELECT count(*) FROM orders`))
			assert.Zero(t, suite.count(`SELECT count(*) FROM order_items`))
			assert.Equal(t, 10, suite.stock(suite.p1.ProductID), "first line must not be decremented")
		})
	}
}

func (suite *storefrontSuite) TestCheckout_ConcurrentNeverOversells() {
	t := suite.T()
	ctx := t.Context()

	const buyers = 6

	customers := make([]domain.Customer, 0, buyers)
	for range buyers {
		c := suite.register()
		suite.addToCart(c.CustomerID, suite.p1.ProductID, 3)
		customers = append(customers, c)
	}

	var (
		g  errgroup.Group
		ok = make([]bool, buyers)
	)
	for i, c := range customers {
		g.Go(func() error {
			_, err := suite.orders.Checkout(ctx, c.CustomerID, testutil.FakeAddress())
			switch {
			case err == nil:
				ok[i] = true
			case errors.Is(err, domain.ErrInsufficientStock):
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	succeeded := lo.Count(ok, true)
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 1, suite.stock(suite.p1.ProductID))
	assert.Equal(t, 3, suite.count(`SELECT count(*) FROM orders`))
}

func (suite *storefrontSuite) TestCancel() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3, suite.p2.ProductID: 2})
	assert.Equal(t, 7, suite.stock(suite.p1.ProductID))
	assert.Equal(t, 3, suite.stock(suite.p2.ProductID))

	cancelled, err := suite.orders.Cancel(ctx, order.OrderID, suite.alice.CustomerID, "changed my mind")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)
	assert.WithinDuration(t, time.Now(), *cancelled.CancelledAt, time.Minute)
	assert.Equal(t, lo.ToPtr("changed my mind"), cancelled.CancellationReason)

	assert.Equal(t, 10, suite.stock(suite.p1.ProductID))
	assert.Equal(t, 5, suite.stock(suite.p2.ProductID))

	// a second cancel must not restock twice
	_, err = suite.orders.Cancel(ctx, order.OrderID, suite.alice.CustomerID, "again")
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 10, suite.stock(suite.p1.ProductID))

	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Cancellations.WithLabelValues("customer")), 0)
}

func (suite *storefrontSuite) TestCancel_Rejections() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3})

	_, err := suite.orders.Cancel(ctx, order.OrderID, suite.bob.CustomerID, "")
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = suite.orders.Cancel(ctx, "ORD-19700101000000-00000000", suite.alice.CustomerID, "")
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.orders.Update(ctx, order.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusDelivered)})
	require.NoError(t, err)

	_, err = suite.orders.Cancel(ctx, order.OrderID, suite.alice.CustomerID, "")
	require.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusDelivered, stored.Status)
	assert.Nil(t, stored.CancelledAt)
	assert.Equal(t, 7, suite.stock(suite.p1.ProductID))
}

func (suite *storefrontSuite) TestAdminCancel() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p2.ProductID: 5})
	assert.Equal(t, 0, suite.stock(suite.p2.ProductID))

	cancelled, err := suite.orders.AdminCancel(ctx, order.OrderID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, cancelled.Status)
	assert.Nil(t, cancelled.CancellationReason)
	assert.Equal(t, 5, suite.stock(suite.p2.ProductID))

	in := suite.checkout(suite.bob.CustomerID, map[string]int{suite.p2.ProductID: 1})
	_, err = suite.orders.Update(ctx, in.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusInTransit)})
	require.NoError(t, err)

	_, err = suite.orders.AdminCancel(ctx, in.OrderID, "lost")
	require.ErrorIs(t, err, domain.ErrInvalidState)
	assert.Equal(t, 4, suite.stock(suite.p2.ProductID))
}

func (suite *storefrontSuite) TestUpdate() {
	arrival := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	newAddress := testutil.FakeAddress()

	tests := []struct {
		name       string
		from       []domain.OrderStatus
		patch      domain.OrderPatch
		wantStatus domain.OrderStatus
		wantErrIs  error
	}{
		{
			name:       "arrival date and address: ok",
			patch:      domain.OrderPatch{ArrivalDate: &arrival, AddressSnapshot: &newAddress},
			wantStatus: domain.OrderStatusConfirmed,
		},
		{
			name:       "confirmed to in transit: ok",
			patch:      domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusInTransit)},
			wantStatus: domain.OrderStatusInTransit,
		},
		{
			name:       "in transit to delivered: ok",
			from:       []domain.OrderStatus{domain.OrderStatusInTransit},
			patch:      domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusDelivered)},
			wantStatus: domain.OrderStatusDelivered,
		},
		{
			name:       "same status: ok",
			patch:      domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusConfirmed)},
			wantStatus: domain.OrderStatusConfirmed,
		},
		{
			name:      "in transit back to confirmed: fail",
			from:      []domain.OrderStatus{domain.OrderStatusInTransit},
			patch:     domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusConfirmed)},
			wantErrIs: domain.ErrInvalidState,
		},
		{
			name:      "delivered order: fail",
			from:      []domain.OrderStatus{domain.OrderStatusDelivered},
			patch:     domain.OrderPatch{ArrivalDate: &arrival},
			wantErrIs: domain.ErrInvalidState,
		},
		{
			name:      "cancelled order: fail",
			from:      []domain.OrderStatus{domain.OrderStatusCancelled},
			patch:     domain.OrderPatch{AddressSnapshot: &newAddress},
			wantErrIs: domain.ErrInvalidState,
		},
		{
			name:      "unknown status: fail",
			patch:     domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatus("LOST"))},
			wantErrIs: domain.ErrValidation,
		},
		{
			name:      "empty patch: fail",
			wantErrIs: domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.NoError(suite.store.Clear(ctx, suite.alice.CustomerID))
			order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

			for _, status := range tt.from {
				_, err := suite.orders.Update(ctx, order.OrderID, domain.OrderPatch{Status: lo.ToPtr(status)})
				require.NoError(t, err)
			}

			updated, err := suite.orders.Update(ctx, order.OrderID, tt.patch)
			if tt.wantErrIs != nil {
				require.ErrorIs(t, err, tt.wantErrIs)
				return
			}
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, updated.Status)

			stored, err := suite.orders.Get(ctx, order.OrderID)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, stored.Status)

			if tt.patch.ArrivalDate != nil {
				require.NotNil(t, stored.ArrivalDate)
				assert.True(t, arrival.Equal(stored.ArrivalDate.UTC()))
			}
			if tt.patch.AddressSnapshot != nil {
				assert.Equal(t, newAddress, stored.AddressSnapshot)
			}
		})
	}
}

func (suite *storefrontSuite) TestUpdate_CancelledKeepsStock() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 4})

	updated, err := suite.orders.Update(ctx, order.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusCancelled)})
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusCancelled, updated.Status)
	assert.NotNil(t, updated.CancelledAt)
	assert.Equal(t, 6, suite.stock(suite.p1.ProductID), "status update does not restock")
}

func (suite *storefrontSuite) TestSearchAndHistory() {
	t := suite.T()
	ctx := t.Context()

	first := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})
	_, err := suite.payments.Pay(ctx, first.OrderID, suite.alice.CustomerID, testutil.ValidCard())
	require.NoError(t, err)

	second := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p2.ProductID: 1})
	suite.checkout(suite.bob.CustomerID, map[string]int{suite.p2.ProductID: 1})

	all, err := suite.orders.Search(ctx, domain.OrderFilter{CustomerIDs: []string{suite.alice.CustomerID}})
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{first.OrderID, second.OrderID},
		lo.Map(all, func(o domain.Order, _ int) string { return o.OrderID }))

	history, err := suite.orders.ListCustomerOrders(ctx, suite.alice.CustomerID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, first.OrderID, history[0].OrderID)
	assert.True(t, history[0].Paid())

	_, err = suite.orders.Search(ctx, domain.OrderFilter{})
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = suite.orders.ListCustomerOrders(ctx, "")
	require.ErrorIs(t, err, domain.ErrValidation)
}

func (suite *storefrontSuite) TestCancel_ConcurrentRestocksOnce() {
	t := suite.T()
	ctx := t.Context()

	const callers = 8

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3, suite.p2.ProductID: 2})

	var (
		g  errgroup.Group
		ok = make([]bool, callers)
	)
	for i := range callers {
		g.Go(func() error {
			var err error
			if i%2 == 0 {
				_, err = suite.orders.Cancel(ctx, order.OrderID, suite.alice.CustomerID, "customer")
			} else {
				_, err = suite.orders.AdminCancel(ctx, order.OrderID, "admin")
			}

			switch {
			case err == nil:
				ok[i] = true
			case errors.Is(err, domain.ErrInvalidState):
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, lo.Count(ok, true))
	assert.Equal(t, 10, suite.stock(suite.p1.ProductID))
	assert.Equal(t, 5, suite.stock(suite.p2.ProductID))

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
}

func (suite *storefrontSuite) TestCancel_ConcurrentWithUpdate() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3})

	var (
		g                    errgroup.Group
		cancelErr, updateErr error
	)
	g.Go(func() error {
		_, cancelErr = suite.orders.AdminCancel(ctx, order.OrderID, "")
		return nil
	})
	g.Go(func() error {
		_, updateErr = suite.orders.Update(ctx, order.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusInTransit)})
		return nil
	})
	require.NoError(t, g.Wait())

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)

	if cancelErr == nil {
		require.ErrorIs(t, updateErr, domain.ErrInvalidState)
		assert.Equal(t, domain.OrderStatusCancelled, stored.Status)
		assert.Equal(t, 10, suite.stock(suite.p1.ProductID))
		return
	}

	require.ErrorIs(t, cancelErr, domain.ErrInvalidState)
	require.NoError(t, updateErr)
	assert.Equal(t, domain.OrderStatusInTransit, stored.Status)
	assert.Equal(t, 7, suite.stock(suite.p1.ProductID))
}

func (suite *storefrontSuite) TestCancel_ConcurrentWithPay() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3})

	var (
		g                 errgroup.Group
		cancelErr, payErr error
	)
	g.Go(func() error {
		_, cancelErr = suite.orders.Cancel(ctx, order.OrderID, suite.alice.CustomerID, "")
		return nil
	})
	g.Go(func() error {
		_, payErr = suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, testutil.ValidCard())
		return nil
	})
	require.NoError(t, g.Wait())

	// a paid CONFIRMED order is still cancellable, so cancel always wins eventually
	require.NoError(t, cancelErr)
	assert.Equal(t, 10, suite.stock(suite.p1.ProductID))

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusCancelled, stored.Status)

	attempts := suite.count(`SELECT count(*) FROM payment_attempts WHERE order_id = $1`, order.OrderID)
	invoices := suite.count(`SELECT count(*) FROM invoices WHERE order_id = $1`, order.OrderID)

	if payErr == nil {
		assert.Equal(t, 1, attempts)
		assert.Equal(t, 1, invoices)
		require.NotNil(t, stored.TransactionID)
		return
	}

	require.ErrorIs(t, payErr, domain.ErrInvalidState)
	assert.Equal(t, 0, attempts)
	assert.Equal(t, 0, invoices)
	assert.Nil(t, stored.TransactionID)
}

func (suite *storefrontSuite) TestFeedback() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1, suite.p2.ProductID: 1})
	_, err := suite.orders.Update(ctx, order.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusDelivered)})
	require.NoError(t, err)

	fb, err := suite.orders.Feedback(ctx, suite.alice.CustomerID, domain.NewFeedback{
		OrderID:     order.OrderID,
		ProductID:   suite.p1.ProductID,
		Rating:      4,
		Description: "works fine",
	})
	require.NoError(t, err)
	assert.Equal(t, suite.alice.CustomerID, fb.CustomerID)
	assert.Equal(t, 4, fb.Rating)
	assert.False(t, fb.CreatedAt.IsZero())

	// one rating per product of the order
	_, err = suite.orders.Feedback(ctx, suite.alice.CustomerID, domain.NewFeedback{
		OrderID:   order.OrderID,
		ProductID: suite.p1.ProductID,
		Rating:    1,
	})
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = suite.orders.Feedback(ctx, suite.alice.CustomerID, domain.NewFeedback{
		OrderID:   order.OrderID,
		ProductID: suite.p2.ProductID,
		Rating:    5,
	})
	require.NoError(t, err)

	list, err := suite.orders.ProductFeedback(ctx, suite.p1.ProductID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, fb.ID, list[0].ID)
	assert.Equal(t, "works fine", list[0].Description)
}

func (suite *storefrontSuite) TestFeedback_Rejections() {
	ctx := suite.T().Context()

	delivered := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})
	_, err := suite.orders.Update(ctx, delivered.OrderID, domain.OrderPatch{Status: lo.ToPtr(domain.OrderStatusDelivered)})
	suite.Require().NoError(err)

	confirmed := suite.checkout(suite.bob.CustomerID, map[string]int{suite.p1.ProductID: 1})

	tests := []struct {
		name       string
		customerID string
		input      domain.NewFeedback
		wantErrIs  error
	}{
		{
			name:       "order not delivered",
			customerID: suite.bob.CustomerID,
			input:      domain.NewFeedback{OrderID: confirmed.OrderID, ProductID: suite.p1.ProductID, Rating: 3},
			wantErrIs:  domain.ErrInvalidState,
		},
		{
			name:       "order of another customer",
			customerID: suite.bob.CustomerID,
			input:      domain.NewFeedback{OrderID: delivered.OrderID, ProductID: suite.p1.ProductID, Rating: 3},
			wantErrIs:  domain.ErrUnauthorized,
		},
		{
			name:       "product not in order",
			customerID: suite.alice.CustomerID,
			input:      domain.NewFeedback{OrderID: delivered.OrderID, ProductID: suite.p2.ProductID, Rating: 3},
			wantErrIs:  domain.ErrNotFound,
		},
		{
			name:       "unknown order",
			customerID: suite.alice.CustomerID,
			input:      domain.NewFeedback{OrderID: "ORD-19700101000000-00000000", ProductID: suite.p1.ProductID, Rating: 3},
			wantErrIs:  domain.ErrNotFound,
		},
		{
			name:       "rating below range",
			customerID: suite.alice.CustomerID,
			input:      domain.NewFeedback{OrderID: delivered.OrderID, ProductID: suite.p1.ProductID, Rating: 0},
			wantErrIs:  domain.ErrValidation,
		},
		{
			name:       "rating above range",
			customerID: suite.alice.CustomerID,
			input:      domain.NewFeedback{OrderID: delivered.OrderID, ProductID: suite.p1.ProductID, Rating: 6},
			wantErrIs:  domain.ErrValidation,
		},
		{
			name:       "missing product id",
			customerID: suite.alice.CustomerID,
			input:      domain.NewFeedback{OrderID: delivered.OrderID, Rating: 3},
			wantErrIs:  domain.ErrValidation,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()

			_, err := suite.orders.Feedback(t.Context(), tt.customerID, tt.input)
			require.ErrorIs(t, err, tt.wantErrIs)

			assert.Equal(t, 0, suite.count(`SELECT count(*) FROM feedback`))
		})
	}
}
