package service_test

import (
	"encoding/json"
	"regexp"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/nikolayk812/storefront/internal/settlement"
	"github.com/nikolayk812/storefront/internal/testutil"
	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var transactionIDPattern = regexp.MustCompile(`^TXN-\d{14}-[0-9A-F]{8}$`)

func (suite *storefrontSuite) TestPay() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 3})
	card := testutil.ValidCard()

	receipt, err := suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, card)
	require.NoError(t, err)

	assert.Regexp(t, transactionIDPattern, receipt.TransactionID)
	assert.Equal(t, order.OrderID, receipt.OrderID)
	assert.Equal(t, domain.PaymentStatusSuccess, receipt.Status)

	paid, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, paid.Status)
	require.NotNil(t, paid.TransactionID)
	assert.Equal(t, receipt.TransactionID, *paid.TransactionID)
	require.NotNil(t, paid.InvoiceID)
	assert.Equal(t, receipt.InvoiceID, *paid.InvoiceID)
	assert.Equal(t, domain.PaymentModeCreditCard, paid.PaymentMode)

	assert.Equal(t, 1, suite.count(`SELECT count(*) FROM invoices WHERE order_id = $1`, order.OrderID))

	view, err := suite.invoices.View(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, receipt.InvoiceID, view.Invoice.ID)
	assert.Equal(t, receipt.TransactionID, view.Invoice.TransactionID)
	assert.True(t, order.Total.Amount.Equal(view.Invoice.Total.Amount))
	assert.Len(t, view.Order.Items, 1)

	attempts, err := suite.payments.Attempts(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.PaymentStatusSuccess, attempts[0].Status)
	assert.Equal(t, &receipt.TransactionID, attempts[0].TransactionID)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(attempts[0].Payload, &payload))
	assert.Equal(t, domain.MaskCardNumber(card.CardNumber), payload["cardNumber"])
	assert.NotContains(t, string(attempts[0].Payload), card.CardNumber)
	assert.NotContains(t, payload, "cvv")

	c, err := suite.store.Get(ctx, suite.alice.CustomerID)
	require.NoError(t, err)
	assert.True(t, c.IsEmpty(), "cart is cleared after payment")

	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Payments.WithLabelValues("SUCCESS")), 0)
}

func (suite *storefrontSuite) TestPay_UPIWithAddressOverride() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p2.ProductID: 1})
	address := testutil.FakeAddress()

	_, err := suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, domain.PaymentDetails{
		Mode:            domain.PaymentModeUPI,
		UPIID:           "alice@bank",
		AddressSnapshot: &address,
	})
	require.NoError(t, err)

	paid, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentModeUPI, paid.PaymentMode)
	assert.Equal(t, address, paid.AddressSnapshot)

	view, err := suite.invoices.View(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentModeUPI, view.Invoice.PaymentMode)
}

func (suite *storefrontSuite) TestPay_Declined() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 2})
	suite.decline.Store(true)

	_, err := suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, testutil.ValidCard())
	require.ErrorIs(t, err, domain.ErrPaymentFailed)
	require.ErrorIs(t, err, settlement.ErrDeclined)

	unpaid, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusConfirmed, unpaid.Status)
	assert.False(t, unpaid.Paid())
	assert.Zero(t, suite.count(`SELECT count(*) FROM invoices`))

	attempts, err := suite.payments.Attempts(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, domain.PaymentStatusFailed, attempts[0].Status)
	assert.Nil(t, attempts[0].TransactionID)

	c, err := suite.store.Get(ctx, suite.alice.CustomerID)
	require.NoError(t, err)
	assert.False(t, c.IsEmpty(), "a declined payment keeps the cart")

	// the order stays payable
	suite.decline.Store(false)

	_, err = suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, testutil.ValidCard())
	require.NoError(t, err)

	attempts, err = suite.payments.Attempts(ctx, order.OrderID)
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, domain.PaymentStatusFailed, attempts[0].Status)
	assert.Equal(t, domain.PaymentStatusSuccess, attempts[1].Status)

	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Payments.WithLabelValues("FAILED")), 0)
	assert.InDelta(t, 1, promtestutil.ToFloat64(suite.metrics.Payments.WithLabelValues("SUCCESS")), 0)
}

func (suite *storefrontSuite) TestPay_Rejections() {
	noCVV := testutil.ValidCard()
	noCVV.CVV = " "

	tests := []struct {
		name       string
		orderID    func(order domain.Order) string
		customerID func() string
		details    domain.PaymentDetails
		prepare    func(order domain.Order)
		wantErrIs  error
		wantError  string
	}{
		{
			name:      "unknown order",
			orderID:   func(domain.Order) string { return "ORD-19700101000000-00000000" },
			details:   testutil.ValidCard(),
			wantErrIs: domain.ErrNotFound,
		},
		{
			name:       "someone else's order",
			customerID: func() string { return suite.bob.CustomerID },
			details:    testutil.ValidCard(),
			wantErrIs:  domain.ErrUnauthorized,
		},
		{
			name:      "card without cvv",
			details:   noCVV,
			wantErrIs: domain.ErrValidation,
			wantError: "validation error: CVV[required_for_mode]",
		},
		{
			name:      "upi without id",
			details:   domain.PaymentDetails{Mode: domain.PaymentModeUPI},
			wantErrIs: domain.ErrValidation,
			wantError: "validation error: UPIID[required_for_mode]",
		},
		{
			name:      "unknown mode",
			details:   domain.PaymentDetails{Mode: "CASH"},
			wantErrIs: domain.ErrValidation,
			wantError: "validation error: Mode[oneof]",
		},
		{
			name:    "cancelled order",
			details: testutil.ValidCard(),
			prepare: func(order domain.Order) {
				_, err := suite.orders.AdminCancel(suite.T().Context(), order.OrderID, "")
				suite.Require().NoError(err)
			},
			wantErrIs: domain.ErrInvalidState,
		},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			t := suite.T()
			ctx := t.Context()

			suite.NoError(suite.store.Clear(ctx, suite.alice.CustomerID))
			order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})
			settlesBefore := suite.settles.Load()

			if tt.prepare != nil {
				tt.prepare(order)
			}

			orderID := order.OrderID
			if tt.orderID != nil {
				orderID = tt.orderID(order)
			}
			customerID := suite.alice.CustomerID
			if tt.customerID != nil {
				customerID = tt.customerID()
			}

			_, err := suite.payments.Pay(ctx, orderID, customerID, tt.details)
			require.ErrorIs(t, err, tt.wantErrIs)
			if tt.wantError != "" {
				assert.Contains(t, err.Error(), tt.wantError)
			}

			assert.Equal(t, settlesBefore, suite.settles.Load(), "rejected before settlement")
			assert.Zero(t, suite.count(`SELECT count(*) FROM payment_attempts WHERE order_id = $1`, order.OrderID))

			c, err := suite.store.Get(ctx, suite.alice.CustomerID)
			require.NoError(t, err)
			assert.False(t, c.IsEmpty())
		})
	}
}

func (suite *storefrontSuite) TestPay_RepeatUpdatesInvoice() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	first, err := suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, testutil.ValidCard())
	require.NoError(t, err)

	second, err := suite.payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, testutil.ValidCard())
	require.NoError(t, err)

	assert.NotEqual(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, first.InvoiceID, second.InvoiceID)
	assert.Equal(t, 1, suite.count(`SELECT count(*) FROM invoices WHERE order_id = $1`, order.OrderID))

	view, err := suite.invoices.View(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Equal(t, second.TransactionID, view.Invoice.TransactionID)

	attempts, err := suite.payments.Attempts(ctx, order.OrderID)
	require.NoError(t, err)
	assert.Len(t, attempts, 2, "one attempt per call")
}

func (suite *storefrontSuite) TestPay_IdempotencyKey() {
	t := suite.T()
	ctx := t.Context()

	store := newMemoryIdempotency()
	payments := suite.newPaymentService(service.WithIdempotencyStore(store))

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	details := testutil.ValidCard()
	details.IdempotencyKey = "key-1"

	first, err := payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, details)
	require.NoError(t, err)

	replayed, err := payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, details)
	require.NoError(t, err)
	assert.Equal(t, first, replayed)

	assert.Equal(t, int32(1), suite.settles.Load(), "replay does not settle again")
	assert.Equal(t, 1, suite.count(`SELECT count(*) FROM payment_attempts WHERE order_id = $1`, order.OrderID))

	// the same key from another customer does not see the receipt
	_, err = payments.Pay(ctx, order.OrderID, suite.bob.CustomerID, details)
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int32(1), suite.settles.Load())

	// a key held by a request in flight
	locked, err := store.TryLock(ctx, "pay:"+order.OrderID+":"+suite.alice.CustomerID, "key-2")
	require.NoError(t, err)
	require.True(t, locked)

	details.IdempotencyKey = "key-2"
	_, err = payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, details)
	require.ErrorIs(t, err, domain.ErrConflict)
}

func (suite *storefrontSuite) TestPay_IdempotencyKeyReleasedOnFailure() {
	t := suite.T()
	ctx := t.Context()

	store := newMemoryIdempotency()
	payments := suite.newPaymentService(service.WithIdempotencyStore(store))

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	details := testutil.ValidCard()
	details.IdempotencyKey = "key-1"

	suite.decline.Store(true)
	_, err := payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, details)
	require.ErrorIs(t, err, domain.ErrPaymentFailed)

	suite.decline.Store(false)
	receipt, err := payments.Pay(ctx, order.OrderID, suite.alice.CustomerID, details)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusSuccess, receipt.Status)
}
