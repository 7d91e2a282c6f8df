package service_test

import (
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func (suite *storefrontSuite) TestIssue_Idempotent() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 2})

	first, err := suite.invoices.Issue(ctx, order.OrderID, "TXN-20250101000000-AAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, order.OrderID, first.OrderID)
	assert.True(t, order.Total.Amount.Equal(first.Total.Amount))
	assert.Equal(t, domain.DefaultPaymentMode, first.PaymentMode)
	assert.False(t, first.IssuedAt.IsZero())

	again, err := suite.invoices.Issue(ctx, order.OrderID, "TXN-20250101000000-AAAAAAAA")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)
	assert.Equal(t, first.TransactionID, again.TransactionID)

	updated, err := suite.invoices.Issue(ctx, order.OrderID, "TXN-20250101000000-BBBBBBBB")
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "TXN-20250101000000-BBBBBBBB", updated.TransactionID)

	assert.Equal(t, 1, suite.count(`SELECT count(*) FROM invoices WHERE order_id = $1`, order.OrderID))

	stored, err := suite.orders.Get(ctx, order.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored.InvoiceID)
	assert.Equal(t, first.ID, *stored.InvoiceID)
}

func (suite *storefrontSuite) TestIssue_Concurrent() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	var g errgroup.Group
	for range 8 {
		g.Go(func() error {
			_, err := suite.invoices.Issue(ctx, order.OrderID, "TXN-20250101000000-CCCCCCCC")
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, 1, suite.count(`SELECT count(*) FROM invoices WHERE order_id = $1`, order.OrderID))
}

func (suite *storefrontSuite) TestIssue_Rejections() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	_, err := suite.invoices.Issue(ctx, order.OrderID, "")
	require.ErrorIs(t, err, domain.ErrValidation)

	_, err = suite.invoices.Issue(ctx, "ORD-19700101000000-00000000", "TXN-20250101000000-AAAAAAAA")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func (suite *storefrontSuite) TestView_NotInvoiced() {
	t := suite.T()
	ctx := t.Context()

	order := suite.checkout(suite.alice.CustomerID, map[string]int{suite.p1.ProductID: 1})

	_, err := suite.invoices.View(ctx, order.OrderID)
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, err = suite.invoices.View(ctx, "ORD-19700101000000-00000000")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
