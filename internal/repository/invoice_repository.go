package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

type invoiceRepository struct {
	q *db.Queries
}

func NewInvoice(pool *pgxpool.Pool) port.InvoiceRepository {
	return &invoiceRepository{
		q: db.New(pool),
	}
}

func NewInvoiceWithTx(tx pgx.Tx) port.InvoiceRepository {
	return &invoiceRepository{
		q: db.New(tx),
	}
}

func (r *invoiceRepository) GetInvoice(ctx context.Context, orderID string) (domain.Invoice, error) {
	dbInvoice, err := r.q.GetInvoiceByOrderID(ctx, orderID)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("q.GetInvoiceByOrderID[%s]: %w", orderID, translateError(err))
	}

	return mapDBInvoiceToDomain(dbInvoice)
}

func (r *invoiceRepository) InsertInvoice(ctx context.Context, invoice domain.Invoice) (domain.Invoice, error) {
	if invoice.OrderID == "" {
		return domain.Invoice{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}
	if invoice.TransactionID == "" {
		return domain.Invoice{}, fmt.Errorf("%w: transactionID is empty", domain.ErrValidation)
	}

	dbInvoice, err := r.q.InsertInvoice(ctx, db.InsertInvoiceParams{
		OrderID:       invoice.OrderID,
		TransactionID: invoice.TransactionID,
		TotalAmount:   invoice.Total.Amount,
		TotalCurrency: invoice.Total.Currency.String(),
		PaymentMode:   string(invoice.PaymentMode),
	})
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("q.InsertInvoice: %w", translateError(err))
	}

	return mapDBInvoiceToDomain(dbInvoice)
}

func (r *invoiceRepository) UpdateTransactionID(ctx context.Context, orderID, transactionID string) (domain.Invoice, error) {
	if transactionID == "" {
		return domain.Invoice{}, fmt.Errorf("%w: transactionID is empty", domain.ErrValidation)
	}

	dbInvoice, err := r.q.UpdateInvoiceTransactionID(ctx, db.UpdateInvoiceTransactionIDParams{
		OrderID:       orderID,
		TransactionID: transactionID,
	})
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("q.UpdateInvoiceTransactionID[%s]: %w", orderID, translateError(err))
	}

	return mapDBInvoiceToDomain(dbInvoice)
}

func mapDBInvoiceToDomain(dbInvoice db.Invoice) (domain.Invoice, error) {
	total, err := toMoney(dbInvoice.TotalAmount, dbInvoice.TotalCurrency)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("toMoney: %w", err)
	}

	mode, err := domain.ToPaymentMode(dbInvoice.PaymentMode)
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("domain.ToPaymentMode[%s]: %w", dbInvoice.PaymentMode, err)
	}

	return domain.Invoice{
		ID:            dbInvoice.ID,
		OrderID:       dbInvoice.OrderID,
		TransactionID: dbInvoice.TransactionID,
		Total:         total,
		PaymentMode:   mode,
		IssuedAt:      dbInvoice.IssuedAt,
		UpdatedAt:     dbInvoice.UpdatedAt,
	}, nil
}
