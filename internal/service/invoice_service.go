package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/port"
)

type InvoiceService struct {
	uow      port.UnitOfWork
	orders   port.OrderRepository
	invoices port.InvoiceRepository
}

func NewInvoiceService(uow port.UnitOfWork, orders port.OrderRepository, invoices port.InvoiceRepository) (*InvoiceService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if orders == nil {
		return nil, errors.New("orders is nil")
	}
	if invoices == nil {
		return nil, errors.New("invoices is nil")
	}

	return &InvoiceService{
		uow:      uow,
		orders:   orders,
		invoices: invoices,
	}, nil
}

// Issue is idempotent by order. The order row lock serializes concurrent calls.
func (s *InvoiceService) Issue(ctx context.Context, orderID, transactionID string) (domain.Invoice, error) {
	if transactionID == "" {
		return domain.Invoice{}, fmt.Errorf("%w: transactionID is empty", domain.ErrValidation)
	}

	var invoice domain.Invoice

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.LockOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.LockOrder: %w", err)
		}

		invoice, err = issueInvoice(ctx, repos, order, transactionID)
		if err != nil {
			return err
		}

		if order.InvoiceID == nil || *order.InvoiceID != invoice.ID {
			order.InvoiceID = &invoice.ID
			if _, err := repos.Orders.UpdateOrder(ctx, order); err != nil {
				return fmt.Errorf("repos.Orders.UpdateOrder: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	return invoice, nil
}

// View assembles what a document renderer needs to print the invoice of an order.
func (s *InvoiceService) View(ctx context.Context, orderID string) (domain.InvoiceView, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.InvoiceView{}, fmt.Errorf("orders.GetOrder: %w", err)
	}

	invoice, err := s.invoices.GetInvoice(ctx, orderID)
	if err != nil {
		return domain.InvoiceView{}, fmt.Errorf("invoices.GetInvoice: %w", err)
	}

	return domain.InvoiceView{Order: order, Invoice: invoice}, nil
}

// issueInvoice must run inside a transaction that holds the order row lock.
// An existing invoice only gets its transaction id refreshed.
func issueInvoice(ctx context.Context, repos port.Repositories, order domain.Order, transactionID string) (domain.Invoice, error) {
	log := logging.FromCtx(ctx).With("method", "issueInvoice", "orderID", order.OrderID)

	existing, err := repos.Invoices.GetInvoice(ctx, order.OrderID)
	switch {
	case err == nil:
		if existing.TransactionID == transactionID {
			return existing, nil
		}

		updated, err := repos.Invoices.UpdateTransactionID(ctx, order.OrderID, transactionID)
		if err != nil {
			return domain.Invoice{}, fmt.Errorf("repos.Invoices.UpdateTransactionID: %w", err)
		}

		log.Info("invoice transaction updated", "invoiceID", updated.ID, "previous", existing.TransactionID)
		return updated, nil

	case !errors.Is(err, domain.ErrNotFound):
		return domain.Invoice{}, fmt.Errorf("repos.Invoices.GetInvoice: %w", err)
	}

	invoice, err := repos.Invoices.InsertInvoice(ctx, domain.Invoice{
		OrderID:       order.OrderID,
		TransactionID: transactionID,
		Total:         order.Total,
		PaymentMode:   order.PaymentMode,
	})
	if err != nil {
		return domain.Invoice{}, fmt.Errorf("repos.Invoices.InsertInvoice: %w", err)
	}

	log.Info("invoice issued", "invoiceID", invoice.ID)
	return invoice, nil
}
