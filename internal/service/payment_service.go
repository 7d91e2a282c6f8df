package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/validation"
)

const payScope = "pay"

type PaymentService struct {
	uow      port.UnitOfWork
	attempts port.PaymentAttemptRepository
	carts    port.CartStore
	settler  port.Settler
	ids      *idgen.Generator
	metrics  *metrics.Metrics
	validate *validatorv10.Validate

	// optional, nil disables idempotency keys
	idempotency port.IdempotencyStore
}

type PaymentOption func(*PaymentService)

func WithIdempotencyStore(store port.IdempotencyStore) PaymentOption {
	return func(s *PaymentService) {
		s.idempotency = store
	}
}

func NewPaymentService(
	uow port.UnitOfWork,
	attempts port.PaymentAttemptRepository,
	carts port.CartStore,
	settler port.Settler,
	ids *idgen.Generator,
	m *metrics.Metrics,
	opts ...PaymentOption,
) (*PaymentService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if attempts == nil {
		return nil, errors.New("attempts is nil")
	}
	if carts == nil {
		return nil, errors.New("carts is nil")
	}
	if settler == nil {
		return nil, errors.New("settler is nil")
	}
	if ids == nil {
		return nil, errors.New("ids is nil")
	}
	if m == nil {
		return nil, errors.New("metrics is nil")
	}

	s := &PaymentService{
		uow:      uow,
		attempts: attempts,
		carts:    carts,
		settler:  settler,
		ids:      ids,
		metrics:  m,
		validate: validation.New(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Pay settles a CONFIRMED order of the customer. Once settlement is invoked exactly one
// attempt is recorded. A declined charge commits the FAILED attempt alone and returns
// domain.ErrPaymentFailed, the order stays payable. A successful charge attaches the
// transaction, issues the invoice and clears the customer's cart.
func (s *PaymentService) Pay(ctx context.Context, orderID, customerID string, details domain.PaymentDetails) (domain.Receipt, error) {
	if s.idempotency == nil || details.IdempotencyKey == "" {
		return s.pay(ctx, orderID, customerID, details)
	}

	return s.payOnce(ctx, orderID, customerID, details)
}

// payOnce returns the remembered receipt for a repeated key. The key is scoped by order
// and customer, so a key replayed by another customer never reaches the stored receipt.
func (s *PaymentService) payOnce(ctx context.Context, orderID, customerID string, details domain.PaymentDetails) (_ domain.Receipt, err error) {
	log := logging.FromCtx(ctx).With("method", "PaymentService.payOnce", "orderID", orderID)
	scope := payScope + ":" + orderID + ":" + customerID
	key := details.IdempotencyKey

	value, found, err := s.idempotency.Recall(ctx, scope, key)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("idempotency.Recall: %w", err)
	}
	if found {
		var receipt domain.Receipt
		if err := json.Unmarshal([]byte(value), &receipt); err != nil {
			return domain.Receipt{}, fmt.Errorf("json.Unmarshal: %w", err)
		}

		log.Info("payment replayed", "transactionID", receipt.TransactionID)
		return receipt, nil
	}

	locked, err := s.idempotency.TryLock(ctx, scope, key)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("idempotency.TryLock: %w", err)
	}
	if !locked {
		return domain.Receipt{}, fmt.Errorf("payment key[%s] is in progress: %w", key, domain.ErrConflict)
	}

	defer func() {
		if err == nil {
			return
		}
		if releaseErr := s.idempotency.Release(ctx, scope, key); releaseErr != nil {
			log.Error("idempotency key not released", "error", releaseErr)
		}
	}()

	receipt, err := s.pay(ctx, orderID, customerID, details)
	if err != nil {
		return domain.Receipt{}, err
	}

	b, err := json.Marshal(receipt)
	if err != nil {
		return domain.Receipt{}, fmt.Errorf("json.Marshal: %w", err)
	}

	// the charge went through, a lost receipt is only logged
	if err := s.idempotency.Remember(ctx, scope, key, string(b)); err != nil {
		log.Error("receipt not remembered", "error", err)
	}

	return receipt, nil
}

func (s *PaymentService) pay(ctx context.Context, orderID, customerID string, details domain.PaymentDetails) (domain.Receipt, error) {
	log := logging.FromCtx(ctx).With("method", "PaymentService.Pay", "orderID", orderID, "customerID", customerID)

	var (
		receipt   domain.Receipt
		settleErr error
		paid      domain.Order
	)

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.LockOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.LockOrder: %w", err)
		}

		if order.CustomerID != customerID {
			return fmt.Errorf("order[%s] customer[%s]: %w", orderID, customerID, domain.ErrUnauthorized)
		}
		if order.Status != domain.OrderStatusConfirmed {
			return fmt.Errorf("order[%s] is %s: %w", orderID, order.Status, domain.ErrInvalidState)
		}

		if err := validation.Check(s.validate, details); err != nil {
			return fmt.Errorf("validation.Check: %w", err)
		}

		payload, err := details.MaskedPayload()
		if err != nil {
			return fmt.Errorf("details.MaskedPayload: %w", err)
		}

		attempt := domain.PaymentAttempt{
			OrderID: orderID,
			Mode:    details.Mode,
			Payload: payload,
		}

		if settleErr = s.settler.Settle(ctx, order, details); settleErr != nil {
			attempt.Status = domain.PaymentStatusFailed
			if _, err := repos.Payments.InsertAttempt(ctx, attempt); err != nil {
				return fmt.Errorf("repos.Payments.InsertAttempt: %w", err)
			}
			return nil
		}

		transactionID := s.ids.TransactionID()

		attempt.Status = domain.PaymentStatusSuccess
		attempt.TransactionID = &transactionID
		if _, err := repos.Payments.InsertAttempt(ctx, attempt); err != nil {
			return fmt.Errorf("repos.Payments.InsertAttempt: %w", err)
		}

		order.PaymentMode = details.Mode
		order.TransactionID = &transactionID
		if details.AddressSnapshot != nil && !details.AddressSnapshot.IsZero() {
			order.AddressSnapshot = *details.AddressSnapshot
		}

		invoice, err := issueInvoice(ctx, repos, order, transactionID)
		if err != nil {
			return err
		}
		order.InvoiceID = &invoice.ID

		paid, err = repos.Orders.UpdateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdateOrder: %w", err)
		}

		receipt = domain.Receipt{
			TransactionID: transactionID,
			OrderID:       orderID,
			InvoiceID:     invoice.ID,
			Status:        domain.PaymentStatusSuccess,
		}

		return nil
	})
	if err != nil {
		logFailure(log, "payment", err)
		return domain.Receipt{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	if settleErr != nil {
		s.metrics.Payment(string(domain.PaymentStatusFailed))
		log.Warn("payment declined", "error", settleErr)
		return domain.Receipt{}, fmt.Errorf("settler.Settle: %w: %w", domain.ErrPaymentFailed, settleErr)
	}

	s.metrics.Payment(string(domain.PaymentStatusSuccess))
	s.metrics.Settled(paid.Total.Currency.String(), paid.Total.Amount.InexactFloat64())

	if err := s.carts.Clear(ctx, customerID); err != nil {
		log.Error("cart not cleared after payment", "error", err)
	}

	log.Info("order paid", "transactionID", receipt.TransactionID, "invoiceID", receipt.InvoiceID)
	return receipt, nil
}

// Attempts returns the payment audit trail of an order, oldest first.
func (s *PaymentService) Attempts(ctx context.Context, orderID string) ([]domain.PaymentAttempt, error) {
	attempts, err := s.attempts.ListAttempts(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("attempts.ListAttempts: %w", err)
	}
	return attempts, nil
}
