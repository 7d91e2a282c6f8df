package service

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/idgen"
	"github.com/nikolayk812/storefront/internal/logging"
	"github.com/nikolayk812/storefront/internal/metrics"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/nikolayk812/storefront/internal/validation"
	"github.com/samber/lo"
)

const (
	actorCustomer = "customer"
	actorAdmin    = "admin"
)

type OrderService struct {
	uow      port.UnitOfWork
	orders   port.OrderRepository
	feedback port.FeedbackRepository
	carts    port.CartStore
	ids      *idgen.Generator
	metrics  *metrics.Metrics
	validate *validatorv10.Validate
	now      func() time.Time
}

func NewOrderService(
	uow port.UnitOfWork,
	orders port.OrderRepository,
	feedback port.FeedbackRepository,
	carts port.CartStore,
	ids *idgen.Generator,
	m *metrics.Metrics,
) (*OrderService, error) {
	if uow == nil {
		return nil, errors.New("uow is nil")
	}
	if orders == nil {
		return nil, errors.New("orders is nil")
	}
	if feedback == nil {
		return nil, errors.New("feedback is nil")
	}
	if carts == nil {
		return nil, errors.New("carts is nil")
	}
	if ids == nil {
		return nil, errors.New("ids is nil")
	}
	if m == nil {
		return nil, errors.New("metrics is nil")
	}

	return &OrderService{
		uow:      uow,
		orders:   orders,
		feedback: feedback,
		carts:    carts,
		ids:      ids,
		metrics:  m,
		validate: validation.New(),
		now:      time.Now,
	}, nil
}

// Checkout turns the cart into a CONFIRMED order and reserves its stock. Products are
// row-locked in id order, so concurrent checkouts of the same product serialize.
// The cart is kept until the order is paid. A zero address falls back to the customer's.
func (s *OrderService) Checkout(ctx context.Context, customerID string, address domain.Address) (_ domain.Order, err error) {
	log := logging.FromCtx(ctx).With("method", "OrderService.Checkout", "customerID", customerID)

	defer func() {
		s.metrics.Checkout(outcome(err))
	}()

	cart, err := s.carts.Get(ctx, customerID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("carts.Get: %w", err)
	}
	if cart.IsEmpty() {
		log.Warn("checkout rejected, cart is empty")
		return domain.Order{}, domain.ErrEmptyCart
	}

	var order domain.Order

	err = s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		customer, err := repos.Customers.GetCustomer(ctx, customerID)
		if err != nil {
			return fmt.Errorf("repos.Customers.GetCustomer: %w", err)
		}
		if !customer.Active() {
			return fmt.Errorf("customer[%s]: %w", customerID, domain.ErrUnavailable)
		}

		products, err := repos.Catalog.LockProducts(ctx, slices.Collect(maps.Keys(cart.Lines)))
		if err != nil {
			return fmt.Errorf("repos.Catalog.LockProducts: %w", err)
		}

		items, total, err := snapshotItems(products, cart.Lines)
		if err != nil {
			return err
		}

		orderID, err := s.ids.OrderID(ctx, repos.Orders.OrderIDExists)
		if err != nil {
			return fmt.Errorf("ids.OrderID: %w", err)
		}

		if address.IsZero() {
			address = customer.Address
		}

		order, err = repos.Orders.InsertOrder(ctx, domain.Order{
			OrderID:         orderID,
			CustomerID:      customerID,
			Total:           total,
			Status:          domain.OrderStatusConfirmed,
			AddressSnapshot: address,
			PaymentMode:     domain.DefaultPaymentMode,
			Items:           items,
		})
		if err != nil {
			return fmt.Errorf("repos.Orders.InsertOrder: %w", err)
		}

		for _, item := range items {
			if _, err := repos.Catalog.AdjustQuantity(ctx, item.ProductID, -item.Quantity); err != nil {
				return fmt.Errorf("repos.Catalog.AdjustQuantity: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		logFailure(log, "checkout", err)
		return domain.Order{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	log.Info("order checked out", "orderID", order.OrderID, "total", order.Total.String())
	return order, nil
}

// snapshotItems re-checks every line against the locked products. Any failing line
// fails the whole checkout.
func snapshotItems(products []domain.Product, lines map[string]int) ([]domain.OrderItem, domain.Money, error) {
	if len(products) == 0 {
		return nil, domain.Money{}, domain.ErrEmptyCart
	}

	items := make([]domain.OrderItem, 0, len(products))
	total := domain.ZeroMoney(products[0].Price.Currency)

	for _, product := range products {
		qty := lines[product.ProductID]

		if !product.Available() {
			return nil, domain.Money{}, fmt.Errorf("product[%s]: %w", product.ProductID, domain.ErrUnavailable)
		}
		if qty > product.QuantityAvailable {
			return nil, domain.Money{}, fmt.Errorf("product[%s] has %d, requested %d: %w",
				product.ProductID, product.QuantityAvailable, qty, domain.ErrInsufficientStock)
		}

		item := domain.OrderItem{
			ProductID:   product.ProductID,
			ProductName: product.Name,
			Category:    product.Category,
			Description: product.Description,
			UnitPrice:   product.Price,
			Quantity:    qty,
		}

		var err error
		total, err = total.Add(item.UnitPrice.Mul(qty))
		if err != nil {
			return nil, domain.Money{}, fmt.Errorf("total.Add: %w", err)
		}

		items = append(items, item)
	}

	return items, total, nil
}

// Cancel is the customer facing cancellation, only the owner may cancel.
func (s *OrderService) Cancel(ctx context.Context, orderID, customerID, reason string) (domain.Order, error) {
	return s.cancel(ctx, orderID, reason, actorCustomer, func(order domain.Order) error {
		if order.CustomerID != customerID {
			return fmt.Errorf("order[%s] customer[%s]: %w", orderID, customerID, domain.ErrUnauthorized)
		}
		return nil
	})
}

func (s *OrderService) AdminCancel(ctx context.Context, orderID, reason string) (domain.Order, error) {
	return s.cancel(ctx, orderID, reason, actorAdmin, func(domain.Order) error { return nil })
}

// cancel puts every item quantity back onto its product in the same transaction
// that moves the order to CANCELLED.
func (s *OrderService) cancel(
	ctx context.Context,
	orderID, reason, actor string,
	authorize func(order domain.Order) error,
) (domain.Order, error) {
	log := logging.FromCtx(ctx).With("method", "OrderService.cancel", "orderID", orderID, "actor", actor)

	var cancelled domain.Order

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.LockOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.LockOrder: %w", err)
		}

		if err := authorize(order); err != nil {
			return err
		}

		if !order.Status.Cancellable() {
			return fmt.Errorf("order[%s] is %s: %w", orderID, order.Status, domain.ErrInvalidState)
		}

		for _, item := range order.Items {
			if _, err := repos.Catalog.AdjustQuantity(ctx, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("repos.Catalog.AdjustQuantity: %w", err)
			}
		}

		now := s.now().UTC()
		order.Status = domain.OrderStatusCancelled
		order.CancelledAt = &now
		order.CancellationReason = lo.EmptyableToPtr(reason)

		cancelled, err = repos.Orders.UpdateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdateOrder: %w", err)
		}

		return nil
	})
	if err != nil {
		logFailure(log, "cancel", err)
		return domain.Order{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	s.metrics.Cancellation(actor)
	log.Info("order cancelled", "items", len(cancelled.Items))

	return cancelled, nil
}

// Update applies an admin patch. Moving the status to CANCELLED here stamps the
// cancellation time but leaves stock untouched, use AdminCancel to restock.
func (s *OrderService) Update(ctx context.Context, orderID string, patch domain.OrderPatch) (domain.Order, error) {
	log := logging.FromCtx(ctx).With("method", "OrderService.Update", "orderID", orderID)

	if patch.IsEmpty() {
		return domain.Order{}, fmt.Errorf("%w: patch is empty", domain.ErrValidation)
	}

	var updated domain.Order

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.LockOrder(ctx, orderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.LockOrder: %w", err)
		}

		if order.Status.Terminal() {
			return fmt.Errorf("order[%s] is %s: %w", orderID, order.Status, domain.ErrInvalidState)
		}

		if patch.ArrivalDate != nil {
			order.ArrivalDate = patch.ArrivalDate
		}
		if patch.AddressSnapshot != nil {
			order.AddressSnapshot = *patch.AddressSnapshot
		}

		if patch.Status != nil {
			next, err := domain.ToOrderStatus(string(*patch.Status))
			if err != nil {
				return fmt.Errorf("domain.ToOrderStatus: %w", err)
			}
			if !order.Status.CanTransition(next) {
				return fmt.Errorf("order[%s] %s -> %s: %w", orderID, order.Status, next, domain.ErrInvalidState)
			}

			if next == domain.OrderStatusCancelled {
				now := s.now().UTC()
				order.CancelledAt = &now
				log.Warn("order cancelled by status update, stock is not restored", "items", len(order.Items))
			}
			order.Status = next
		}

		updated, err = repos.Orders.UpdateOrder(ctx, order)
		if err != nil {
			return fmt.Errorf("repos.Orders.UpdateOrder: %w", err)
		}

		return nil
	})
	if err != nil {
		logFailure(log, "update", err)
		return domain.Order{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	log.Info("order updated", "status", updated.Status)
	return updated, nil
}

func (s *OrderService) Get(ctx context.Context, orderID string) (domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("orders.GetOrder: %w", err)
	}
	return order, nil
}

func (s *OrderService) Search(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	orders, err := s.orders.SearchOrders(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("orders.SearchOrders: %w", err)
	}
	return orders, nil
}

// ListCustomerOrders is the order history of a customer, only invoiced orders count.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID string) ([]domain.Order, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customerID is empty", domain.ErrValidation)
	}

	return s.Search(ctx, domain.OrderFilter{
		CustomerIDs: []string{customerID},
		Invoiced:    lo.ToPtr(true),
	})
}

// Feedback rates a product of a DELIVERED order owned by the customer. A second rating
// of the same product in the same order is a conflict.
func (s *OrderService) Feedback(ctx context.Context, customerID string, nf domain.NewFeedback) (domain.Feedback, error) {
	log := logging.FromCtx(ctx).With("method", "OrderService.Feedback", "orderID", nf.OrderID, "customerID", customerID)

	if err := validation.Check(s.validate, nf); err != nil {
		return domain.Feedback{}, fmt.Errorf("validation.Check: %w", err)
	}

	var created domain.Feedback

	err := s.uow.WithinTx(ctx, func(repos port.Repositories) error {
		order, err := repos.Orders.LockOrder(ctx, nf.OrderID)
		if err != nil {
			return fmt.Errorf("repos.Orders.LockOrder: %w", err)
		}

		if order.CustomerID != customerID {
			return fmt.Errorf("order[%s] customer[%s]: %w", nf.OrderID, customerID, domain.ErrUnauthorized)
		}
		if order.Status != domain.OrderStatusDelivered {
			return fmt.Errorf("order[%s] is %s: %w", nf.OrderID, order.Status, domain.ErrInvalidState)
		}

		if !lo.ContainsBy(order.Items, func(item domain.OrderItem) bool { return item.ProductID == nf.ProductID }) {
			return fmt.Errorf("product[%s] in order[%s]: %w", nf.ProductID, nf.OrderID, domain.ErrNotFound)
		}

		created, err = repos.Feedback.InsertFeedback(ctx, domain.Feedback{
			OrderID:     nf.OrderID,
			ProductID:   nf.ProductID,
			CustomerID:  customerID,
			Rating:      nf.Rating,
			Description: nf.Description,
		})
		if err != nil {
			return fmt.Errorf("repos.Feedback.InsertFeedback: %w", err)
		}

		return nil
	})
	if err != nil {
		logFailure(log, "feedback", err)
		return domain.Feedback{}, fmt.Errorf("uow.WithinTx: %w", err)
	}

	log.Info("feedback created", "productID", created.ProductID, "rating", created.Rating)
	return created, nil
}

// ProductFeedback lists the ratings of a product, oldest first.
func (s *OrderService) ProductFeedback(ctx context.Context, productID string) ([]domain.Feedback, error) {
	feedback, err := s.feedback.ListProductFeedback(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("feedback.ListProductFeedback: %w", err)
	}
	return feedback, nil
}
