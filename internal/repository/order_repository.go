package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/storefront/internal/db"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
	"github.com/samber/lo"
)

const defaultSearchLimit = 100

type orderRepository struct {
	q    *db.Queries
	dbtx db.DBTX
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		dbtx: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		dbtx: tx,
	}
}

func (r *orderRepository) GetOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if orderID == "" {
		return domain.Order{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}

	order, err := r.withTxOrder(ctx, func(q *db.Queries) (domain.Order, error) {
		dbOrder, err := q.GetOrder(ctx, orderID)
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.GetOrder[%s]: %w", orderID, translateError(err))
		}

		return r.loadItems(ctx, q, dbOrder)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.withTxOrder: %w", err)
	}

	return order, nil
}

func (r *orderRepository) LockOrder(ctx context.Context, orderID string) (domain.Order, error) {
	if orderID == "" {
		return domain.Order{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}

	dbOrder, err := r.q.GetOrderForUpdate(ctx, orderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderForUpdate[%s]: %w", orderID, translateError(err))
	}

	return r.loadItems(ctx, r.q, dbOrder)
}

func (r *orderRepository) loadItems(ctx context.Context, q *db.Queries, dbOrder db.Order) (domain.Order, error) {
	dbOrderItems, err := q.GetOrderItems(ctx, dbOrder.OrderID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrderItems: %w", err)
	}

	order, err := mapDBOrderToDomain(dbOrder, dbOrderItems)
	if err != nil {
		return domain.Order{}, fmt.Errorf("mapDBOrderToDomain: %w", err)
	}

	return order, nil
}

func (r *orderRepository) InsertOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OrderID == "" {
		return domain.Order{}, errors.New("orderID is empty")
	}
	if len(order.Items) == 0 {
		return domain.Order{}, errors.New("no items in order")
	}

	address, err := order.AddressSnapshot.MarshalSnapshot()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order.AddressSnapshot.MarshalSnapshot: %w", err)
	}

	status := order.Status
	if status == "" {
		status = domain.OrderStatusConfirmed
	}

	paymentMode := order.PaymentMode
	if paymentMode == "" {
		paymentMode = domain.DefaultPaymentMode
	}

	inserted, err := r.withTxOrder(ctx, func(q *db.Queries) (domain.Order, error) {
		row, err := q.InsertOrder(ctx, db.InsertOrderParams{
			OrderID:         order.OrderID,
			CustomerID:      order.CustomerID,
			TotalAmount:     order.Total.Amount,
			TotalCurrency:   order.Total.Currency.String(),
			Status:          string(status),
			AddressSnapshot: emptyJSONIfNil(address),
			PaymentMode:     string(paymentMode),
		})
		if err != nil {
			return domain.Order{}, fmt.Errorf("q.InsertOrder: %w", translateError(err))
		}

		result := order
		result.ID = row.ID
		result.Status = status
		result.PaymentMode = paymentMode
		result.CreatedAt = row.CreatedAt
		result.UpdatedAt = row.UpdatedAt
		result.Items = make([]domain.OrderItem, 0, len(order.Items))

		for _, item := range order.Items {
			itemRow, err := q.InsertOrderItem(ctx, db.InsertOrderItemParams{
				OrderID:           order.OrderID,
				ProductID:         item.ProductID,
				ProductName:       item.ProductName,
				Category:          string(item.Category),
				Description:       item.Description,
				UnitPriceAmount:   item.UnitPrice.Amount,
				UnitPriceCurrency: item.UnitPrice.Currency.String(),
				Quantity:          int32(item.Quantity),
			})
			if err != nil {
				return domain.Order{}, fmt.Errorf("q.InsertOrderItem[%s]: %w", item.ProductID, translateError(err))
			}

			item.ID = itemRow.ID
			item.CreatedAt = itemRow.CreatedAt
			result.Items = append(result.Items, item)
		}

		return result, nil
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.withTxOrder: %w", err)
	}

	return inserted, nil
}

// UpdateOrder persists the mutable fields of the order, items are immutable.
func (r *orderRepository) UpdateOrder(ctx context.Context, order domain.Order) (domain.Order, error) {
	if order.OrderID == "" {
		return domain.Order{}, fmt.Errorf("%w: orderID is empty", domain.ErrValidation)
	}

	address, err := order.AddressSnapshot.MarshalSnapshot()
	if err != nil {
		return domain.Order{}, fmt.Errorf("order.AddressSnapshot.MarshalSnapshot: %w", err)
	}

	updatedAt, err := r.q.UpdateOrder(ctx, db.UpdateOrderParams{
		OrderID:            order.OrderID,
		Status:             string(order.Status),
		AddressSnapshot:    emptyJSONIfNil(address),
		PaymentMode:        string(order.PaymentMode),
		TransactionID:      order.TransactionID,
		InvoiceID:          order.InvoiceID,
		ArrivalDate:        order.ArrivalDate,
		CancelledAt:        order.CancelledAt,
		CancellationReason: order.CancellationReason,
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.UpdateOrder[%s]: %w", order.OrderID, translateError(err))
	}

	order.UpdatedAt = updatedAt
	return order, nil
}

func (r *orderRepository) OrderIDExists(ctx context.Context, orderID string) (bool, error) {
	exists, err := r.q.OrderIDExists(ctx, orderID)
	if err != nil {
		return false, fmt.Errorf("q.OrderIDExists: %w", err)
	}
	return exists, nil
}

func mapDomainOrderFilterToDBFilter(filter domain.OrderFilter) db.SearchOrdersParams {
	statuses := lo.Map(filter.Statuses, func(s domain.OrderStatus, _ int) string {
		return string(s)
	})

	params := db.SearchOrdersParams{
		OrderIds:    nilSliceIfEmpty(filter.OrderIDs),
		CustomerIds: nilSliceIfEmpty(filter.CustomerIDs),
		Statuses:    nilSliceIfEmpty(statuses),
		Invoiced:    filter.Invoiced,
		RowLimit:    int32(defaultSearchLimit),
		RowOffset:   int32(filter.Offset),
	}

	if filter.Limit > 0 {
		params.RowLimit = int32(filter.Limit)
	}

	if filter.CreatedAt != nil {
		params.CreatedAfter = filter.CreatedAt.After
		params.CreatedBefore = filter.CreatedAt.Before
	}

	return params
}

// SearchOrders returns the newest orders first.
func (r *orderRepository) SearchOrders(ctx context.Context, filter domain.OrderFilter) ([]domain.Order, error) {
	if err := filter.Validate(); err != nil {
		return nil, fmt.Errorf("filter.Validate: %w: %w", domain.ErrValidation, err)
	}

	dbOrders, err := r.q.SearchOrders(ctx, mapDomainOrderFilterToDBFilter(filter))
	if err != nil {
		return nil, fmt.Errorf("q.SearchOrders: %w", err)
	}

	if len(dbOrders) == 0 {
		return nil, nil
	}

	orderIDs := lo.Map(dbOrders, func(o db.Order, _ int) string { return o.OrderID })

	dbOrderItems, err := r.q.GetOrderItemsByOrderIDs(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("q.GetOrderItemsByOrderIDs: %w", err)
	}

	itemsByOrder := lo.GroupBy(dbOrderItems, func(item db.OrderItem) string { return item.OrderID })

	orders := make([]domain.Order, 0, len(dbOrders))
	for _, dbOrder := range dbOrders {
		order, err := mapDBOrderToDomain(dbOrder, itemsByOrder[dbOrder.OrderID])
		if err != nil {
			return nil, fmt.Errorf("mapDBOrderToDomain: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

func (r *orderRepository) withTxOrder(ctx context.Context, fn func(q *db.Queries) (domain.Order, error)) (domain.Order, error) {
	return withTx(ctx, r.dbtx, fn)
}

func mapDBOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	price, err := toMoney(row.UnitPriceAmount, row.UnitPriceCurrency)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("toMoney: %w", err)
	}

	return domain.OrderItem{
		ID:          row.ID,
		ProductID:   row.ProductID,
		ProductName: row.ProductName,
		Category:    domain.ProductCategory(row.Category),
		Description: row.Description,
		UnitPrice:   price,
		Quantity:    int(row.Quantity),
		CreatedAt:   row.CreatedAt,
	}, nil
}

func mapDBOrderToDomain(dbOrder db.Order, dbOrderItems []db.OrderItem) (domain.Order, error) {
	var o domain.Order

	items := make([]domain.OrderItem, 0, len(dbOrderItems))
	for _, row := range dbOrderItems {
		item, err := mapDBOrderItemToDomain(row)
		if err != nil {
			return o, fmt.Errorf("mapDBOrderItemToDomain: %w", err)
		}
		items = append(items, item)
	}

	total, err := toMoney(dbOrder.TotalAmount, dbOrder.TotalCurrency)
	if err != nil {
		return o, fmt.Errorf("toMoney: %w", err)
	}

	status, err := domain.ToOrderStatus(dbOrder.Status)
	if err != nil {
		return o, fmt.Errorf("domain.ToOrderStatus[%s]: %w", dbOrder.Status, err)
	}

	paymentMode, err := domain.ToPaymentMode(dbOrder.PaymentMode)
	if err != nil {
		return o, fmt.Errorf("domain.ToPaymentMode[%s]: %w", dbOrder.PaymentMode, err)
	}

	address, err := domain.UnmarshalAddressSnapshot(dbOrder.AddressSnapshot)
	if err != nil {
		return o, fmt.Errorf("domain.UnmarshalAddressSnapshot: %w", err)
	}

	return domain.Order{
		ID:                 dbOrder.ID,
		OrderID:            dbOrder.OrderID,
		CustomerID:         dbOrder.CustomerID,
		Total:              total,
		Status:             status,
		AddressSnapshot:    address,
		PaymentMode:        paymentMode,
		TransactionID:      dbOrder.TransactionID,
		InvoiceID:          dbOrder.InvoiceID,
		ArrivalDate:        dbOrder.ArrivalDate,
		CancelledAt:        dbOrder.CancelledAt,
		CancellationReason: dbOrder.CancellationReason,
		Items:              items,
		CreatedAt:          dbOrder.CreatedAt,
		UpdatedAt:          dbOrder.UpdatedAt,
	}, nil
}
