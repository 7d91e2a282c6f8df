package domain

import "fmt"

type OrderStatus string

// remember to add new statuses to the validOrderStatuses map
const (
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	OrderStatusInTransit OrderStatus = "IN_TRANSIT"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusConfirmed: {},
	OrderStatusInTransit: {},
	OrderStatusDelivered: {},
	OrderStatusCancelled: {},
}

// admin status updates, same-status updates are accepted as no-ops
var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusConfirmed: {OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusInTransit: {OrderStatusDelivered, OrderStatusCancelled},
}

func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}

	return "", fmt.Errorf("%w: invalid order status[%s]", ErrValidation, s)
}

func OrderStatuses() []OrderStatus {
	result := make([]OrderStatus, 0, len(validOrderStatuses))
	for status := range validOrderStatuses {
		result = append(result, status)
	}
	return result
}

// CanTransition reports whether an admin update may move an order from one status to another.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	if s == to {
		return s != OrderStatusCancelled && s != OrderStatusDelivered
	}

	for _, next := range orderStatusTransitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Cancellable is true only for CONFIRMED, shipped or finished orders keep their stock.
func (s OrderStatus) Cancellable() bool {
	return s == OrderStatusConfirmed
}

func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCancelled || s == OrderStatusDelivered
}
