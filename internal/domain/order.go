package domain

import (
	"time"

	"github.com/google/uuid"
)

type Order struct {
	ID                 uuid.UUID
	OrderID            string
	CustomerID         string
	Total              Money
	Status             OrderStatus
	AddressSnapshot    Address
	PaymentMode        PaymentMode
	TransactionID      *string
	InvoiceID          *uuid.UUID
	ArrivalDate        *time.Time
	CancelledAt        *time.Time
	CancellationReason *string
	Items              []OrderItem

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (o Order) Paid() bool {
	return o.TransactionID != nil && o.InvoiceID != nil
}

// OrderItem snapshots the product as it was at checkout.
type OrderItem struct {
	ID          uuid.UUID
	ProductID   string
	ProductName string
	Category    ProductCategory
	Description string
	UnitPrice   Money
	Quantity    int

	CreatedAt time.Time
}

// OrderPatch is an admin update, nil fields are left untouched.
type OrderPatch struct {
	ArrivalDate     *time.Time
	AddressSnapshot *Address
	Status          *OrderStatus
}

func (p OrderPatch) IsEmpty() bool {
	return p.ArrivalDate == nil && p.AddressSnapshot == nil && p.Status == nil
}
