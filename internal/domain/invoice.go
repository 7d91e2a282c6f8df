package domain

import (
	"time"

	"github.com/google/uuid"
)

// Invoice exists at most once per order.
type Invoice struct {
	ID            uuid.UUID
	OrderID       string
	TransactionID string
	Total         Money
	PaymentMode   PaymentMode
	IssuedAt      time.Time
	UpdatedAt     time.Time
}

// InvoiceView is everything a document renderer needs, Order carries its items.
type InvoiceView struct {
	Order   Order
	Invoice Invoice
}
