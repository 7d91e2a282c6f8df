package domain

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a customer's rating of a product from one of their delivered orders,
// at most one per order, product and customer.
type Feedback struct {
	ID          uuid.UUID
	OrderID     string
	ProductID   string
	CustomerID  string
	Rating      int
	Description string
	CreatedAt   time.Time
}

type NewFeedback struct {
	OrderID     string `validate:"required"`
	ProductID   string `validate:"required"`
	Rating      int    `validate:"min=1,max=5"`
	Description string `validate:"max=500"`
}
