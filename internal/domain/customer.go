package domain

import "time"

type CustomerStatus string

const (
	CustomerStatusActive   CustomerStatus = "ACTIVE"
	CustomerStatusInactive CustomerStatus = "INACTIVE"
)

type Customer struct {
	CustomerID string
	Name       string
	Email      string
	Phone      string
	Address    Address
	Status     CustomerStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (c Customer) Active() bool {
	return c.Status == CustomerStatusActive
}

type NewCustomer struct {
	Name    string `validate:"required,max=100"`
	Email   string `validate:"required,email"`
	Phone   string `validate:"omitempty,max=20"`
	Address Address
}
