package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type PaymentMode string

const (
	PaymentModeCreditCard PaymentMode = "CREDIT_CARD"
	PaymentModeUPI        PaymentMode = "UPI"
)

// DefaultPaymentMode is stored at checkout until a payment finalizes the real mode.
const DefaultPaymentMode = PaymentModeCreditCard

func ToPaymentMode(s string) (PaymentMode, error) {
	switch PaymentMode(s) {
	case PaymentModeCreditCard, PaymentModeUPI:
		return PaymentMode(s), nil
	}

	return "", fmt.Errorf("%w: invalid payment mode[%s]", ErrValidation, s)
}

type PaymentStatus string

const (
	PaymentStatusSuccess PaymentStatus = "SUCCESS"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// PaymentDetails is what the customer submits. Field rules depend on Mode and are
// registered as a struct level validation, see package validation.
type PaymentDetails struct {
	Mode           PaymentMode `validate:"required,oneof=CREDIT_CARD UPI"`
	CardNumber     string
	CardHolderName string
	ExpiryDate     string
	CVV            string
	UPIID          string

	// replaces the order address snapshot when set
	AddressSnapshot *Address
	// repeated keys return the first receipt, empty disables the check
	IdempotencyKey string
}

// MaskedPayload is the audit form of the details. CVV is dropped and the card number
// keeps only its last four digits.
func (d PaymentDetails) MaskedPayload() ([]byte, error) {
	payload := map[string]string{
		"mode": string(d.Mode),
	}

	if d.Mode == PaymentModeCreditCard {
		payload["cardNumber"] = MaskCardNumber(d.CardNumber)
		payload["cardHolderName"] = d.CardHolderName
		payload["expiryDate"] = d.ExpiryDate
	} else {
		payload["upiId"] = d.UPIID
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return b, nil
}

func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return "****"
	}
	return "****" + cardNumber[len(cardNumber)-4:]
}

// PaymentAttempt is append-only, one row per settlement try.
type PaymentAttempt struct {
	ID            uuid.UUID
	OrderID       string
	Mode          PaymentMode
	Payload       []byte
	Status        PaymentStatus
	TransactionID *string
	CreatedAt     time.Time
}

type Receipt struct {
	TransactionID string
	OrderID       string
	InvoiceID     uuid.UUID
	Status        PaymentStatus
}
