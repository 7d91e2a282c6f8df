package domain

import (
	"errors"
	"fmt"
)

// Error kinds returned by every core operation. Callers match them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidState      = errors.New("invalid state")
	ErrUnavailable       = errors.New("unavailable")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrValidation        = errors.New("validation error")
	ErrConflict          = errors.New("conflict")
	ErrPaymentFailed     = errors.New("payment failed")

	// ErrExhaustedRetries needs operator attention, retrying the request will not help.
	ErrExhaustedRetries = errors.New("exhausted retries")

	ErrEmptyCart     = fmt.Errorf("%w: cart is empty", ErrValidation)
	ErrLimitExceeded = fmt.Errorf("%w: product limit exceeded", ErrInsufficientStock)
)
