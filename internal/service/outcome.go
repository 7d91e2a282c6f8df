package service

import (
	"errors"
	"log/slog"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/metrics"
)

var businessErrors = []error{
	domain.ErrNotFound,
	domain.ErrUnauthorized,
	domain.ErrInvalidState,
	domain.ErrUnavailable,
	domain.ErrInsufficientStock,
	domain.ErrValidation,
	domain.ErrConflict,
	domain.ErrPaymentFailed,
}

// rejected errors are the caller's problem, everything else is ours.
func rejected(err error) bool {
	for _, target := range businessErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case rejected(err):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeFailed
	}
}

func logFailure(log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrExhaustedRetries):
		log.Error(op+" needs operator attention", "error", err)
	case rejected(err):
		log.Warn(op+" rejected", "error", err)
	default:
		log.Error(op+" failed", "error", err)
	}
}
