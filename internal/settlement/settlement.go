package settlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	GatewaySimulated = "simulated"
	GatewayDecline   = "decline"
)

var ErrDeclined = errors.New("declined by gateway")

// Simulated approves every charge.
type Simulated struct{}

func (Simulated) Settle(context.Context, domain.Order, domain.PaymentDetails) error {
	return nil
}

// Declining rejects every charge.
type Declining struct{}

func (Declining) Settle(_ context.Context, order domain.Order, _ domain.PaymentDetails) error {
	return fmt.Errorf("order[%s]: %w", order.OrderID, ErrDeclined)
}

// Func adapts a plain function to port.Settler.
type Func func(ctx context.Context, order domain.Order, details domain.PaymentDetails) error

func (f Func) Settle(ctx context.Context, order domain.Order, details domain.PaymentDetails) error {
	return f(ctx, order, details)
}

func New(gateway string) (port.Settler, error) {
	switch gateway {
	case GatewaySimulated, "":
		return Simulated{}, nil
	case GatewayDecline:
		return Declining{}, nil
	}

	return nil, fmt.Errorf("unknown gateway[%s]", gateway)
}
