package idgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/port"
)

const (
	dayLayout       = "20060102"
	timestampLayout = "20060102150405"

	productCounter        = "product"
	customerCounterPrefix = "customer:"
)

var errTaken = errors.New("identifier taken")

type Config struct {
	CustomerPrefix     string
	OrderPrefix        string
	TransactionPrefix  string
	CustomerMaxRetries int
	OrderMaxRetries    int
}

func DefaultConfig() Config {
	return Config{
		CustomerPrefix:     "CUST",
		OrderPrefix:        "ORD",
		TransactionPrefix:  "TXN",
		CustomerMaxRetries: 1000,
		OrderMaxRetries:    100,
	}
}

func (c Config) Validate() error {
	if c.CustomerPrefix == "" || c.OrderPrefix == "" || c.TransactionPrefix == "" {
		return errors.New("prefixes must not be empty")
	}
	if c.CustomerMaxRetries < 1 || c.OrderMaxRetries < 1 {
		return errors.New("max retries must be positive")
	}
	return nil
}

// ExistsFunc reports whether an identifier is already taken.
type ExistsFunc func(ctx context.Context, id string) (bool, error)

type Generator struct {
	cfg       Config
	now       func() time.Time
	randomHex func() string
}

type Option func(*Generator)

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRandomHex replaces the source of the 8 character suffix of order and transaction ids.
func WithRandomHex(fn func() string) Option {
	return func(g *Generator) {
		g.randomHex = fn
	}
}

func New(cfg Config, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("cfg.Validate: %w", err)
	}

	g := &Generator{
		cfg:       cfg,
		now:       time.Now,
		randomHex: randomHex,
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// CustomerID returns PREFIX-yyyymmdd-NNNN. The sequence comes from an atomic per-day
// counter, the existence check guards against ids created outside the counter.
func (g *Generator) CustomerID(ctx context.Context, seq port.SequenceRepository, exists ExistsFunc) (string, error) {
	day := g.now().UTC().Format(dayLayout)

	return g.retry(ctx, g.cfg.CustomerMaxRetries, func() (string, error) {
		n, err := seq.Next(ctx, customerCounterPrefix+day)
		if err != nil {
			return "", backoff.Permanent(fmt.Errorf("seq.Next: %w", err))
		}

		id := fmt.Sprintf("%s-%s-%04d", g.cfg.CustomerPrefix, day, n)
		return g.checkFree(ctx, id, exists)
	})
}

// OrderID returns PREFIX-yyyyMMddHHmmss-HEX8, existence checked.
func (g *Generator) OrderID(ctx context.Context, exists ExistsFunc) (string, error) {
	return g.retry(ctx, g.cfg.OrderMaxRetries, func() (string, error) {
		return g.checkFree(ctx, g.timestamped(g.cfg.OrderPrefix), exists)
	})
}

// TransactionID returns PREFIX-yyyyMMddHHmmss-HEX8 without a collision check.
func (g *Generator) TransactionID() string {
	return g.timestamped(g.cfg.TransactionPrefix)
}

// ProductID zero pads the catalog counter to at least three digits. Ids are never recycled.
func (g *Generator) ProductID(ctx context.Context, seq port.SequenceRepository) (string, error) {
	n, err := seq.Next(ctx, productCounter)
	if err != nil {
		return "", fmt.Errorf("seq.Next: %w", err)
	}

	return fmt.Sprintf("%03d", n), nil
}

func (g *Generator) timestamped(prefix string) string {
	return fmt.Sprintf("%s-%s-%s", prefix, g.now().UTC().Format(timestampLayout), g.randomHex())
}

func (g *Generator) checkFree(ctx context.Context, id string, exists ExistsFunc) (string, error) {
	taken, err := exists(ctx, id)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("exists[%s]: %w", id, err))
	}
	if taken {
		return "", errTaken
	}
	return id, nil
}

func (g *Generator) retry(ctx context.Context, attempts int, op func() (string, error)) (string, error) {
	policy := backoff.WithContext(backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(attempts-1)), ctx)

	id, err := backoff.RetryWithData(op, policy)
	if errors.Is(err, errTaken) {
		return "", fmt.Errorf("%w: no free identifier after %d attempts", domain.ErrExhaustedRetries, attempts)
	}
	if err != nil {
		return "", err
	}

	return id, nil
}

func randomHex() string {
	u := uuid.New()
	return fmt.Sprintf("%X", u[:4])
}
