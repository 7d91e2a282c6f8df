package domain

import (
	"errors"
	"fmt"
	"time"
)

const maxOrderFilterLimit = 500

// OrderFilter has AND semantics across fields, OR semantics within each field slice
type OrderFilter struct {
	OrderIDs    []string
	CustomerIDs []string
	Statuses    []OrderStatus
	CreatedAt   *TimeRange
	Invoiced    *bool

	Limit  int
	Offset int
}

func (f OrderFilter) Validate() error {
	if len(f.OrderIDs) == 0 && len(f.CustomerIDs) == 0 && len(f.Statuses) == 0 && f.CreatedAt == nil && f.Invoiced == nil {
		return errors.New("all fields are empty")
	}

	for _, s := range f.Statuses {
		if _, err := ToOrderStatus(string(s)); err != nil {
			return fmt.Errorf("statuses: %w", err)
		}
	}

	if f.CreatedAt != nil {
		if err := f.CreatedAt.Validate(); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
	}

	if f.Limit < 0 || f.Limit > maxOrderFilterLimit {
		return fmt.Errorf("limit[%d] is out of range", f.Limit)
	}
	if f.Offset < 0 {
		return fmt.Errorf("offset[%d] is negative", f.Offset)
	}

	return nil
}

type TimeRange struct {
	Before *time.Time
	After  *time.Time
}

func (t TimeRange) Validate() error {
	if t.Before == nil && t.After == nil {
		return errors.New("both Before and After are nil")
	}

	if t.Before != nil && t.After != nil {
		if t.Before.Before(*t.After) {
			return fmt.Errorf("before is before After")
		}
	}

	return nil
}
