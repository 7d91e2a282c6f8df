package domain

import (
	"encoding/json"
	"fmt"
)

// Address is stored on orders as a point-in-time copy, later customer edits do not touch it.
type Address struct {
	Line1   string `json:"line1"`
	Line2   string `json:"line2,omitempty"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) MarshalSnapshot() ([]byte, error) {
	b, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}
	return b, nil
}

func UnmarshalAddressSnapshot(b []byte) (Address, error) {
	var a Address
	if len(b) == 0 {
		return a, nil
	}

	if err := json.Unmarshal(b, &a); err != nil {
		return a, fmt.Errorf("json.Unmarshal: %w", err)
	}
	return a, nil
}
