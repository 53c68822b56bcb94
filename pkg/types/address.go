package types

import (
	"database/sql/driver"
)

// Address is the structured postal address attached to a brand, persisted as JSONB.
type Address struct {
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2,omitempty"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
}

func (a Address) Value() (driver.Value, error) {
	return jsonbValue(a)
}

func (a *Address) Scan(value interface{}) error {
	return jsonbScan(value, a, "address")
}
