package types

import (
	"database/sql/driver"
)

// Social carries a brand's social media links, persisted as JSONB.
type Social struct {
	Twitter   *string `json:"twitter,omitempty"`
	Facebook  *string `json:"facebook,omitempty"`
	Instagram *string `json:"instagram,omitempty"`
	LinkedIn  *string `json:"linkedin,omitempty"`
	YouTube   *string `json:"youtube,omitempty"`
	Website   *string `json:"website,omitempty"`
}

func (s Social) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *Social) Scan(value interface{}) error {
	return jsonbScan(value, s, "social")
}
