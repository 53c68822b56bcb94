package types

import (
	"database/sql/driver"
)

// ScanLocation is the derived geo context recorded with a QR scan.
type ScanLocation struct {
	Country *string  `json:"country,omitempty"`
	Region  *string  `json:"region,omitempty"`
	City    *string  `json:"city,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

func (s ScanLocation) Value() (driver.Value, error) {
	return jsonbValue(s)
}

func (s *ScanLocation) Scan(value interface{}) error {
	return jsonbScan(value, s, "scan_location")
}
