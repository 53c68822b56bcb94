package types

import (
	"database/sql/driver"
)

// Settings is a free-form JSONB settings map. Internal shape is the
// caller's responsibility; the storage layer treats it as opaque.
type Settings map[string]any

func (s Settings) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	return jsonbValue(s)
}

func (s *Settings) Scan(value interface{}) error {
	result := make(Settings)
	if err := jsonbScan(value, &result, "settings"); err != nil {
		return err
	}
	if value == nil {
		*s = nil
		return nil
	}
	*s = result
	return nil
}
