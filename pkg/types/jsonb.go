package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonbValue marshals v into the driver representation for a JSONB column.
func jsonbValue(v any) (driver.Value, error) {
	buf, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// jsonbScan decodes a JSONB column into dest. A SQL NULL leaves dest untouched.
func jsonbScan(value interface{}, dest any, label string) error {
	if value == nil {
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("%s: unsupported scan type %T", label, value)
	}

	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dest)
}
