package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// BlockContent is the type-dependent JSONB payload of a landing page block.
// The store keeps it opaque; shape validation happens at the service boundary.
type BlockContent json.RawMessage

func (b BlockContent) Value() (driver.Value, error) {
	if len(b) == 0 {
		return "{}", nil
	}
	if !json.Valid(b) {
		return nil, fmt.Errorf("block content: invalid json")
	}
	return []byte(b), nil
}

func (b *BlockContent) Scan(value interface{}) error {
	if value == nil {
		*b = nil
		return nil
	}
	switch v := value.(type) {
	case string:
		*b = BlockContent([]byte(v))
	case []byte:
		cpy := make([]byte, len(v))
		copy(cpy, v)
		*b = BlockContent(cpy)
	default:
		return fmt.Errorf("block content: unsupported scan type %T", value)
	}
	return nil
}

func (b BlockContent) MarshalJSON() ([]byte, error) {
	if len(b) == 0 {
		return []byte("null"), nil
	}
	return b, nil
}

func (b *BlockContent) UnmarshalJSON(data []byte) error {
	if b == nil {
		return fmt.Errorf("block content: nil receiver")
	}
	cpy := make([]byte, len(data))
	copy(cpy, data)
	*b = cpy
	return nil
}
