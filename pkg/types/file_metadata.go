package types

import (
	"database/sql/driver"
)

// FileMetadata carries optional structural facts about an uploaded file.
type FileMetadata struct {
	Width           *int     `json:"width,omitempty"`
	Height          *int     `json:"height,omitempty"`
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	Pages           *int     `json:"pages,omitempty"`
}

func (f FileMetadata) Value() (driver.Value, error) {
	return jsonbValue(f)
}

func (f *FileMetadata) Scan(value interface{}) error {
	return jsonbScan(value, f, "file_metadata")
}
