// Package repo holds persistence plumbing shared by the domain repositories.
package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base carries the GORM handle that every domain repository embeds.
type Base struct {
	db *gorm.DB
}

// NewBase wraps the provided connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB returns the connection scoped to ctx. A nil context yields the raw
// handle.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}
