package repo

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return conn
}

func TestBaseDBScopesContext(t *testing.T) {
	conn := openSQLite(t)
	base := NewBase(conn)

	ctx := context.WithValue(context.Background(), struct{}{}, "value")
	scoped := base.DB(ctx)
	if scoped == nil {
		t.Fatal("expected a connection for a non-nil context")
	}
	if scoped.Statement == nil || scoped.Statement.Context != ctx {
		t.Fatal("expected the context to flow into the statement")
	}
}

func TestBaseDBNilContextReturnsRawHandle(t *testing.T) {
	conn := openSQLite(t)
	base := NewBase(conn)

	if got := base.DB(nil); got != conn {
		t.Fatal("expected the raw connection when no context is given")
	}
}
