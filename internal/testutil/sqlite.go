// Package testutil sets up throwaway SQLite databases carrying the airline schema.
package testutil

import (
	"context"
	_ "embed"
	"path/filepath"
	"testing"

	"github.com/Rana718/skyseed/internal/config"
	"github.com/Rana718/skyseed/internal/database"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var AirlineSchema string

// DB is a seeded test database: the Inspector under test plus a separate
// handle for setup statements and assertions.
type DB struct {
	Inspector *database.Inspector
	Raw       *sqlx.DB
}

// NewSQLite creates the airline schema in a temp file, runs any extra
// statements, and connects an Inspector to it.
func NewSQLite(t *testing.T, extra ...string) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "airline.db")

	raw, err := sqlx.Open("sqlite3", "file:"+path)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	raw.SetMaxOpenConns(1)
	t.Cleanup(func() { raw.Close() })

	for _, stmt := range append([]string{AirlineSchema}, extra...) {
		if _, err := raw.Exec(stmt); err != nil {
			t.Fatalf("failed to prepare schema: %v", err)
		}
	}

	inspector, err := database.Connect(context.Background(), config.Database{
		Provider:   "sqlite",
		DBName:     path,
		SchemaName: "main",
	})
	if err != nil {
		t.Fatalf("failed to connect inspector: %v", err)
	}
	t.Cleanup(func() { inspector.Close() })

	return &DB{Inspector: inspector, Raw: raw}
}

// Exec runs a setup statement and fails the test on error.
func (d *DB) Exec(t *testing.T, query string, args ...interface{}) {
	t.Helper()
	if _, err := d.Raw.Exec(query, args...); err != nil {
		t.Fatalf("exec %q: %v", query, err)
	}
}

func (d *DB) Count(t *testing.T, table string) int {
	t.Helper()
	var n int
	if err := d.Raw.Get(&n, "SELECT COUNT(*) FROM "+table); err != nil {
		t.Fatalf("count %s: %v", table, err)
	}
	return n
}

// Strings returns one text column of a table, in rowid order.
func (d *DB) Strings(t *testing.T, query string, args ...interface{}) []string {
	t.Helper()
	var out []string
	if err := d.Raw.Select(&out, query, args...); err != nil {
		t.Fatalf("select %q: %v", query, err)
	}
	return out
}
