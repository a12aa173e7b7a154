// Package sqlite opens a SQLite-backed snippet store using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/jhuonas/ai-snippet-service/internal/store/sqlstore"
)

const (
	driverName  = "sqlite"
	dialectName = "sqlite3"

	// MemoryPath opens a private in-memory database.
	MemoryPath = ":memory:"
)

// Schema is applied by Bootstrap. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS snippets (
        id         TEXT     PRIMARY KEY,
        text       TEXT     NOT NULL,
        summary    TEXT     NOT NULL,
        created_at DATETIME NOT NULL
    )`,
	`CREATE INDEX IF NOT EXISTS snippets_created_at_idx ON snippets (created_at DESC, id DESC)`,
}

// Open opens (or creates) a SQLite database at the given path with WAL journaling.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is empty")
	}
	if path != MemoryPath {
		// ensure parent directory exists to avoid SQLITE_CANTOPEN errors
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_time_format=sqlite", path)
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if path == MemoryPath {
		// each connection would otherwise get its own empty database
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Bootstrap opens the database, applies Schema and returns the ready store.
func Bootstrap(ctx context.Context, path string) (*sqlstore.Store, error) {
	db, err := Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("sqlite open: %w", err)
	}
	x := sqlx.NewDb(db, driverName)
	if err := sqlstore.EnsureSchema(ctx, x, Schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return sqlstore.New(x, dialectName), nil
}
