// Package postgres opens a PostgreSQL-backed snippet store using the pgx stdlib driver.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/jhuonas/ai-snippet-service/internal/store/sqlstore"
)

const (
	driverName  = "pgx"
	dialectName = "postgres"
)

// Schema is applied by Bootstrap. Every statement is idempotent.
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS snippets (
        id         VARCHAR(24)  PRIMARY KEY,
        text       TEXT         NOT NULL,
        summary    TEXT         NOT NULL,
        created_at TIMESTAMPTZ  NOT NULL DEFAULT now()
    )`,
	`CREATE INDEX IF NOT EXISTS snippets_created_at_idx ON snippets (created_at DESC, id DESC)`,
}

// Open opens a PostgreSQL connection using the pgx stdlib driver and verifies connectivity.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// NewWithDB constructs a store backed by an already opened connection.
func NewWithDB(db *sql.DB) *sqlstore.Store {
	return sqlstore.New(sqlx.NewDb(db, driverName), dialectName)
}

// Bootstrap connects, applies Schema and returns the ready store.
func Bootstrap(ctx context.Context, dsn string) (*sqlstore.Store, error) {
	db, err := Open(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres open: %w", err)
	}
	if err := sqlstore.EnsureSchema(ctx, sqlx.NewDb(db, driverName), Schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return NewWithDB(db), nil
}
