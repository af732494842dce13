// Package db opens the optional PostgreSQL backend and bootstraps its schema.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
)

// Schema holds the table that mirrors the secrets document. Position keeps
// the insertion order of the list.
const Schema = `
CREATE TABLE IF NOT EXISTS guard_secrets (
    position INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    shared_secret TEXT NOT NULL
);
`

const pingTimeout = 5 * time.Second

// InitPostgres connects to dsn, verifies the connection and creates the schema.
func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}
