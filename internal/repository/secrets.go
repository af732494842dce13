// Package repository provides a PostgreSQL persistence backend for the
// secret list.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/SteamGuardKeeper/internal/models"
)

// PostgresSecretRepository stores the ordered secret list in guard_secrets.
type PostgresSecretRepository struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresSecretRepository creates a repository on top of db.
// db must be a valid connection to a PostgreSQL instance with the schema applied.
func NewPostgresSecretRepository(db *sql.DB) *PostgresSecretRepository {
	return &PostgresSecretRepository{DB: db}
}

// Load returns all secrets ordered by their position.
func (r *PostgresSecretRepository) Load(ctx context.Context) ([]models.Secret, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT name, shared_secret FROM guard_secrets ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("load secrets: %w", err)
	}
	defer rows.Close()

	secrets := []models.Secret{}
	for rows.Next() {
		var sec models.Secret
		if err := rows.Scan(&sec.Name, &sec.SharedSecret); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		secrets = append(secrets, sec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate secrets: %w", err)
	}
	return secrets, nil
}

// Save replaces the stored list with secrets inside one transaction.
func (r *PostgresSecretRepository) Save(ctx context.Context, secrets []models.Secret) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM guard_secrets`); err != nil {
		return fmt.Errorf("clear secrets: %w", err)
	}

	for i, sec := range secrets {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO guard_secrets (position, name, shared_secret) VALUES ($1, $2, $3)
		`, i, sec.Name, sec.SharedSecret); err != nil {
			return fmt.Errorf("insert secret %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
