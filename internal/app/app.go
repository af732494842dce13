// Package app wires configuration, persistence and the guard service for the
// binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/SteamGuardKeeper/internal/clock"
	"github.com/atinyakov/SteamGuardKeeper/internal/config"
	"github.com/atinyakov/SteamGuardKeeper/internal/db"
	"github.com/atinyakov/SteamGuardKeeper/internal/repository"
	"github.com/atinyakov/SteamGuardKeeper/internal/service"
	"github.com/atinyakov/SteamGuardKeeper/internal/storage"
	"go.uber.org/zap"
)

// App holds the wired service and the resources to release on shutdown.
type App struct {
	Service *service.GuardService
	db      *sql.DB
}

// New selects the persistence backend from options, loads the secret list
// and builds the service.
func New(ctx context.Context, options *config.Options, log *zap.Logger) (*App, error) {
	a := &App{}

	var persister storage.Persister
	if options.DatabaseDSN != "" {
		conn, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		a.db = conn
		persister = repository.NewPostgresSecretRepository(conn)
		log.Info("using postgres storage")
	} else {
		fs, err := storage.NewFileStorage(options.StorePath)
		if err != nil {
			return nil, err
		}
		persister = fs
		log.Info("using file storage", zap.String("path", options.StorePath))
	}

	clk := clock.New()
	store := storage.New(ctx, persister, clk, log)
	a.Service = service.NewGuardService(store, clk)
	return a, nil
}

// Close releases the database connection, if any.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
