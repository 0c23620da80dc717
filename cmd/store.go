package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/ohmyshower/order-cli/internal/registry"
)

// initRegistry opens the configured backend. Postgres is the production
// store; sqlite serves local runs and development.
func initRegistry(ctx context.Context) (registry.Registry, error) {
	switch cfg.Store.Driver {
	case "postgres":
		reg, err := registry.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "init postgres registry")
		}
		return reg, nil
	case "sqlite":
		reg, err := registry.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, eris.Wrap(err, "init sqlite registry")
		}
		return reg, nil
	default:
		return nil, eris.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}
