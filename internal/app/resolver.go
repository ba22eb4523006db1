// Package app assembles the concrete adapters behind the ports for the
// command-line entry points.
package app

import (
	"database/sql"
	"exobio-route-sorter/internal/adapters/cache"
	"exobio-route-sorter/internal/adapters/edsm"
	"exobio-route-sorter/internal/adapters/repositories"
	"exobio-route-sorter/internal/config"
	"exobio-route-sorter/internal/platform/db"
	"exobio-route-sorter/internal/ports"
	"fmt"
	"log"
)

// Resolver is the coordinate resolver for a process plus whatever must be
// closed when the process ends.
type Resolver struct {
	ports.CoordinateResolver
	db *sql.DB
}

// Close releases the backing database, if any.
func (r *Resolver) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Wrap decorates a resolver.
type Wrap func(ports.CoordinateResolver) ports.CoordinateResolver

// NewResolver builds the EDSM client and, when configured, puts the
// persistent coordinate store in front of it. Wraps apply to the client
// only, so they see real network lookups and never store hits.
func NewResolver(cfg config.Config, wraps ...Wrap) (*Resolver, error) {
	client, err := edsm.NewClient(cfg.EDSMBaseURL, cfg.EDSMTimeout, cfg.EDSMPace)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}

	var network ports.CoordinateResolver = client
	for _, wrap := range wraps {
		network = wrap(network)
	}

	sqlDB, store, err := OpenStore(cfg)
	if err != nil {
		return nil, fmt.Errorf("new resolver: %w", err)
	}
	if store == nil {
		return &Resolver{CoordinateResolver: network}, nil
	}

	log.Printf("coordinate store enabled backend=%s", cfg.CoordStore)
	return &Resolver{
		CoordinateResolver: cache.NewStoredResolver(network, store),
		db:                 sqlDB,
	}, nil
}

// OpenStore opens the configured coordinate store and makes sure its schema
// exists. It returns a nil store when COORD_STORE is "none".
func OpenStore(cfg config.Config) (*sql.DB, ports.CoordinateStore, error) {
	switch cfg.CoordStore {
	case config.StoreSqlite:
		sqlDB, err := db.OpenSqlite(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := repositories.InitSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return sqlDB, cache.NewSqliteCoordinateStore(sqlDB), nil

	case config.StorePostgres:
		sqlDB, err := db.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		if err := repositories.InitPostgresSchema(sqlDB); err != nil {
			sqlDB.Close()
			return nil, nil, fmt.Errorf("open store: %w", err)
		}
		return sqlDB, cache.NewSQLCoordinateStore(sqlDB), nil

	default:
		return nil, nil, nil
	}
}
