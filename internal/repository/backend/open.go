// Package backend opens the configured document store.
package backend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/local"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/mongodb"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/postgres"
	"github.com/Ponna-create/wkly-nuts-sub000/internal/repository/supabase"
)

const connectTimeout = 10 * time.Second

// Open connects to cfg.Store.Backend. When the remote backend is unreachable and
// FallbackLocal is set, the local SQLite store is opened instead.
func Open(ctx context.Context, cfg *config.Config) (repository.DocumentStore, error) {
	backend := strings.ToLower(strings.TrimSpace(cfg.Store.Backend))
	store, err := openRemote(ctx, backend, cfg)
	if err == nil {
		log.Info().Str("backend", backend).Msg("document store ready")
		return store, nil
	}
	if !cfg.Store.FallbackLocal || backend == "local" || backend == "memory" {
		return nil, err
	}

	log.Warn().Err(err).Str("backend", backend).Str("path", cfg.Local.Path).
		Msg("remote store unavailable, falling back to local database")
	return local.Open(cfg.Local.Path)
}

func openRemote(ctx context.Context, backend string, cfg *config.Config) (repository.DocumentStore, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	switch backend {
	case "", "local":
		return local.Open(cfg.Local.Path)
	case "memory":
		return repository.NewMemoryStore(), nil
	case "postgres":
		db, err := postgres.NewDB(ctx, &cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		store := postgres.NewStore(db)
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	case "supabase":
		store, err := supabase.NewStore(cfg.Supabase)
		if err != nil {
			return nil, err
		}
		if err := store.Ping(ctx); err != nil {
			return nil, err
		}
		return store, nil
	case "mongodb", "mongo":
		return mongodb.NewStore(ctx, cfg.Mongo.URI, cfg.Mongo.Database)
	}
	return nil, fmt.Errorf("unsupported store backend %q", backend)
}
