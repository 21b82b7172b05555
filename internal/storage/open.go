package storage

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Ponna-create/wkly-nuts-sub000/internal/config"
)

// Open returns the configured object storage, or a directory-backed one under
// fallbackDir when object storage is disabled or unreachable.
func Open(ctx context.Context, cfg config.ObjectStorageConfig, fallbackDir string) (ObjectStorage, error) {
	if cfg.Enabled {
		client, err := NewMinioClient(ctx, cfg)
		if err == nil {
			return client, nil
		}
		log.Warn().Err(err).Str("endpoint", cfg.Endpoint).Msg("object storage unavailable, writing reports to disk")
	}
	return NewDirStorage(fallbackDir)
}
