// Package storage provides blob stores for the snapshot person repository.
// A blob is an opaque byte document addressed by key.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrObjectNotFound is returned by Get when no blob is stored under the key
var ErrObjectNotFound = errors.New("storage: object not found")

// BlobStore reads and writes whole documents by key
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

// NewBlobStore builds the backend selected in cfg. redisClient is only used by
// the redis backend and may be nil otherwise.
func NewBlobStore(ctx context.Context, cfg *config.StorageConfig, redisClient *redis.Client, logger *zap.Logger) (BlobStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case config.StorageFile, "":
		return NewFileStore(cfg.Dir)
	case config.StorageRedis:
		if redisClient == nil {
			return nil, errors.New("storage: redis backend requires a redis client")
		}
		return NewRedisBlobStore(redisClient), nil
	case config.StorageS3:
		return NewS3BlobStore(ctx, cfg, WithLogger(logger))
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.Backend)
	}
}
