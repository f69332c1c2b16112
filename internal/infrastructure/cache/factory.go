package cache

import (
	"context"
	"fmt"

	"github.com/finapp2p/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// StoreFactory creates cache stores based on configuration
type StoreFactory struct {
	redisConfig           config.RedisConfig
	keyPrefix             string
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// StoreFactoryOption is a functional option for configuring the factory
type StoreFactoryOption func(*StoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory store when Redis is unavailable.
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// WithKeyPrefix namespaces the Redis keys
func WithKeyPrefix(prefix string) StoreFactoryOption {
	return func(f *StoreFactory) {
		f.keyPrefix = prefix
	}
}

// NewStoreFactory creates a new factory
func NewStoreFactory(cfg config.RedisConfig, opts ...StoreFactoryOption) *StoreFactory {
	f := &StoreFactory{
		redisConfig:           cfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateRedisStore creates a Redis-backed store
func (f *StoreFactory) CreateRedisStore(ctx context.Context) (Store, error) {
	client, err := NewRedisClient(ctx, f.redisConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis cache store: %w", err)
	}
	return NewRedisStore(client, f.keyPrefix), nil
}

// CreateStore tries Redis first and falls back to an in-memory store when
// Redis is unavailable and fallback is allowed. In-memory caches are not shared
// across instances.
func (f *StoreFactory) CreateStore(ctx context.Context) (Store, error) {
	store, err := f.CreateRedisStore(ctx)
	if err == nil {
		f.logger.Info("using Redis cache store", zap.String("addr", f.redisConfig.Addr()))
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory cache store", zap.Error(err))
	return NewInMemoryStore(), nil
}
