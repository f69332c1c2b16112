package registry

import (
	"context"
	"time"

	"github.com/finapp2p/backend/internal/domain/person"
	"github.com/finapp2p/backend/internal/infrastructure/cache"
	"github.com/finapp2p/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

const cacheKeyPrefix = "registry:cnpj:"

// CachedClient serves registry records from a cache.Store, falling through
// to the wrapped Fetcher on a miss. Cache failures are logged and never fail
// the lookup. Errors are not cached.
type CachedClient struct {
	next   Fetcher
	store  cache.Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedClient wraps next with store. A zero ttl keeps entries until evicted.
func NewCachedClient(next Fetcher, store cache.Store, ttl time.Duration, logger *zap.Logger) *CachedClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedClient{
		next:   next,
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// FetchCompany implements Fetcher
func (c *CachedClient) FetchCompany(ctx context.Context, raw string) (*CompanyRecord, error) {
	cnpj, err := Normalize(raw)
	if err != nil {
		return nil, err
	}
	key := cacheKeyPrefix + cnpj

	data, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.Warn("Registry cache read failed", zap.String("cnpj", cnpj), zap.Error(err))
	case ok:
		rec, decodeErr := decodeRecord(data)
		if decodeErr == nil {
			return rec, nil
		}
		c.logger.Warn("Dropping unreadable registry cache entry", zap.String("cnpj", cnpj), zap.Error(decodeErr))
		_ = c.store.Delete(ctx, key)
	}

	rec, err := c.next.FetchCompany(ctx, cnpj)
	if err != nil {
		return nil, err
	}

	if data, err := encodeRecord(rec); err != nil {
		c.logger.Warn("Failed to encode registry record", zap.String("cnpj", cnpj), zap.Error(err))
	} else if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Registry cache write failed", zap.String("cnpj", cnpj), zap.Error(err))
	}
	return rec, nil
}

// LookupCompany fetches raw and maps the record onto a Company
func (c *CachedClient) LookupCompany(ctx context.Context, raw string) (*person.Company, error) {
	return lookup(ctx, c, raw)
}

var _ Fetcher = (*CachedClient)(nil)

// Lookup is a Fetcher that also maps records onto companies
type Lookup interface {
	Fetcher
	LookupCompany(ctx context.Context, raw string) (*person.Company, error)
}

// NewLookup builds the registry client for cfg, wrapped in a cache when
// caching is enabled and a store is given.
func NewLookup(cfg config.RegistryConfig, store cache.Store, logger *zap.Logger) Lookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	client := NewClient(cfg, WithLogger(logger))
	if !cfg.CacheEnabled || store == nil {
		return client
	}
	return NewCachedClient(client, store, cfg.CacheTTL, logger)
}
