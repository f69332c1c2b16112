package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBlobStore keeps blobs as plain redis strings without expiry
type RedisBlobStore struct {
	client    *redis.Client
	keyPrefix string
}

// RedisBlobStoreOption configures a RedisBlobStore
type RedisBlobStoreOption func(*RedisBlobStore)

// WithKeyPrefix namespaces every key
func WithKeyPrefix(prefix string) RedisBlobStoreOption {
	return func(s *RedisBlobStore) {
		s.keyPrefix = prefix
	}
}

// NewRedisBlobStore creates a RedisBlobStore over an existing client
func NewRedisBlobStore(client *redis.Client, opts ...RedisBlobStoreOption) *RedisBlobStore {
	s := &RedisBlobStore{client: client}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get reads the blob stored under key
func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get object from redis: %w", err)
	}
	return data, nil
}

// Put replaces the blob stored under key
func (s *RedisBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := s.client.Set(ctx, s.keyPrefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to put object to redis: %w", err)
	}
	return nil
}

// Delete removes key. Missing keys are ignored.
func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("failed to delete object from redis: %w", err)
	}
	return nil
}

var _ BlobStore = (*RedisBlobStore)(nil)
