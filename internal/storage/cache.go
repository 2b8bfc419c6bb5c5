package storage

import (
	"context"
	"errors"
	"sync"
)

// ErrCacheMiss is returned by Cache.Get when the key is not present.
var ErrCacheMiss = errors.New("cache: key not found")

// Cache is the volatile tier in front of the Store. Values are serialized
// link records keyed by short URL; there is no TTL, invalidation is
// explicit.
type Cache interface {
	Exists(ctx context.Context, key string) (bool, error)
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Rename(ctx context.Context, oldKey, newKey string) error
	Remove(ctx context.Context, key string) error
}

// MemoryCache is the in-process Cache used by tests and DSN-less runs.
type MemoryCache struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{values: map[string][]byte{}}
}

func (cache *MemoryCache) Exists(_ context.Context, key string) (bool, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	_, ok := cache.values[key]
	return ok, nil
}

func (cache *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	value, ok := cache.values[key]
	if !ok {
		return nil, ErrCacheMiss
	}
	return value, nil
}

func (cache *MemoryCache) Set(_ context.Context, key string, value []byte) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.values[key] = value
	return nil
}

func (cache *MemoryCache) Rename(_ context.Context, oldKey, newKey string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	value, ok := cache.values[oldKey]
	if !ok {
		return ErrCacheMiss
	}
	delete(cache.values, oldKey)
	cache.values[newKey] = value
	return nil
}

func (cache *MemoryCache) Remove(_ context.Context, key string) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	delete(cache.values, key)
	return nil
}
