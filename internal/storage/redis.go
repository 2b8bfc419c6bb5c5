package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisCache implements Cache on go-redis. Every operation is a single
// round trip; connections come from the client's pool and are released
// when the call returns, so nothing is held across logical operations.
type RedisCache struct {
	Client *redis.Client
}

func NewRedisCache(addr, password string) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return &RedisCache{Client: client}, nil
}

func (cache *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	count, err := cache.Client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (cache *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := cache.Client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (cache *RedisCache) Set(ctx context.Context, key string, value []byte) error {
	// No TTL: entries live until explicitly invalidated or renamed.
	return cache.Client.Set(ctx, key, value, 0).Err()
}

func (cache *RedisCache) Rename(ctx context.Context, oldKey, newKey string) error {
	return cache.Client.Rename(ctx, oldKey, newKey).Err()
}

func (cache *RedisCache) Remove(ctx context.Context, key string) error {
	return cache.Client.Unlink(ctx, key).Err()
}
