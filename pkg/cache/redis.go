package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements Store using Redis. Keys are namespaced with a
// prefix so Flush only touches this store's data.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a Redis cache store and verifies connectivity.
func NewRedisStore(opts ...RedisOption) (*RedisStore, error) {
	cfg := &RedisConfig{
		Host:   "localhost",
		Port:   6379,
		DB:     0,
		Prefix: "fxpulse",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, prefix: cfg.Prefix}, nil
}

func (rs *RedisStore) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return rs.client.Set(ctx, rs.wrapKey(key), value, expiration).Err()
}

func (rs *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := rs.client.Get(ctx, rs.wrapKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	return data, nil
}

func (rs *RedisStore) Delete(ctx context.Context, keys ...string) error {
	wrapped := make([]string, len(keys))
	for i, key := range keys {
		wrapped[i] = rs.wrapKey(key)
	}
	return rs.client.Unlink(ctx, wrapped...).Err()
}

func (rs *RedisStore) Flush(ctx context.Context) error {
	keys, err := rs.client.Keys(ctx, rs.wrapKey("*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return rs.client.Unlink(ctx, keys...).Err()
}

// Close closes the Redis connection.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

func (rs *RedisStore) wrapKey(key string) string {
	return fmt.Sprintf("%s:%s", rs.prefix, key)
}

var _ Store = (*RedisStore)(nil)
