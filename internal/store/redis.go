package store

import (
	"context"
	"errors"
	"log"
	"strings"

	"psidiario/internal/observability"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists collections as opaque payloads in Redis, one key per
// collection, no expiry.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore connects to Redis at addr. Both plain host:port addresses and
// redis:// URLs are accepted.
func NewRedisStore(addr string) (*RedisStore, error) {
	var opts *redis.Options
	if strings.Contains(addr, "://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, err
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	log.Println("Redis store connected successfully")
	return &RedisStore{client: client}, nil
}

// NewRedisStoreWithClient wraps an existing client, used by tests.
func NewRedisStoreWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Client exposes the underlying connection so callers can share it for
// concerns beyond collection storage, such as rate limiting.
func (r *RedisStore) Client() *redis.Client {
	return r.client
}

func (r *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	observability.StoreOperations.WithLabelValues("redis", "get").Inc()

	raw, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		observability.StoreErrors.WithLabelValues("redis", "get").Inc()
		return nil, err
	}
	return raw, nil
}

func (r *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	observability.StoreOperations.WithLabelValues("redis", "set").Inc()

	err := r.client.Set(ctx, key, value, 0).Err()
	if err != nil {
		observability.StoreErrors.WithLabelValues("redis", "set").Inc()
	}
	return err
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	observability.StoreOperations.WithLabelValues("redis", "delete").Inc()

	err := r.client.Del(ctx, key).Err()
	if err != nil {
		observability.StoreErrors.WithLabelValues("redis", "delete").Inc()
	}
	return err
}

func (r *RedisStore) Close() error {
	return r.client.Close()
}
