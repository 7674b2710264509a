// Package bootstrap wires the configured storage backend for the server and
// the command-line tools.
package bootstrap

import (
	"fmt"

	"psidiario/internal/config"
	"psidiario/internal/database"
	"psidiario/internal/store"

	"github.com/redis/go-redis/v9"
)

// OpenStore opens the storage backend named by STORE_DRIVER. The returned
// client is non-nil only for the redis driver, where the same connection
// also serves rate limiting.
func OpenStore(cfg *config.Config) (store.Store, *redis.Client, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemoryStore(), nil, nil
	case "sqlite", "postgres":
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("database connection failed: %w", err)
		}
		st, err := store.NewSQLStore(db)
		if err != nil {
			return nil, nil, fmt.Errorf("store migration failed: %w", err)
		}
		return st, nil, nil
	case "redis":
		rs, err := store.NewRedisStore(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("redis connection failed: %w", err)
		}
		return rs, rs.Client(), nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
