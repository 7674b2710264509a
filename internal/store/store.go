// Package store implements the persistent key-value store holding the
// journal's collections. Each logical collection lives under a single key and
// is always read and written wholesale; there is no partial update primitive.
package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"psidiario/internal/middleware"
)

// Storage keys for the three logical collections. The names are carried over
// from the system this service replaces so existing exports stay readable.
const (
	UsersKey   = "psicolog_users"
	EntriesKey = "psicolog_entries"
	SessionKey = "psicolog_session"
)

// Store is the minimal contract for a collection store backend. Get returns
// (nil, nil) when the key is absent; callers treat absent and malformed
// payloads alike as the empty collection.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// GetCollection reads and decodes a whole collection. Absent keys, backend
// read failures and malformed payloads all decode to the empty collection;
// storage problems are logged but never surfaced to the user.
func GetCollection[T any](ctx context.Context, s Store, key string) []T {
	raw, err := s.Get(ctx, key)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "store read failed, treating as empty collection",
			slog.String("key", key), slog.String("error", err.Error()))
		return []T{}
	}
	if len(raw) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		middleware.Logger.WarnContext(ctx, "store payload malformed, treating as empty collection",
			slog.String("key", key), slog.String("error", err.Error()))
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// PutCollection encodes and writes a whole collection under the given key.
func PutCollection[T any](ctx context.Context, s Store, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}

// GetRecord reads and decodes a single record under the given key. It returns
// false when the key is absent or the payload is malformed.
func GetRecord[T any](ctx context.Context, s Store, key string) (T, bool) {
	var zero T
	raw, err := s.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return zero, false
	}

	var item T
	if err := json.Unmarshal(raw, &item); err != nil {
		middleware.Logger.WarnContext(ctx, "store record malformed, treating as absent",
			slog.String("key", key), slog.String("error", err.Error()))
		return zero, false
	}
	return item, true
}

// PutRecord encodes and writes a single record under the given key.
func PutRecord[T any](ctx context.Context, s Store, key string, item T) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, raw)
}
