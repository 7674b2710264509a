package store

import (
	"context"
	"testing"

	"psidiario/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// backends returns one instance of every Store implementation.
func backends(t *testing.T) map[string]Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlStore, err := NewSQLStore(db)
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	redisStore := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": sqlStore,
		"redis":  redisStore,
	}
}

func TestStore_GetSetDelete(t *testing.T) {
	ctx := context.Background()

	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			raw, err := s.Get(ctx, "missing")
			require.NoError(t, err)
			assert.Nil(t, raw, "absent key must read as nil, not an error")

			require.NoError(t, s.Set(ctx, "k", []byte(`[1,2,3]`)))
			raw, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[1,2,3]`), raw)

			// Whole-value overwrite
			require.NoError(t, s.Set(ctx, "k", []byte(`[9]`)))
			raw, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte(`[9]`), raw)

			require.NoError(t, s.Delete(ctx, "k"))
			raw, err = s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Nil(t, raw)
		})
	}
}

func TestGetCollection_DefaultsToEmpty(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	t.Run("absent key", func(t *testing.T) {
		users := GetCollection[models.User](ctx, s, UsersKey)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})

	t.Run("malformed payload", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, UsersKey, []byte(`{not json!`)))
		users := GetCollection[models.User](ctx, s, UsersKey)
		assert.NotNil(t, users)
		assert.Empty(t, users, "malformed data is treated as no records, never an error")
	})

	t.Run("json null payload", func(t *testing.T) {
		require.NoError(t, s.Set(ctx, UsersKey, []byte(`null`)))
		users := GetCollection[models.User](ctx, s, UsersKey)
		assert.NotNil(t, users)
		assert.Empty(t, users)
	})
}

func TestPutGetCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	entries := []models.DailyEntry{
		{ID: "e1", UserID: "u1", Date: "2026-08-01", Notes: "bom dia", Mood: models.MoodGood, Timestamp: 1000},
		{ID: "e2", UserID: "u1", Date: "2026-08-02", Notes: "dia difícil", Mood: models.MoodBad, Timestamp: 2000},
	}
	require.NoError(t, PutCollection(ctx, s, EntriesKey, entries))

	got := GetCollection[models.DailyEntry](ctx, s, EntriesKey)
	assert.Equal(t, entries, got)
}

func TestGetRecord(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, ok := GetRecord[models.User](ctx, s, SessionKey)
	assert.False(t, ok, "absent session reads as not present")

	require.NoError(t, s.Set(ctx, SessionKey, []byte(`{broken`)))
	_, ok = GetRecord[models.User](ctx, s, SessionKey)
	assert.False(t, ok, "malformed session reads as not present")

	user := models.User{ID: "u1", Username: "ana", FullName: "Ana Silva"}
	require.NoError(t, PutRecord(ctx, s, SessionKey, user))
	got, ok := GetRecord[models.User](ctx, s, SessionKey)
	require.True(t, ok)
	assert.Equal(t, user, got)
}
