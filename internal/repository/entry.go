package repository

import (
	"context"
	"sort"
	"sync"

	"psidiario/internal/models"
	"psidiario/internal/observability"
	"psidiario/internal/store"
)

// EntryRepository defines persistence operations for journal entries.
type EntryRepository interface {
	// Create appends the entry and persists the whole collection. Input is
	// trusted; the form-level checks (mood set, notes non-empty) happen in
	// the caller.
	Create(ctx context.Context, entry *models.DailyEntry) error
	// ListByUser returns the user's entries ordered by Timestamp descending,
	// recomputed from the full collection on every call.
	ListByUser(ctx context.Context, userID string) ([]models.DailyEntry, error)
}

type entryRepository struct {
	mu     sync.Mutex
	store  store.Store
	logger *observability.RepoLogger
}

// NewEntryRepository returns a new EntryRepository implementation.
func NewEntryRepository(s store.Store) EntryRepository {
	return &entryRepository{
		store:  s,
		logger: observability.NewRepoLogger(store.EntriesKey),
	}
}

func (r *entryRepository) Create(ctx context.Context, entry *models.DailyEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := store.GetCollection[models.DailyEntry](ctx, r.store, store.EntriesKey)
	entries = append(entries, *entry)
	if err := store.PutCollection(ctx, r.store, store.EntriesKey, entries); err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}

	r.logger.LogCreate(ctx, map[string]interface{}{
		"entry_id": entry.ID,
		"user_id":  entry.UserID,
		"mood":     int(entry.Mood),
	})
	return nil
}

func (r *entryRepository) ListByUser(ctx context.Context, userID string) ([]models.DailyEntry, error) {
	all := store.GetCollection[models.DailyEntry](ctx, r.store, store.EntriesKey)

	var mine []models.DailyEntry
	for _, e := range all {
		if e.UserID == userID {
			mine = append(mine, e)
		}
	}
	sort.SliceStable(mine, func(i, j int) bool {
		return mine[i].Timestamp > mine[j].Timestamp
	})

	r.logger.LogRead(ctx, map[string]interface{}{"user_id": userID, "count": len(mine)})
	return mine, nil
}
