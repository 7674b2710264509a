// Package repository implements the data access layer over the key-value
// collection store. Every write is a read-modify-write of the whole
// collection; a per-repository mutex keeps concurrent handlers from
// interleaving those cycles within this process.
package repository

import (
	"context"
	"strings"
	"sync"

	"psidiario/internal/models"
	"psidiario/internal/observability"
	"psidiario/internal/store"
)

// UserRepository defines persistence operations for users.
//
// Username uniqueness is NOT enforced here; the registration flow checks it
// before calling Create. The storage layer stays a dumb sequence of records.
type UserRepository interface {
	List(ctx context.Context) ([]models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
}

type userRepository struct {
	mu     sync.Mutex
	store  store.Store
	logger *observability.RepoLogger
}

// NewUserRepository returns a new UserRepository implementation.
func NewUserRepository(s store.Store) UserRepository {
	return &userRepository{
		store:  s,
		logger: observability.NewRepoLogger(store.UsersKey),
	}
}

func (r *userRepository) List(ctx context.Context) ([]models.User, error) {
	users := store.GetCollection[models.User](ctx, r.store, store.UsersKey)
	r.logger.LogRead(ctx, map[string]interface{}{"count": len(users)})
	return users, nil
}

// GetByUsername matches case-insensitively and returns (nil, nil) when no
// user has that name.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	users := store.GetCollection[models.User](ctx, r.store, store.UsersKey)
	for i := range users {
		if strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users := store.GetCollection[models.User](ctx, r.store, store.UsersKey)
	users = append(users, *user)
	if err := store.PutCollection(ctx, r.store, store.UsersKey, users); err != nil {
		r.logger.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}

	r.logger.LogCreate(ctx, map[string]interface{}{"user_id": user.ID})
	return nil
}
