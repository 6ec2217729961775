package memory

import (
	"context"
	"time"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"

	"github.com/google/uuid"
)

type userTable struct {
	byID       map[uuid.UUID]*entity.User
	byUsername map[string]uuid.UUID
	byOAuthID  map[string]uuid.UUID
	last       time.Time
}

func newUserTable() *userTable {
	return &userTable{
		byID:       make(map[uuid.UUID]*entity.User),
		byUsername: make(map[string]uuid.UUID),
		byOAuthID:  make(map[string]uuid.UUID),
	}
}

type userRepository struct {
	store *Store
}

// NewUserRepository returns a UserRepository over store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.lookup(id)
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.users.byUsername[username]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.lookup(id)
}

func (r *userRepository) FindByOAuthID(ctx context.Context, oauthID string) (*entity.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.users.byOAuthID[oauthID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return r.lookup(id)
}

// lookup returns a copy so callers never alias stored rows. Callers hold mu.
func (r *userRepository) lookup(id uuid.UUID) (*entity.User, error) {
	user, ok := r.store.users.byID[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	cp := *user

	return &cp, nil
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}
	if !user.IsLocal() && !user.IsFederated() {
		return errors.New("user needs username and password hash or an oauth id")
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	table := r.store.users
	if user.Username != "" {
		if _, taken := table.byUsername[user.Username]; taken {
			return errors.Wrap(repository.ErrUserAlreadyExists, "username")
		}
	}
	if user.OAuthID != "" {
		if _, taken := table.byOAuthID[user.OAuthID]; taken {
			return errors.Wrap(repository.ErrUserAlreadyExists, "oauth id")
		}
	}

	now := r.store.tick(table.last)
	table.last = now

	stored := *user
	stored.ID = uuid.New()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	table.byID[stored.ID] = &stored
	if stored.Username != "" {
		table.byUsername[stored.Username] = stored.ID
	}
	if stored.OAuthID != "" {
		table.byOAuthID[stored.OAuthID] = stored.ID
	}

	user.ID = stored.ID
	user.CreatedAt = stored.CreatedAt
	user.UpdatedAt = stored.UpdatedAt

	return nil
}
