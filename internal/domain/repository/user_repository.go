// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"blog/internal/domain/entity"
	"blog/internal/errors"

	"github.com/google/uuid"
)

var (
	// ErrUserNotFound is returned when a lookup matches no row. Any other
	// error from a UserRepository is a store fault.
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists is returned when Create hits the unique constraint
	// on username or oauth id.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// UserRepository defines the credential store operations.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a local account by its handle.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// FindByOAuthID retrieves a federated account by its external identifier.
	FindByOAuthID(ctx context.Context, oauthID string) (*entity.User, error)

	// Create persists a new user. The store assigns ID and timestamps and
	// writes them back into user.
	Create(ctx context.Context, user *entity.User) error
}
