package repository

import (
	"context"

	"blog/internal/domain/entity"
	"blog/internal/errors"

	"github.com/google/uuid"
)

// ErrPostNotFound is returned when no post matches both id and owner.
var ErrPostNotFound = errors.New("post not found")

// PostFilter narrows a post listing. Offset and Limit are applied after
// ordering by creation time, newest first.
type PostFilter struct {
	UserID uuid.UUID
	Search string // Case-insensitive substring of the title; empty matches all.
	Offset int
	Limit  int
}

// PostRepository defines post persistence. Every operation is scoped to the
// owning user so a post belonging to someone else behaves as absent.
type PostRepository interface {
	// List returns one page of matching posts and the total match count.
	List(ctx context.Context, filter PostFilter) ([]*entity.Post, int64, error)

	FindByID(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error)

	Create(ctx context.Context, post *entity.Post) error

	// Update overwrites title and content and refreshes UpdatedAt.
	Update(ctx context.Context, post *entity.Post) error

	Delete(ctx context.Context, userID, postID uuid.UUID) error
}
