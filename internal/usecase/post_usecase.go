package usecase

import (
	"context"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// ListPostsInput selects one page of the caller's posts.
type ListPostsInput struct {
	UserID uuid.UUID
	Page   int
	Limit  int
	Search string
}

// ListPostsOutput is one page plus totals.
type ListPostsOutput struct {
	Posts      []*entity.Post `json:"posts"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	TotalPosts int64          `json:"totalPosts"`
}

// PostInput carries editable post fields.
type PostInput struct {
	Title   string `json:"title" validate:"required,min=5" label:"Title"`
	Content string `json:"content" validate:"required,min=5" label:"Content"`
}

// PostUsecase manages posts owned by the authenticated caller.
type PostUsecase interface {
	ListPosts(ctx context.Context, input *ListPostsInput) (*ListPostsOutput, error)
	GetPost(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error)
	CreatePost(ctx context.Context, userID uuid.UUID, input *PostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, userID, postID uuid.UUID, input *PostInput) (*entity.Post, error)
	DeletePost(ctx context.Context, userID, postID uuid.UUID) error
}
