package impl

import (
	"context"
	"log/slog"

	"blog/config"
	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/validation"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	defaultPostPageSize = 4
	defaultPostMaxPage  = 50
)

// postService implements the PostUsecase interface.
type postService struct {
	postRepo        repository.PostRepository
	validator       *validation.Validator
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	PostRepo  repository.PostRepository
	Validator *validation.Validator
	Config    *config.Config
	Logger    *slog.Logger
}

// NewPostService is the constructor for postService.
func NewPostService(params PostServiceParams) usecase.PostUsecase {
	pageSize, maxPage := defaultPostPageSize, defaultPostMaxPage
	if params.Config != nil && params.Config.Posts != nil {
		if params.Config.Posts.DefaultPageSize > 0 {
			pageSize = params.Config.Posts.DefaultPageSize
		}
		if params.Config.Posts.MaxPageSize > 0 {
			maxPage = params.Config.Posts.MaxPageSize
		}
	}

	return &postService{
		postRepo:        params.PostRepo,
		validator:       params.Validator,
		defaultPageSize: pageSize,
		maxPageSize:     max(maxPage, pageSize),
		logger:          params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListPosts returns one page of the caller's posts, newest first.
func (srv *postService) ListPosts(ctx context.Context, input *usecase.ListPostsInput) (*usecase.ListPostsOutput, error) {
	page := max(input.Page, 1)
	limit := input.Limit
	if limit <= 0 {
		limit = srv.defaultPageSize
	}
	limit = min(limit, srv.maxPageSize)

	posts, total, err := srv.postRepo.List(ctx, repository.PostFilter{
		UserID: input.UserID,
		Search: input.Search,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, srv.storeFailure(ctx, err, "list posts")
	}

	return &usecase.ListPostsOutput{
		Posts:      posts,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
		TotalPosts: total,
	}, nil
}

func (srv *postService) GetPost(ctx context.Context, userID, postID uuid.UUID) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, userID, postID)
	if err != nil {
		return nil, srv.mapError(ctx, err, "find post")
	}

	return post, nil
}

func (srv *postService) CreatePost(ctx context.Context, userID uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	post := &entity.Post{
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := srv.postRepo.Create(ctx, post); err != nil {
		return nil, srv.storeFailure(ctx, err, "create post")
	}

	srv.log(ctx).Debug("Post created", slog.Any("postID", post.ID))

	return post, nil
}

func (srv *postService) UpdatePost(ctx context.Context, userID, postID uuid.UUID, input *usecase.PostInput) (*entity.Post, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	post := &entity.Post{
		ID:      postID,
		UserID:  userID,
		Title:   input.Title,
		Content: input.Content,
	}
	if err := srv.postRepo.Update(ctx, post); err != nil {
		return nil, srv.mapError(ctx, err, "update post")
	}

	return post, nil
}

func (srv *postService) DeletePost(ctx context.Context, userID, postID uuid.UUID) error {
	if err := srv.postRepo.Delete(ctx, userID, postID); err != nil {
		return srv.mapError(ctx, err, "delete post")
	}

	return nil
}

// mapError treats missing and foreign posts alike.
func (srv *postService) mapError(ctx context.Context, err error, op string) error {
	if errors.Is(err, repository.ErrPostNotFound) {
		return domainerrors.ErrPostNotFound
	}

	return srv.storeFailure(ctx, err, op)
}

func (srv *postService) storeFailure(ctx context.Context, err error, op string) error {
	srv.log(ctx).Error("Post store failure", slog.String("op", op), slog.Any("error", err))

	return domainerrors.ErrPostOperationFailed.WrapMessage(op)
}
