package impl

import (
	"context"
	"testing"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/validation"
	"blog/internal/errors"
	mockRepo "blog/internal/mocks/repository"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func createTestPostService(t *testing.T) (usecase.PostUsecase, *mockRepo.MockPostRepository) {
	postRepo := mockRepo.NewMockPostRepository(t)

	svc := NewPostService(PostServiceParams{
		PostRepo:  postRepo,
		Validator: validation.New(),
		Config:    newTestConfig(),
		Logger:    newDiscardLogger(),
	})

	return svc, postRepo
}

func TestPostService_ListPosts_Paging(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	tests := []struct {
		name       string
		input      usecase.ListPostsInput
		wantFilter repository.PostFilter
		total      int64
		wantPages  int
		wantPage   int
	}{
		{
			name:       "defaults",
			input:      usecase.ListPostsInput{UserID: userID},
			wantFilter: repository.PostFilter{UserID: userID, Offset: 0, Limit: 4},
			total:      9,
			wantPages:  3,
			wantPage:   1,
		},
		{
			name:       "second page with search",
			input:      usecase.ListPostsInput{UserID: userID, Page: 2, Limit: 4, Search: "go"},
			wantFilter: repository.PostFilter{UserID: userID, Search: "go", Offset: 4, Limit: 4},
			total:      8,
			wantPages:  2,
			wantPage:   2,
		},
		{
			name:       "limit clamped",
			input:      usecase.ListPostsInput{UserID: userID, Page: -3, Limit: 500},
			wantFilter: repository.PostFilter{UserID: userID, Offset: 0, Limit: 10},
			total:      0,
			wantPages:  0,
			wantPage:   1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, postRepo := createTestPostService(t)
			posts := []*entity.Post{{ID: uuid.New(), UserID: userID, Title: "Hello world"}}
			postRepo.EXPECT().List(ctx, tt.wantFilter).Return(posts, tt.total, nil)

			out, err := svc.ListPosts(ctx, &tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, out.Page)
			assert.Equal(t, tt.wantPages, out.TotalPages)
			assert.Equal(t, tt.total, out.TotalPosts)
			assert.Len(t, out.Posts, 1)
		})
	}
}

func TestPostService_ListPosts_StoreFailure(t *testing.T) {
	svc, postRepo := createTestPostService(t)
	postRepo.EXPECT().List(mock.Anything, mock.Anything).Return(nil, int64(0), errors.New("timeout"))

	_, err := svc.ListPosts(context.Background(), &usecase.ListPostsInput{UserID: uuid.New()})
	assertAppError(t, err, domainerrors.ErrPostOperationFailed)
}

func TestPostService_CreatePost(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("valid", func(t *testing.T) {
		svc, postRepo := createTestPostService(t)
		postRepo.EXPECT().
			Create(ctx, mock.MatchedBy(func(p *entity.Post) bool {
				return p.UserID == userID && p.Title == "Hello world" && p.Content == "First post"
			})).
			Run(func(_ context.Context, p *entity.Post) { p.ID = uuid.New() }).
			Return(nil)

		post, err := svc.CreatePost(ctx, userID, &usecase.PostInput{Title: "Hello world", Content: "First post"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, post.ID)
	})

	t.Run("short title", func(t *testing.T) {
		svc, _ := createTestPostService(t)

		_, err := svc.CreatePost(ctx, userID, &usecase.PostInput{Title: "Hi", Content: "First post"})
		assertAppError(t, err, domainerrors.ErrInvalidInput)
		assert.EqualError(t, err, "Title must be at least 5 characters")
	})
}

func TestPostService_NotFoundAndForeignPostsLookAlike(t *testing.T) {
	ctx := context.Background()
	userID, postID := uuid.New(), uuid.New()
	input := &usecase.PostInput{Title: "Hello world", Content: "Edited post"}

	svc, postRepo := createTestPostService(t)
	postRepo.EXPECT().FindByID(ctx, userID, postID).Return(nil, repository.ErrPostNotFound)
	postRepo.EXPECT().Update(ctx, mock.Anything).Return(repository.ErrPostNotFound)
	postRepo.EXPECT().Delete(ctx, userID, postID).Return(repository.ErrPostNotFound)

	_, err := svc.GetPost(ctx, userID, postID)
	assertAppError(t, err, domainerrors.ErrPostNotFound)

	_, err = svc.UpdatePost(ctx, userID, postID, input)
	assertAppError(t, err, domainerrors.ErrPostNotFound)

	err = svc.DeletePost(ctx, userID, postID)
	assertAppError(t, err, domainerrors.ErrPostNotFound)
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	userID, postID := uuid.New(), uuid.New()

	svc, postRepo := createTestPostService(t)
	postRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.ID == postID && p.UserID == userID && p.Title == "Updated title"
		})).
		Return(nil)
	postRepo.EXPECT().Delete(ctx, userID, postID).Return(errors.New("timeout"))

	post, err := svc.UpdatePost(ctx, userID, postID, &usecase.PostInput{Title: "Updated title", Content: "Updated body"})
	require.NoError(t, err)
	assert.Equal(t, "Updated title", post.Title)

	err = svc.DeletePost(ctx, userID, postID)
	assertAppError(t, err, domainerrors.ErrPostOperationFailed)
}
