package impl

import (
	"context"
	"testing"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/infra/persistence/memory"
	mockRepo "blog/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestResolver(userRepo repository.UserRepository) *identityResolver {
	return NewIdentityResolver(IdentityResolverParams{
		UserRepo: userRepo,
		Logger:   newDiscardLogger(),
	}).(*identityResolver)
}

func TestIdentityResolver_ExistingUser(t *testing.T) {
	ctx := context.Background()
	userRepo := mockRepo.NewMockUserRepository(t)
	existing := &entity.User{ID: uuid.New(), Name: "Jane Doe", OAuthID: "g-1"}

	userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(existing, nil).Once()

	user, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
	require.NoError(t, err)
	assert.Same(t, existing, user)
}

func TestIdentityResolver_CreatesThenRereads(t *testing.T) {
	ctx := context.Background()
	userRepo := mockRepo.NewMockUserRepository(t)
	canonical := &entity.User{ID: uuid.New(), Name: "Jane Doe", OAuthID: "g-1"}

	userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, repository.ErrUserNotFound).Once()
	// The insert result is ignored; the re-read is authoritative.
	userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.OAuthID == "g-1" && u.Name == "Jane Doe" && u.PasswordHash == "" && u.Username == ""
		})).
		Return(nil).Once()
	userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(canonical, nil).Once()

	user, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
	require.NoError(t, err)
	assert.Same(t, canonical, user)
}

func TestIdentityResolver_ToleratesConcurrentCreate(t *testing.T) {
	ctx := context.Background()
	userRepo := mockRepo.NewMockUserRepository(t)
	winner := &entity.User{ID: uuid.New(), Name: "Jane Doe", OAuthID: "g-1"}

	userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, repository.ErrUserNotFound).Once()
	userRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.Wrap(repository.ErrUserAlreadyExists, "oauth id")).Once()
	userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(winner, nil).Once()

	user, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, winner.ID, user.ID)
}

func TestIdentityResolver_StoreFailuresDoNotRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("lookup", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, errors.New("timeout")).Once()

		_, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
		assert.Error(t, err)
	})

	t.Run("insert", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, repository.ErrUserNotFound).Once()
		userRepo.EXPECT().Create(ctx, mock.Anything).Return(errors.New("disk full")).Once()

		_, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
		assert.Error(t, err)
	})

	t.Run("re-read", func(t *testing.T) {
		userRepo := mockRepo.NewMockUserRepository(t)
		userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, repository.ErrUserNotFound).Once()
		userRepo.EXPECT().Create(ctx, mock.Anything).Return(nil).Once()
		userRepo.EXPECT().FindByOAuthID(ctx, "g-1").Return(nil, repository.ErrUserNotFound).Once()

		_, err := newTestResolver(userRepo).Resolve(ctx, "g-1", "Jane Doe")
		assert.ErrorIs(t, err, repository.ErrUserNotFound)
	})
}

func TestIdentityResolver_SecondCompletionReusesRow(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resolver := newTestResolver(memory.NewUserRepository(store))

	first, err := resolver.Resolve(ctx, "g-42", "Jane Doe")
	require.NoError(t, err)

	second, err := resolver.Resolve(ctx, "g-42", "Jane Renamed")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Jane Doe", second.Name)
}
