package impl

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/domain/validation"
	"blog/internal/errors"
	mockRepo "blog/internal/mocks/repository"
	mockSvc "blog/internal/mocks/service"
	mockUsecase "blog/internal/mocks/usecase"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// authServiceFixtures holds all test dependencies for auth service tests.
type authServiceFixtures struct {
	service      usecase.AuthUsecase
	userRepo     *mockRepo.MockUserRepository
	hasher       *mockSvc.MockPasswordHasher
	tokenService *mockSvc.MockTokenService
	oauthService *mockSvc.MockOAuthService
	resolver     *mockUsecase.MockIdentityResolver
	logs         *bytes.Buffer
}

func createTestAuthService(t *testing.T) authServiceFixtures {
	userRepo := mockRepo.NewMockUserRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	tokenService := mockSvc.NewMockTokenService(t)
	oauthService := mockSvc.NewMockOAuthService(t)
	resolver := mockUsecase.NewMockIdentityResolver(t)
	logs := &bytes.Buffer{}

	svc := NewAuthService(AuthServiceParams{
		UserRepo:     userRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		OAuthService: oauthService,
		Resolver:     resolver,
		Validator:    validation.New(),
		Logger:       slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
	})

	return authServiceFixtures{
		service:      svc,
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		oauthService: oauthService,
		resolver:     resolver,
		logs:         logs,
	}
}

func assertAppError(t *testing.T, err error, want *domainerrors.BaseError) {
	t.Helper()

	require.Error(t, err)
	assert.True(t, errors.Is(err, want), "want %s, got %v", want.ErrorCode(), err)

	var appErr domainerrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, want.HTTPCode(), appErr.HTTPCode())
}

func validSignup() *usecase.SignupInput {
	return &usecase.SignupInput{Name: "Jane Doe1", Username: "janedoe1", Password: "secret1"}
}

func TestAuthService_Signup_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	newID := uuid.New()

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
	fx.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Name == "Jane Doe1" && u.Username == "janedoe1" && u.PasswordHash == "hashed" && u.OAuthID == ""
		})).
		Run(func(_ context.Context, u *entity.User) { u.ID = newID }).
		Return(nil)
	fx.tokenService.EXPECT().IssueToken(newID).Return("signed-token", nil)

	out, err := fx.service.Signup(ctx, validSignup())
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, entity.PublicUser{ID: newID, Name: "Jane Doe1"}, out.User)
}

func TestAuthService_Signup_InvalidInputSkipsStore(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Signup(context.Background(), &usecase.SignupInput{Name: "Jane", Username: "janedoe1", Password: "secret1"})
	assertAppError(t, err, domainerrors.ErrInvalidInput)
	assert.EqualError(t, err, "Name must be at least 5 characters")

	_, err = fx.service.Signup(context.Background(), &usecase.SignupInput{Name: "Jane Doe1", Username: "janedoe1", Password: "abc"})
	assert.EqualError(t, err, "Password must be at least 6 characters")
}

func TestAuthService_Signup_UsernameTaken(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(&entity.User{ID: uuid.New()}, nil)

	_, err := fx.service.Signup(ctx, validSignup())
	assertAppError(t, err, domainerrors.ErrUsernameTaken)
	assert.EqualError(t, err, "Username already exists")
}

func TestAuthService_Signup_LookupErrorIsInternal(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, errors.New("connection refused"))

	_, err := fx.service.Signup(ctx, validSignup())
	assertAppError(t, err, domainerrors.ErrInternalError)
}

func TestAuthService_Signup_InsertFailures(t *testing.T) {
	tests := []struct {
		name      string
		createErr error
		want      *domainerrors.BaseError
	}{
		{name: "store fault", createErr: errors.New("disk full"), want: domainerrors.ErrAccountCreationFailed},
		{name: "lost unique race", createErr: errors.Wrap(repository.ErrUserAlreadyExists, "username"), want: domainerrors.ErrUsernameTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthService(t)
			ctx := context.Background()

			fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, repository.ErrUserNotFound)
			fx.hasher.EXPECT().Hash("secret1").Return("hashed", nil)
			fx.userRepo.EXPECT().Create(ctx, mock.Anything).Return(tt.createErr)

			_, err := fx.service.Signup(ctx, validSignup())
			assertAppError(t, err, tt.want)
		})
	}
}

func TestAuthService_Signup_HashFailure(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, repository.ErrUserNotFound)
	fx.hasher.EXPECT().Hash("secret1").Return("", errors.New("bcrypt failure"))

	_, err := fx.service.Signup(ctx, validSignup())
	assertAppError(t, err, domainerrors.ErrInternalError)
}

func TestAuthService_Signin_Success(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Jane Doe1", Username: "janedoe1", PasswordHash: "hashed"}

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(user, nil)
	fx.hasher.EXPECT().Check("secret1", "hashed").Return(true)
	fx.tokenService.EXPECT().IssueToken(user.ID).Return("signed-token", nil)

	out, err := fx.service.Signin(ctx, &usecase.SigninInput{Username: "janedoe1", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestAuthService_Signin_UnknownUserAndWrongPasswordLookAlike(t *testing.T) {
	ctx := context.Background()
	input := &usecase.SigninInput{Username: "janedoe1", Password: "wrong1"}

	unknown := createTestAuthService(t)
	unknown.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, repository.ErrUserNotFound)
	_, errUnknown := unknown.service.Signin(ctx, input)

	wrong := createTestAuthService(t)
	wrong.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").
		Return(&entity.User{ID: uuid.New(), Username: "janedoe1", PasswordHash: "hashed"}, nil)
	wrong.hasher.EXPECT().Check("wrong1", "hashed").Return(false)
	_, errWrong := wrong.service.Signin(ctx, input)

	assertAppError(t, errUnknown, domainerrors.ErrInvalidCredentials)
	assertAppError(t, errWrong, domainerrors.ErrInvalidCredentials)
	assert.Equal(t, errUnknown.Error(), errWrong.Error())
	assert.Equal(t, "Invalid credentials!", errWrong.Error())
}

func TestAuthService_Signin_LookupFailed(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()

	fx.userRepo.EXPECT().FindByUsername(ctx, "janedoe1").Return(nil, errors.New("timeout"))

	_, err := fx.service.Signin(ctx, &usecase.SigninInput{Username: "janedoe1", Password: "secret1"})
	assertAppError(t, err, domainerrors.ErrLookupFailed)
}

func TestAuthService_Signin_InvalidShape(t *testing.T) {
	fx := createTestAuthService(t)

	_, err := fx.service.Signin(context.Background(), &usecase.SigninInput{Username: "jd", Password: "secret1"})
	assertAppError(t, err, domainerrors.ErrInvalidInput)
}

func TestAuthService_CompleteOAuth(t *testing.T) {
	fx := createTestAuthService(t)
	ctx := context.Background()
	user := &entity.User{ID: uuid.New(), Name: "Jane Doe", OAuthID: "g-1"}

	fx.resolver.EXPECT().Resolve(ctx, "g-1", "Jane Doe").Return(user, nil)
	fx.tokenService.EXPECT().IssueToken(user.ID).Return("signed-token", nil)

	out, err := fx.service.CompleteOAuth(ctx, "g-1", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "signed-token", out.Token)
	assert.Equal(t, user.ID, out.User.ID)
}

func TestAuthService_CompleteOAuth_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("resolution failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.resolver.EXPECT().Resolve(ctx, "g-1", "Jane Doe").Return(nil, errors.New("store down"))

		_, err := fx.service.CompleteOAuth(ctx, "g-1", "Jane Doe")
		assertAppError(t, err, domainerrors.ErrFederatedIdentityFailed)
	})

	t.Run("resolved user missing", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.resolver.EXPECT().Resolve(ctx, "g-1", "Jane Doe").Return(nil, nil)

		_, err := fx.service.CompleteOAuth(ctx, "g-1", "Jane Doe")
		assertAppError(t, err, domainerrors.ErrFederatedSignInFailed)
	})

	t.Run("credential missing", func(t *testing.T) {
		fx := createTestAuthService(t)
		user := &entity.User{ID: uuid.New(), Name: "Jane Doe", OAuthID: "g-1"}
		fx.resolver.EXPECT().Resolve(ctx, "g-1", "Jane Doe").Return(user, nil)
		fx.tokenService.EXPECT().IssueToken(user.ID).Return("", errors.New("sign failed"))

		_, err := fx.service.CompleteOAuth(ctx, "g-1", "Jane Doe")
		assertAppError(t, err, domainerrors.ErrFederatedSignInFailed)
	})
}

func TestAuthService_GoogleCallback(t *testing.T) {
	ctx := context.Background()

	t.Run("profile fetch failure", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.oauthService.EXPECT().FetchUser(ctx, "code").Return(nil, errors.New("exchange failed"))

		_, err := fx.service.GoogleCallback(ctx, "code")
		assertAppError(t, err, domainerrors.ErrFederatedIdentityFailed)
	})

	t.Run("normalizes display name", func(t *testing.T) {
		fx := createTestAuthService(t)
		user := &entity.User{ID: uuid.New(), Name: "Google User", OAuthID: "g-2"}
		fx.oauthService.EXPECT().FetchUser(ctx, "code").Return(&service.OAuthUser{ID: "g-2", Name: "  "}, nil)
		fx.resolver.EXPECT().Resolve(ctx, "g-2", "Google User").Return(user, nil)
		fx.tokenService.EXPECT().IssueToken(user.ID).Return("signed-token", nil)

		out, err := fx.service.GoogleCallback(ctx, "code")
		require.NoError(t, err)
		assert.Equal(t, "signed-token", out.Token)
	})
}

func TestAuthService_Profile(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()

	t.Run("found", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByID(ctx, userID).
			Return(&entity.User{ID: userID, Name: "Jane Doe1", PasswordHash: "hashed"}, nil)

		profile, err := fx.service.Profile(ctx, userID)
		require.NoError(t, err)
		assert.Equal(t, &entity.PublicUser{ID: userID, Name: "Jane Doe1"}, profile)
	})

	t.Run("vanished", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, repository.ErrUserNotFound)

		_, err := fx.service.Profile(ctx, userID)
		assertAppError(t, err, domainerrors.ErrInvalidCredentials)
	})

	t.Run("store fault", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.userRepo.EXPECT().FindByID(ctx, userID).Return(nil, errors.New("timeout"))

		_, err := fx.service.Profile(ctx, userID)
		assertAppError(t, err, domainerrors.ErrLookupFailed)
	})
}

func TestAuthService_SessionTTLAndAuthURL(t *testing.T) {
	fx := createTestAuthService(t)

	fx.tokenService.EXPECT().TTL().Return(time.Hour)
	fx.oauthService.EXPECT().AuthCodeURL("state-1").Return("https://accounts.google.com/o/oauth2/auth?state=state-1")

	assert.Equal(t, time.Hour, fx.service.SessionTTL())
	assert.Contains(t, fx.service.GoogleAuthURL("state-1"), "state=state-1")
}

func TestAuthService_Logout(t *testing.T) {
	t.Run("valid token names the user", func(t *testing.T) {
		fx := createTestAuthService(t)
		userID := uuid.New()
		fx.tokenService.EXPECT().ValidateToken("good").Return(&service.Claims{UserID: userID}, nil)

		fx.service.Logout(context.Background(), "good")
		assert.Contains(t, fx.logs.String(), "User logged out")
		assert.Contains(t, fx.logs.String(), userID.String())
	})

	t.Run("invalid token is anonymous", func(t *testing.T) {
		fx := createTestAuthService(t)
		fx.tokenService.EXPECT().ValidateToken("stale").Return(nil, service.ErrTokenInvalid)

		fx.service.Logout(context.Background(), "stale")
		assert.NotContains(t, fx.logs.String(), "User logged out")
	})

	t.Run("no token skips validation", func(t *testing.T) {
		fx := createTestAuthService(t)

		fx.service.Logout(context.Background(), "")
		assert.Zero(t, fx.logs.Len())
	})
}

func TestNormalizeDisplayName(t *testing.T) {
	assert.Equal(t, "Google User", normalizeDisplayName(""))
	assert.Equal(t, "Jane Doe", normalizeDisplayName("  Jane Doe "))
	assert.Equal(t, "abcdefghijklmnopqrstuvwxyzabcd", normalizeDisplayName("abcdefghijklmnopqrstuvwxyzabcdefgh"))
	assert.Equal(t, 30, len([]rune(normalizeDisplayName("ééééééééééééééééééééééééééééééééééé"))))
}
