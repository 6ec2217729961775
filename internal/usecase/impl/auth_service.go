// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/domain/validation"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const (
	maxDisplayNameLength = 30
	defaultDisplayName   = "Google User"
)

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	oauthService service.OAuthService
	resolver     usecase.IdentityResolver
	validator    *validation.Validator
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OAuthService service.OAuthService
	Resolver     usecase.IdentityResolver
	Validator    *validation.Validator
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		oauthService: params.OAuthService,
		resolver:     params.Resolver,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup creates a local account and issues its first credential.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.AuthOutput, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	_, err := srv.userRepo.FindByUsername(ctx, input.Username)
	switch {
	case err == nil:
		return nil, domainerrors.ErrUsernameTaken
	case !errors.Is(err, repository.ErrUserNotFound):
		srv.log(ctx).Error("Failed to check username", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("check username")
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password", slog.Any("error", err))

		return nil, domainerrors.ErrInternalError.WrapMessage("hash password")
	}

	user := &entity.User{
		Name:         input.Name,
		Username:     input.Username,
		PasswordHash: hash,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		// Lost a race against a concurrent signup with the same username.
		if errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, domainerrors.ErrUsernameTaken
		}
		srv.log(ctx).Error("Failed to create user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrAccountCreationFailed.WrapMessage("create user")
	}

	srv.log(ctx).Info("User signed up", slog.Any("userID", user.ID))

	return srv.issue(ctx, user, domainerrors.ErrInternalError)
}

// Signin verifies a local account's password. Unknown usernames and wrong
// passwords produce the same InvalidCredentials outcome.
func (srv *authService) Signin(ctx context.Context, input *usecase.SigninInput) (*usecase.AuthOutput, error) {
	if err := srv.validator.Struct(input); err != nil {
		return nil, err
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Failed to look up user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.ErrLookupFailed.WrapMessage("find user by username")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	return srv.issue(ctx, user, domainerrors.ErrInternalError)
}

// GoogleAuthURL delegates to the provider client.
func (srv *authService) GoogleAuthURL(state string) string {
	return srv.oauthService.AuthCodeURL(state)
}

// GoogleCallback exchanges the code for a profile and completes sign-in.
func (srv *authService) GoogleCallback(ctx context.Context, code string) (*usecase.AuthOutput, error) {
	profile, err := srv.oauthService.FetchUser(ctx, code)
	if err != nil {
		srv.log(ctx).Error("Failed to fetch Google profile", slog.Any("error", err))

		return nil, domainerrors.ErrFederatedIdentityFailed.WrapMessage("fetch google profile")
	}

	return srv.CompleteOAuth(ctx, profile.ID, normalizeDisplayName(profile.Name))
}

// CompleteOAuth resolves or creates the federated user and issues a credential.
func (srv *authService) CompleteOAuth(ctx context.Context, oauthID, displayName string) (*usecase.AuthOutput, error) {
	if strings.TrimSpace(oauthID) == "" {
		return nil, domainerrors.ErrFederatedSignInFailed.WrapMessage("empty oauth id")
	}

	user, err := srv.resolver.Resolve(ctx, oauthID, normalizeDisplayName(displayName))
	if err != nil {
		srv.log(ctx).Error("Failed to resolve federated identity", slog.String("oauthID", oauthID), slog.Any("error", err))

		return nil, domainerrors.ErrFederatedIdentityFailed.WrapMessage("resolve identity")
	}
	if user == nil || user.ID == uuid.Nil {
		srv.log(ctx).Error("Federated identity resolved to no user", slog.String("oauthID", oauthID))

		return nil, domainerrors.ErrFederatedSignInFailed.WrapMessage("resolved user missing")
	}

	return srv.issue(ctx, user, domainerrors.ErrFederatedSignInFailed)
}

// Profile returns the public fields of an already gate-verified user.
func (srv *authService) Profile(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Identity vanished between issuance and use.
			return nil, domainerrors.ErrInvalidCredentials
		}
		srv.log(ctx).Error("Failed to load profile", slog.Any("userID", userID), slog.Any("error", err))

		return nil, domainerrors.ErrLookupFailed.WrapMessage("find user by id")
	}

	public := user.Public()

	return &public, nil
}

// Logout has no server-side state to revoke; bearer tokens stay valid until expiry.
// An empty or invalid token is an anonymous logout.
func (srv *authService) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}

	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		return
	}

	srv.log(ctx).Debug("User logged out", slog.Any("userID", claims.UserID))
}

// SessionTTL returns the lifetime of issued credentials.
func (srv *authService) SessionTTL() time.Duration {
	return srv.tokenService.TTL()
}

// issue mints the credential; failure maps to onFailure.
func (srv *authService) issue(ctx context.Context, user *entity.User, onFailure *domainerrors.BaseError) (*usecase.AuthOutput, error) {
	token, err := srv.tokenService.IssueToken(user.ID)
	if err != nil || token == "" {
		srv.log(ctx).Error("Failed to issue token", slog.Any("userID", user.ID), slog.Any("error", err))

		return nil, onFailure.WrapMessage("issue token")
	}

	return &usecase.AuthOutput{
		Token: token,
		User:  user.Public(),
	}, nil
}

// normalizeDisplayName fits a provider name into the name column.
func normalizeDisplayName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return defaultDisplayName
	}

	if utf8.RuneCountInString(name) > maxDisplayNameLength {
		name = strings.TrimSpace(string([]rune(name)[:maxDisplayNameLength]))
	}

	return name
}
