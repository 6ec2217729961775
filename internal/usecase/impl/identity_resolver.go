package impl

import (
	"context"
	"log/slog"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/usecase"

	"go.uber.org/fx"
)

// identityResolver maps a federated profile onto a local user row.
type identityResolver struct {
	userRepo repository.UserRepository
	logger   *slog.Logger
}

// IdentityResolverParams holds dependencies for the resolver, injected by Fx.
type IdentityResolverParams struct {
	fx.In

	UserRepo repository.UserRepository
	Logger   *slog.Logger
}

// NewIdentityResolver is the constructor for identityResolver.
func NewIdentityResolver(params IdentityResolverParams) usecase.IdentityResolver {
	return &identityResolver{
		userRepo: params.UserRepo,
		logger:   params.Logger,
	}
}

// Resolve looks the user up by oauthID and creates it on first sight. After
// creating, the row is always re-read by oauthID rather than trusting the
// insert result. A concurrent first login that loses the unique-constraint
// race falls through to the same re-read. No retries.
func (r *identityResolver) Resolve(ctx context.Context, oauthID, displayName string) (*entity.User, error) {
	log := deliverycontext.GetLoggerOrDefault(ctx, r.logger)

	user, err := r.userRepo.FindByOAuthID(ctx, oauthID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "find federated user")
	}

	newUser := &entity.User{
		Name:    displayName,
		OAuthID: oauthID,
	}
	if err := r.userRepo.Create(ctx, newUser); err != nil {
		if !errors.Is(err, repository.ErrUserAlreadyExists) {
			return nil, errors.Wrap(err, "create federated user")
		}
		log.Debug("Federated user created concurrently", slog.String("oauthID", oauthID))
	} else {
		log.Info("Federated user created", slog.String("oauthID", oauthID))
	}

	user, err = r.userRepo.FindByOAuthID(ctx, oauthID)
	if err != nil {
		return nil, errors.Wrap(err, "re-read federated user")
	}

	return user, nil
}
