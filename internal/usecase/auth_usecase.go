// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"blog/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to create a local account.
// Username charset rules live in the browser form; the backend checks length only.
type SignupInput struct {
	Name     string `json:"name" validate:"required,min=5,max=30" label:"Name"`
	Username string `json:"username" validate:"required,min=5,max=30" label:"Username"`
	Password string `json:"password" validate:"required,min=6,maxbytes=72" label:"Password"`
}

// SigninInput defines the data required to sign in to a local account.
// Password length is not checked here: a short password is just a wrong one.
type SigninInput struct {
	Username string `json:"username" validate:"required,min=5,max=30" label:"Username"`
	Password string `json:"password" validate:"required,maxbytes=72" label:"Password"`
}

// --- Output DTOs ---

// AuthOutput is a freshly issued session credential and its owner.
type AuthOutput struct {
	Token string
	User  entity.PublicUser
}

// AuthUsecase coordinates credential issuance for every sign-in path.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*AuthOutput, error)
	Signin(ctx context.Context, input *SigninInput) (*AuthOutput, error)

	// GoogleAuthURL returns the provider consent URL bound to state.
	GoogleAuthURL(state string) string
	// GoogleCallback exchanges the authorization code and completes sign-in.
	GoogleCallback(ctx context.Context, code string) (*AuthOutput, error)
	// CompleteOAuth resolves the federated identity and issues a credential.
	CompleteOAuth(ctx context.Context, oauthID, displayName string) (*AuthOutput, error)

	Profile(ctx context.Context, userID uuid.UUID) (*entity.PublicUser, error)
	// Logout records the end of the session behind token, if it is still valid.
	Logout(ctx context.Context, token string)

	// SessionTTL is the lifetime of issued credentials, used for cookie max-age.
	SessionTTL() time.Duration
}

// IdentityResolver finds or creates the local user behind a federated identity.
type IdentityResolver interface {
	Resolve(ctx context.Context, oauthID, displayName string) (*entity.User, error)
}
