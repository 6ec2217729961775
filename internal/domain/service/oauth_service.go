package service

import (
	"context"
)

// OAuthUser is the transient profile handed back by the identity provider.
type OAuthUser struct {
	ID   string // Provider-specific user ID (Google's 'sub'/'id')
	Name string // Display name as reported by the provider
}

// OAuthService drives the authorization code flow against an external provider.
type OAuthService interface {
	// AuthCodeURL returns the consent page URL carrying state.
	AuthCodeURL(state string) string

	// FetchUser exchanges the authorization code and fetches the profile.
	FetchUser(ctx context.Context, code string) (*OAuthUser, error)
}
