// Package google implements the Google authorization code flow on top of golang.org/x/oauth2.
package google

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"blog/config"
	"blog/internal/domain/service"
	"blog/internal/errors"

	"golang.org/x/oauth2"
	googleendpoint "golang.org/x/oauth2/google"
)

const (
	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	// maxUserInfoBody caps how much of the userinfo response is read.
	maxUserInfoBody = 1 << 20
)

var defaultScopes = []string{"profile"}

// OAuthService handles Google OAuth infrastructure operations
type OAuthService struct {
	config      *oauth2.Config
	userInfoURL string
}

// NewOAuthService creates a new Google OAuth service
func NewOAuthService(cfg *config.Config) service.OAuthService {
	oauthCfg := &oauth2.Config{
		Endpoint: googleendpoint.Endpoint,
		Scopes:   defaultScopes,
	}
	if cfg.GoogleOAuth != nil {
		oauthCfg.ClientID = cfg.GoogleOAuth.ClientID
		oauthCfg.ClientSecret = cfg.GoogleOAuth.ClientSecret
		oauthCfg.RedirectURL = cfg.GoogleOAuth.RedirectURI
		if len(cfg.GoogleOAuth.Scopes) > 0 {
			oauthCfg.Scopes = cfg.GoogleOAuth.Scopes
		}
	}

	return newOAuthService(oauthCfg, googleUserInfoURL)
}

func newOAuthService(oauthCfg *oauth2.Config, userInfoURL string) *OAuthService {
	return &OAuthService{
		config:      oauthCfg,
		userInfoURL: userInfoURL,
	}
}

// AuthCodeURL constructs the consent page URL with the CSRF state parameter.
func (s *OAuthService) AuthCodeURL(state string) string {
	return s.config.AuthCodeURL(state)
}

// FetchUser exchanges the authorization code and reads the Google profile.
func (s *OAuthService) FetchUser(ctx context.Context, code string) (*service.OAuthUser, error) {
	if strings.TrimSpace(code) == "" {
		return nil, errors.New("authorization code is empty")
	}

	token, err := s.config.Exchange(ctx, code)
	if err != nil {
		return nil, errors.Wrap(err, "failed to exchange code for token")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create user info request")
	}

	resp, err := s.config.Client(ctx, token).Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user info")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxUserInfoBody))
	if err != nil {
		return nil, errors.Wrap(err, "failed to read user info response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("user info request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var googleUser struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &googleUser); err != nil {
		return nil, errors.Wrap(err, "failed to decode user info response")
	}

	if googleUser.ID == "" {
		return nil, errors.New("user info response has no id")
	}

	return &service.OAuthUser{
		ID:   googleUser.ID,
		Name: googleUser.Name,
	}, nil
}
