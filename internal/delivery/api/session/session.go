// Package session moves the session credential between HTTP requests and
// responses: extraction from the Authorization header or cookie, and the
// cookies that carry it back to the browser.
package session

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"blog/config"

	"github.com/labstack/echo/v4"
)

const (
	bearerPrefix = "Bearer "

	// OAuthStateCookie holds the CSRF state of an in-flight Google sign-in.
	OAuthStateCookie = "oauth_state"
	oauthStatePath   = "/auth/google"
	oauthStateTTL    = 10 * time.Minute
)

// TokenExtractor pulls a candidate credential out of a request. It reports
// false when its transport carries none.
type TokenExtractor func(c echo.Context) (string, bool)

// FromBearerHeader reads `Authorization: Bearer <token>`.
func FromBearerHeader(c echo.Context) (string, bool) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// FromCookie reads the named cookie.
func FromCookie(name string) TokenExtractor {
	return func(c echo.Context) (string, bool) {
		cookie, err := c.Cookie(name)
		if err != nil || cookie.Value == "" {
			return "", false
		}

		return cookie.Value, true
	}
}

// Manager owns the session and OAuth state cookies.
type Manager struct {
	cookieName string
	sameSite   http.SameSite
	secure     bool
	extractors []TokenExtractor
}

// NewManager builds a Manager from the session config.
func NewManager(cfg *config.Config) *Manager {
	name := "token"
	sameSiteName := ""
	if cfg.Session != nil {
		if cfg.Session.CookieName != "" {
			name = cfg.Session.CookieName
		}
		sameSiteName = cfg.Session.SameSite
	}

	sameSite := ParseSameSite(sameSiteName)
	secure := cfg.SecureCookies()
	// Browsers drop SameSite=None cookies without Secure.
	if sameSite == http.SameSiteNoneMode {
		secure = true
	}

	return &Manager{
		cookieName: name,
		sameSite:   sameSite,
		secure:     secure,
		extractors: []TokenExtractor{FromBearerHeader, FromCookie(name)},
	}
}

// ParseSameSite maps "lax", "strict" and "none" to http.SameSite; anything
// else is lax.
func ParseSameSite(value string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}

// CookieName is the name of the session cookie.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Extract returns the first credential found, header before cookie.
func (m *Manager) Extract(c echo.Context) (string, bool) {
	for _, extract := range m.extractors {
		if token, ok := extract(c); ok {
			return token, true
		}
	}

	return "", false
}

// SetToken writes the session cookie with a lifetime of ttl.
func (m *Manager) SetToken(c echo.Context, token string, ttl time.Duration) {
	c.SetCookie(m.cookie(m.cookieName, token, "/", ttl))
}

// Clear expires the session cookie.
func (m *Manager) Clear(c echo.Context) {
	c.SetCookie(m.expired(m.cookieName, "/"))
}

// SetOAuthState stores state for the callback to compare against.
func (m *Manager) SetOAuthState(c echo.Context, state string) {
	cookie := m.cookie(OAuthStateCookie, state, oauthStatePath, oauthStateTTL)
	// The callback arrives as a top-level navigation from Google.
	cookie.SameSite = http.SameSiteLaxMode
	c.SetCookie(cookie)
}

// ConsumeOAuthState clears the state cookie and reports whether it matched
// state. The cookie is single use.
func (m *Manager) ConsumeOAuthState(c echo.Context, state string) bool {
	cookie, err := c.Cookie(OAuthStateCookie)
	expired := m.expired(OAuthStateCookie, oauthStatePath)
	expired.SameSite = http.SameSiteLaxMode
	c.SetCookie(expired)

	if err != nil || cookie.Value == "" || state == "" {
		return false
	}

	return subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(state)) == 1
}

func (m *Manager) cookie(name, value, path string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}

func (m *Manager) expired(name, path string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     path,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: m.sameSite,
	}
}
