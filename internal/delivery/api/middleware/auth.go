package middleware

import (
	"log/slog"

	"blog/internal/delivery/api/session"
	deliverycontext "blog/internal/delivery/context"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware is the session gate in front of protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	sessions *session.Manager
	logger   *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, sessions *session.Manager, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, sessions: sessions, logger: logger}
}

// Authenticate verifies the request credential and attaches the user id.
// It never touches the store.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := m.sessions.Extract(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		claims, err := m.tokenSvc.ValidateToken(token)
		if err != nil {
			m.sessions.Clear(c)
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Rejected session credential", slog.Any("error", err))

			return domainerrors.ErrSessionExpired
		}

		deliverycontext.SetUserID(c, claims.UserID)

		return next(c)
	}
}
