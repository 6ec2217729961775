// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"blog/config"
	"blog/internal/delivery/api/response"
	"blog/internal/delivery/api/session"
	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AuthResponse is returned by signup and signin.
type AuthResponse struct {
	Message string            `json:"message"`
	Token   string            `json:"token"`
	User    entity.PublicUser `json:"user"`
}

// AuthHandler serves the /auth routes.
type AuthHandler struct {
	uc       usecase.AuthUsecase
	sessions *session.Manager
	cfg      *config.Config
	logger   *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, sessions *session.Manager, cfg *config.Config, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:       uc,
		sessions: sessions,
		cfg:      cfg,
		logger:   logger,
	}
}

// Signup handles local account creation.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input usecase.SignupInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid signup input")
	}

	output, err := h.uc.Signup(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		Token:   output.Token,
		User:    output.User,
	})
}

// Signin handles username and password sign-in.
func (h *AuthHandler) Signin(c echo.Context) error {
	var input usecase.SigninInput
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrInvalidInput.WithMessage("Invalid signin input")
	}

	output, err := h.uc.Signin(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, AuthResponse{
		Message: "Sign In successful",
		Token:   output.Token,
		User:    output.User,
	})
}

// Profile returns the public fields of the authenticated user.
func (h *AuthHandler) Profile(c echo.Context) error {
	userID, ok := deliverycontext.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	user, err := h.uc.Profile(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user)
}

// Logout clears the session cookie. It succeeds with or without a session.
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := h.sessions.Extract(c)
	h.sessions.Clear(c)
	h.uc.Logout(c.Request().Context(), token)

	return response.Message(c, http.StatusOK, "Logged out successfully")
}

// GoogleLogin starts the Google sign-in by redirecting to the consent page.
func (h *AuthHandler) GoogleLogin(c echo.Context) error {
	state := uuid.NewString()
	h.sessions.SetOAuthState(c, state)

	return c.Redirect(http.StatusFound, h.uc.GoogleAuthURL(state))
}

// GoogleCallback finishes the Google sign-in, sets the session cookie and
// sends the browser to the frontend.
func (h *AuthHandler) GoogleCallback(c echo.Context) error {
	ctx := c.Request().Context()
	log := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if !h.sessions.ConsumeOAuthState(c, c.QueryParam("state")) {
		log.Warn("Google callback state mismatch")

		return domainerrors.ErrFederatedSignInFailed
	}
	if providerErr := c.QueryParam("error"); providerErr != "" {
		log.Warn("Google sign-in denied", slog.String("error", providerErr))

		return domainerrors.ErrFederatedSignInFailed
	}

	output, err := h.uc.GoogleCallback(ctx, c.QueryParam("code"))
	if err != nil {
		return errors.WithStack(err)
	}
	if output == nil || output.Token == "" {
		return domainerrors.ErrFederatedSignInFailed
	}

	h.sessions.SetToken(c, output.Token, h.uc.SessionTTL())

	return c.Redirect(http.StatusFound, h.cfg.FrontendCallbackURL())
}
