package middleware

import (
	"log/slog"
	"net/http"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/delivery/api/response"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"

	"github.com/labstack/echo/v4"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError is the echo HTTPErrorHandler. Only the taxonomy message
// reaches the client; causes stay in the logs.
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	ctx := c.Request().Context()
	log := deliverycontext.GetLoggerOrDefault(ctx, m.logger)

	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			log.Error("Request failed",
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
		}
		_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		m.handleEchoError(c, httpErr)

		return
	}

	log.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")
}

func (m *ErrorMiddleware) handleEchoError(c echo.Context, httpErr *echo.HTTPError) {
	switch httpErr.Code {
	case http.StatusNotFound:
		_ = response.Error(c, http.StatusNotFound, domainerrors.ErrNotFound.ErrorCode(), domainerrors.ErrNotFound.Message())

		return
	case http.StatusInternalServerError:
		m.logger.Error("Echo internal error", slog.Any("error", httpErr))
		_ = response.InternalServerError(c, "INTERNAL_ERROR", "Internal server error")

		return
	}

	message := http.StatusText(httpErr.Code)
	if msg, ok := httpErr.Message.(string); ok && msg != "" {
		message = msg
	}

	_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message)
}
