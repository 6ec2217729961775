// Package response writes JSON bodies for the API.
package response

import (
	"net/http"

	deliverycontext "blog/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// ErrorResponse is the single error shape returned by every endpoint.
type ErrorResponse struct {
	Message   string `json:"message"`              // User-facing message
	Code      string `json:"code,omitempty"`       // Machine-readable business code
	RequestID string `json:"request_id,omitempty"` // Request tracking ID
}

// MessageResponse carries only a human-readable message.
type MessageResponse struct {
	Message string `json:"message"`
}

// Success writes body with statusCode.
func Success(c echo.Context, statusCode int, body any) error {
	return c.JSON(statusCode, body)
}

// Message writes {"message": message}.
func Message(c echo.Context, statusCode int, message string) error {
	return c.JSON(statusCode, MessageResponse{Message: message})
}

// Error writes the error shape.
func Error(c echo.Context, statusCode int, errorCode string, message string) error {
	return c.JSON(statusCode, ErrorResponse{
		Message:   message,
		Code:      errorCode,
		RequestID: deliverycontext.GetRequestID(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message)
}
