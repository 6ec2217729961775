package errors

import (
	"net/http"
	"testing"

	"blog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithMessageKeepsIdentity(t *testing.T) {
	custom := ErrInvalidInput.WithMessage("Name is required")

	assert.True(t, errors.Is(custom, ErrInvalidInput))
	assert.False(t, errors.Is(custom, ErrUsernameTaken))
	assert.Equal(t, "Name is required", custom.Message())
	assert.Equal(t, http.StatusBadRequest, custom.HTTPCode())
	assert.Equal(t, "Invalid input", ErrInvalidInput.Message())
}

func TestBaseError_WrapMessageUnwrapsToAppError(t *testing.T) {
	wrapped := ErrLookupFailed.WrapMessage("find user by id")

	var appErr AppError
	require.True(t, errors.As(wrapped, &appErr))
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode())
	assert.Equal(t, "Contact Support!", appErr.Message())
	assert.Contains(t, wrapped.Error(), "find user by id")
}

func TestTaxonomyStatuses(t *testing.T) {
	tests := []struct {
		err  *BaseError
		code int
		msg  string
	}{
		{ErrUsernameTaken, http.StatusBadRequest, "Username already exists"},
		{ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials!"},
		{ErrUnauthenticated, http.StatusUnauthorized, "Not authenticated"},
		{ErrSessionExpired, http.StatusUnauthorized, "Session expired. Login to Continue!"},
		{ErrAccountCreationFailed, http.StatusInternalServerError, "Cannot create Account. Contact Support!"},
		{ErrFederatedIdentityFailed, http.StatusInternalServerError, "Internal server error"},
		{ErrFederatedSignInFailed, http.StatusUnauthorized, "Google Sign In Failed. Contact Support!"},
	}

	for _, tt := range tests {
		t.Run(tt.err.ErrorCode(), func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.HTTPCode())
			assert.Equal(t, tt.msg, tt.err.Message())
		})
	}
}
