package service

import (
	"time"

	"blog/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrTokenInvalid is the single verification failure. Bad signatures,
// malformed input and expiry are deliberately indistinguishable.
var ErrTokenInvalid = errors.New("token invalid")

// Claims defines the claims carried by a session credential.
type Claims struct {
	UserID uuid.UUID `json:"-"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies stateless session credentials.
type TokenService interface {
	// IssueToken mints a credential for userID that expires after TTL.
	IssueToken(userID uuid.UUID) (string, error)

	// ValidateToken returns the decoded claims or ErrTokenInvalid.
	ValidateToken(tokenString string) (*Claims, error)

	// TTL returns the credential lifetime.
	TTL() time.Duration
}
