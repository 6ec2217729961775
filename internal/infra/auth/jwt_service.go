// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"blog/config"
	"blog/internal/domain/service"
	"blog/internal/errors"
)

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
type jwtService struct {
	secret []byte           // Signing key, loaded once at startup.
	issuer string           // Service name placed in the iss claim.
	ttl    time.Duration    // Credential lifetime.
	now    func() time.Time // Clock used for both signing and verification.
}

// NewJWTService is the constructor for jwtService.
// Startup fails when no signing key is configured.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" {
		return nil, errors.New("jwt signing key must be provided (secretKey.access)")
	}

	ttl := time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService([]byte(cfg.SecretKey.Access), cfg.Env.ServiceName, ttl, time.Now), nil
}

func newJWTService(secret []byte, issuer string, ttl time.Duration, now func() time.Time) *jwtService {
	return &jwtService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    now,
	}
}

// IssueToken signs a credential carrying userID as subject.
func (s *jwtService) IssueToken(userID uuid.UUID) (string, error) {
	issuedAt := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// ValidateToken checks signature, algorithm and expiry. Every failure
// collapses to service.ErrTokenInvalid.
func (s *jwtService) ValidateToken(tokenString string) (*service.Claims, error) {
	registered := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, registered, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return nil, service.ErrTokenInvalid
	}

	userID, err := uuid.Parse(registered.Subject)
	if err != nil {
		return nil, service.ErrTokenInvalid
	}

	return &service.Claims{
		UserID:           userID,
		RegisteredClaims: *registered,
	}, nil
}

// TTL returns the configured credential lifetime.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
