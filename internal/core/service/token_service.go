package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/meridianhq/user-directory/internal/core/domain"
)

// TokenService mints and verifies HS256 access tokens. The signing secret is
// process-wide; rotating it invalidates every previously issued token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService builds a token service; a zero ttl falls back to one hour.
// A negative ttl is allowed and mints already-expired tokens, which tests use
// to exercise the expiry path.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl == 0 {
		ttl = time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue serializes the claim set into a signed token expiring ttl from now.
func (s *TokenService) Issue(claims domain.Claims) (string, error) {
	now := time.Now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   claims.Subject,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})
	return t.SignedString(s.secret)
}

// Verify checks signature and expiry. Expiry maps to domain.ErrTokenExpired,
// every other failure (wrong secret, tampered payload, malformed structure,
// unexpected algorithm) to domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (*domain.Claims, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenInvalid, err)
	}
	if !parsed.Valid {
		return nil, domain.ErrTokenInvalid
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)
	return &domain.Claims{Subject: sub, Email: email, Role: role}, nil
}
