package ports

import "github.com/meridianhq/user-directory/internal/core/domain"

// TokenVerifier checks signature integrity and expiry of an access token.
// Verification failures are domain.ErrTokenExpired or domain.ErrTokenInvalid;
// the guard boundary collapses both into a single unauthenticated outcome.
type TokenVerifier interface {
	Verify(token string) (*domain.Claims, error)
}

// TokenService mints and verifies signed, time-limited access tokens.
type TokenService interface {
	TokenVerifier
	Issue(claims domain.Claims) (string, error)
}
