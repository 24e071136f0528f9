package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/meridianhq/user-directory/internal/core/domain"
	"github.com/meridianhq/user-directory/internal/core/ports"
)

// LoginThrottle abstracts the failed-attempt store (Redis).
type LoginThrottle interface {
	TooMany(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuthService implements login and registration on top of the user directory.
type AuthService struct {
	repo     ports.UserRepository
	tokens   ports.TokenService
	throttle LoginThrottle
	logger   zerolog.Logger
}

// NewAuthService wires the authenticator. throttle may be nil, in which case
// failed-login throttling is disabled.
func NewAuthService(repo ports.UserRepository, tokens ports.TokenService, throttle LoginThrottle, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, throttle: throttle, logger: logger}
}

// SignIn verifies the credential pair and returns a fresh access token.
// An unknown email and a wrong password produce the identical error so a
// caller cannot enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	if blocked := s.tooManyFailures(ctx, email); blocked {
		return "", domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, email)
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("sign in: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, email)
		return "", domain.ErrInvalidCredentials
	}

	s.resetFailures(ctx, email)

	token, err := s.tokens.Issue(domain.Claims{Subject: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return "", fmt.Errorf("sign in: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Msg("user signed in")
	return token, nil
}

// SignUp registers a new identity and returns an access token for it
// (auto-login). The email pre-check fails fast on the common duplicate case;
// the unique index on the store is the actual arbiter when two registrations
// race past the pre-check.
func (s *AuthService) SignUp(ctx context.Context, in ports.RegisterInput) (string, error) {
	if in.Email == "" || in.Password == "" {
		return "", domain.ErrInvalidCredentials
	}

	existing, err := s.repo.FindByEmail(ctx, in.Email)
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("sign up: %w", err)
	}
	if existing != nil {
		return "", domain.ErrEmailInUse
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("sign up: hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &domain.User{
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BirthDate:    in.BirthDate,
		City:         in.City,
		ZipCode:      in.ZipCode,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrEmailInUse) {
			return "", domain.ErrEmailInUse
		}
		s.logger.Error().Err(err).Msg("failed to create user")
		return "", fmt.Errorf("sign up: create user: %w", err)
	}

	// Auto-login: claims come straight from the created record, no second
	// credential check.
	token, err := s.tokens.Issue(domain.Claims{Subject: created.ID, Email: created.Email, Role: created.Role})
	if err != nil {
		return "", fmt.Errorf("sign up: issue token: %w", err)
	}

	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return token, nil
}

// tooManyFailures reports whether the email is currently throttled. Store
// errors degrade open: the login proceeds and the error is logged.
func (s *AuthService) tooManyFailures(ctx context.Context, email string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.TooMany(ctx, email)
	if err != nil {
		s.logger.Warn().Err(err).Msg("login throttle check failed, proceeding")
		return false
	}
	return blocked
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}

func (s *AuthService) resetFailures(ctx context.Context, email string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.Reset(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to reset login failures")
	}
}
