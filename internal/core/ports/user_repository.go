package ports

import (
	"context"

	"github.com/meridianhq/user-directory/internal/core/domain"
)

// UserRepository defines the persistence contract for the user directory.
// Lookups return domain.ErrUserNotFound when no record matches, and
// domain.ErrInvalidUserID when the identifier is not in the accepted shape.
// Create returns domain.ErrEmailInUse on a unique-index violation.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id string, user *domain.User) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}
