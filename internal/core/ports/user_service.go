package ports

import (
	"context"
	"time"

	"github.com/meridianhq/user-directory/internal/core/domain"
)

// CreateUserInput carries the fields for direct user creation.
type CreateUserInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate time.Time
	City      string
	ZipCode   string
}

// UpdateUserInput is a partial update: nil fields are left untouched.
// Role is not updatable through this path.
type UpdateUserInput struct {
	Email     *string
	Password  *string
	FirstName *string
	LastName  *string
	BirthDate *time.Time
	City      *string
	ZipCode   *string
}

// UserService exposes CRUD operations over the user directory.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindOne(ctx context.Context, id string) (*domain.User, error)
	Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error)
	Remove(ctx context.Context, id string) (*domain.User, error)
}
