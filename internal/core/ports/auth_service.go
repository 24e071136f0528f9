package ports

import (
	"context"
	"time"
)

// RegisterInput carries the fields accepted at registration time. Role is
// deliberately absent: new identities always start with the least-privileged
// role.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	BirthDate time.Time
	City      string
	ZipCode   string
}

// AuthService issues access tokens for login and registration.
type AuthService interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignUp(ctx context.Context, in RegisterInput) (string, error)
}
