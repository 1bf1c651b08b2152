package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// RegisterInput carries the data needed to create a new account.
type RegisterInput struct {
	FirstName    string
	LastName     string
	Email        string
	MobileNumber string
	Password     string
	Role         string
}

// AuthService implements registration and login (the identity gate's issuing
// side).
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
}
