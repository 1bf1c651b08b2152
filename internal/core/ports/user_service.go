package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// UpdateUserInput carries a partial profile update; nil fields are left
// unchanged.
type UpdateUserInput struct {
	FirstName    *string
	LastName     *string
	Email        *string
	MobileNumber *string
	Password     *string
}

// UserService owns account state outside of registration/login.
type UserService interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, in UpdateUserInput) (*domain.User, error)
	List(ctx context.Context, page PageInput) (Paged[*domain.User], error)
	// UpdateAccountStatus is the admin moderation override. A DELETED account
	// is terminal and can never change status again.
	UpdateAccountStatus(ctx context.Context, actor domain.Actor, userID, rawStatus string) (*domain.User, error)
	// DeleteOwnAccount soft-deletes: the row stays, status becomes DELETED.
	DeleteOwnAccount(ctx context.Context, userID string) error
	// HardDelete removes the account row. Refused while the user still owns
	// live requests, pending pitches, or pending payments.
	HardDelete(ctx context.Context, actor domain.Actor, userID string) error
}
