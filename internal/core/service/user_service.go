package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// UserService owns account state outside of registration and login.
type UserService struct {
	users    ports.UserRepository
	requests ports.RequestRepository
	pitches  ports.PitchRepository
	payments ports.PaymentRepository
	notifier ports.Notifier
	log      zerolog.Logger
}

func NewUserService(users ports.UserRepository, requests ports.RequestRepository, pitches ports.PitchRepository, payments ports.PaymentRepository, notifier ports.Notifier, log zerolog.Logger) *UserService {
	return &UserService{users: users, requests: requests, pitches: pitches, payments: payments, notifier: notifier, log: log}
}

func (s *UserService) Get(ctx context.Context, userID string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// Update applies a partial profile edit; nil fields stay untouched. Email and
// mobile changes are checked for uniqueness against other accounts.
func (s *UserService) Update(ctx context.Context, userID string, in ports.UpdateUserInput) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	if in.FirstName != nil {
		u.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		u.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if email != u.Email {
			if other, err := s.users.FindByEmail(ctx, email); err == nil && other.ID != u.ID {
				return nil, fmt.Errorf("update user: %w", domain.ErrEmailExists)
			}
			u.Email = email
		}
	}
	if in.MobileNumber != nil {
		mobile := strings.TrimSpace(*in.MobileNumber)
		if mobile != "" && mobile != u.MobileNumber {
			if other, err := s.users.FindByMobile(ctx, mobile); err == nil && other.ID != u.ID {
				return nil, fmt.Errorf("update user: %w", domain.ErrMobileExists)
			}
		}
		u.MobileNumber = mobile
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, fmt.Errorf("update user: %w: password cannot be empty", domain.ErrValidation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("update user: %w", err)
		}
		u.PasswordHash = string(hash)
	}
	u.UpdatedAt = time.Now().UTC()

	updated, err := s.users.Update(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.notifier.Notify(ports.NotificationEvent{
		UserID: updated.ID,
		Kind:   ports.KindProfileUpdated,
		Mail: &ports.MailMessage{
			To:      updated.Email,
			Subject: "Profile Updated",
			Body:    fmt.Sprintf("Hello %s,\n\nYour profile details were updated. If this wasn't you, please contact support.", updated.FullName()),
		},
	})

	s.log.Info().Str("user_id", updated.ID).Msg("user profile updated")
	return updated, nil
}

func (s *UserService) List(ctx context.Context, page ports.PageInput) (ports.Paged[*domain.User], error) {
	page = page.Normalize()
	items, total, err := s.users.List(ctx, page)
	if err != nil {
		return ports.Paged[*domain.User]{}, fmt.Errorf("list users: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

// UpdateAccountStatus is the admin moderation override. A DELETED account is
// terminal and can never be restored.
func (s *UserService) UpdateAccountStatus(ctx context.Context, actor domain.Actor, userID, rawStatus string) (*domain.User, error) {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionOverrideAccountStatus) {
		return nil, fmt.Errorf("update account status: %w: admin role required", domain.ErrUnauthorized)
	}

	target, err := domain.ParseAccountStatus(rawStatus)
	if err != nil {
		return nil, fmt.Errorf("update account status: %w", err)
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("update account status: %w", err)
	}
	if u.AccountStatus == domain.AccountDeleted {
		return nil, fmt.Errorf("update account status: %w: account is deleted", domain.ErrInvalidTransition)
	}

	if err := s.users.UpdateAccountStatus(ctx, userID, target); err != nil {
		return nil, fmt.Errorf("update account status: %w", err)
	}
	u.AccountStatus = target
	u.UpdatedAt = time.Now().UTC()

	s.log.Info().Str("user_id", userID).Str("status", string(target)).Msg("account status updated")
	return u, nil
}

// DeleteOwnAccount soft-deletes: the row stays, the status becomes DELETED.
func (s *UserService) DeleteOwnAccount(ctx context.Context, userID string) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if u.AccountStatus == domain.AccountDeleted {
		return fmt.Errorf("delete account: %w: account is already deleted", domain.ErrInvalidTransition)
	}
	if err := s.users.UpdateAccountStatus(ctx, userID, domain.AccountDeleted); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("account soft-deleted")
	return nil
}

// HardDelete removes the account row. It is refused while the user still owns
// live requests, pending pitches, or pending payments.
func (s *UserService) HardDelete(ctx context.Context, actor domain.Actor, userID string) error {
	if !domain.CanAct(actor, domain.Ownership{}, domain.ActionHardDeleteUser) {
		return fmt.Errorf("hard delete user: %w: admin role required", domain.ErrUnauthorized)
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}

	switch u.Role {
	case domain.RoleClient:
		if n, err := s.requests.CountLiveByClient(ctx, userID); err != nil {
			return fmt.Errorf("hard delete user: %w", err)
		} else if n > 0 {
			return fmt.Errorf("hard delete user: %w: user owns %d live service requests", domain.ErrUserReferenced, n)
		}
	case domain.RoleProvider:
		if n, err := s.requests.CountLiveByProvider(ctx, userID); err != nil {
			return fmt.Errorf("hard delete user: %w", err)
		} else if n > 0 {
			return fmt.Errorf("hard delete user: %w: user is assigned to %d live service requests", domain.ErrUserReferenced, n)
		}
		if n, err := s.pitches.CountPendingByProvider(ctx, userID); err != nil {
			return fmt.Errorf("hard delete user: %w", err)
		} else if n > 0 {
			return fmt.Errorf("hard delete user: %w: user has %d pending pitches", domain.ErrUserReferenced, n)
		}
	}
	if n, err := s.payments.CountPendingByUser(ctx, userID); err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	} else if n > 0 {
		return fmt.Errorf("hard delete user: %w: user has %d pending payments", domain.ErrUserReferenced, n)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("hard delete user: %w", err)
	}
	s.log.Info().Str("user_id", userID).Msg("account hard-deleted")
	return nil
}
