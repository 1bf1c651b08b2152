package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventura/marketplace-system/internal/core/domain"
	"github.com/eventura/marketplace-system/internal/core/ports"
)

// UnreadCounterCache caches per-user unread notification counts. A cache miss
// or failure is never an error to the caller; the count falls back to the
// repository.
type UnreadCounterCache interface {
	Get(ctx context.Context, userID string) (int64, bool, error)
	Set(ctx context.Context, userID string, count int64) error
	Invalidate(ctx context.Context, userID string) error
}

// NotificationService implements the in-app inbox.
type NotificationService struct {
	notifications ports.NotificationRepository
	cache         UnreadCounterCache
	log           zerolog.Logger
}

func NewNotificationService(notifications ports.NotificationRepository, cache UnreadCounterCache, log zerolog.Logger) *NotificationService {
	return &NotificationService{notifications: notifications, cache: cache, log: log}
}

// Create persists an unread notification and drops the cached count for the
// recipient. It is called by the dispatcher workers, not by handlers.
func (s *NotificationService) Create(ctx context.Context, userID, message string) (*domain.Notification, error) {
	now := time.Now().UTC()
	created, err := s.notifications.Create(ctx, &domain.Notification{
		UserID:    userID,
		Message:   message,
		IsRead:    false,
		CreatedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate unread counter")
	}
	return created, nil
}

func (s *NotificationService) List(ctx context.Context, userID string, isRead *bool, page ports.PageInput) (ports.Paged[*domain.Notification], error) {
	page = page.Normalize()
	items, total, err := s.notifications.ListByUser(ctx, userID, isRead, page)
	if err != nil {
		return ports.Paged[*domain.Notification]{}, fmt.Errorf("list notifications: %w", err)
	}
	return ports.NewPaged(items, total, page), nil
}

// MarkRead flips the read flag. Only the inbox owner may mark their own
// notifications.
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID string) (*domain.Notification, error) {
	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	if n.UserID != userID {
		return nil, fmt.Errorf("mark notification read: %w: notification belongs to another user", domain.ErrUnauthorized)
	}
	if n.IsRead {
		return n, nil
	}

	if err := s.notifications.MarkRead(ctx, notificationID); err != nil {
		return nil, fmt.Errorf("mark notification read: %w", err)
	}
	n.IsRead = true

	if err := s.cache.Invalidate(ctx, userID); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to invalidate unread counter")
	}
	return n, nil
}

// UnreadCount serves from the counter cache when warm, otherwise counts in the
// repository and backfills the cache.
func (s *NotificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	if count, ok, err := s.cache.Get(ctx, userID); err == nil && ok {
		return count, nil
	} else if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("unread counter cache unavailable")
	}

	count, err := s.notifications.CountUnread(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	if err := s.cache.Set(ctx, userID, count); err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to backfill unread counter")
	}
	return count, nil
}
