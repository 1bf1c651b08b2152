package ports

import (
	"context"

	"github.com/eventura/marketplace-system/internal/core/domain"
)

// NotificationService owns the in-app inbox. Writes arrive from the
// dispatcher workers; reads and the read flag belong to the inbox owner.
type NotificationService interface {
	Create(ctx context.Context, userID, message string) (*domain.Notification, error)
	List(ctx context.Context, userID string, isRead *bool, page PageInput) (Paged[*domain.Notification], error)
	MarkRead(ctx context.Context, userID, notificationID string) (*domain.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
}
