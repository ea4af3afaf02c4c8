package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// NotificationRepository defines the interface for the notification store.
// FindRecent is the dedup gate's source of truth: it must return every
// notification for the same (user, booking, category) created within the
// lookback span.
type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindRecent(ctx context.Context, userID, bookingID string, category entity.NotificationCategory, lookback time.Duration) ([]*entity.Notification, error)
}
