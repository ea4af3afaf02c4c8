package usecase

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
)

// DedupGate makes the repeatedly-invoked pollers behave as an idempotent
// event source. The notification store itself is the source of truth for
// "have we already told the user this" - there is no in-memory dedup state,
// so concurrent or restarted scheduler runs stay safe.
type DedupGate struct {
	notificationRepo repository.NotificationRepository
	logger           logger.Logger
	metrics          *metrics.Metrics
}

// NewDedupGate creates a new dedup gate over the notification store.
func NewDedupGate(notificationRepo repository.NotificationRepository, logger logger.Logger, metrics *metrics.Metrics) *DedupGate {
	return &DedupGate{
		notificationRepo: notificationRepo,
		logger:           logger,
		metrics:          metrics,
	}
}

// ShouldEmit reports whether a notification for (user, booking, category) is
// allowed: false when one already exists inside the lookback window. A store
// error is returned to the caller, who skips the emission this cycle.
func (g *DedupGate) ShouldEmit(ctx context.Context, userID, bookingID string, category entity.NotificationCategory, lookback time.Duration) (bool, error) {
	recent, err := g.notificationRepo.FindRecent(ctx, userID, bookingID, category, lookback)
	if err != nil {
		return false, err
	}

	if len(recent) > 0 {
		g.metrics.NotificationsSuppressed.WithLabelValues(string(category)).Inc()
		g.logger.Debug("Duplicate notification suppressed",
			"userId", userID, "bookingId", bookingID, "category", category, "lookback", lookback)
		return false, nil
	}
	return true, nil
}
