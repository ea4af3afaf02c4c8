package usecase

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
)

// Booking horizon the reminder sweep looks at. Wide enough to cover the
// longest lead time (168h).
const reminderHorizonDays = 7

// ReminderMonitor is the reminder job body: sweep upcoming bookings per user,
// run the reminder engine and emit through the dedup gate.
type ReminderMonitor struct {
	bookingRepo      repository.BookingRepository
	notificationRepo repository.NotificationRepository
	engine           *ReminderEngine
	gate             *DedupGate
	logger           logger.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

// NewReminderMonitor creates the reminder job body.
func NewReminderMonitor(
	bookingRepo repository.BookingRepository,
	notificationRepo repository.NotificationRepository,
	engine *ReminderEngine,
	gate *DedupGate,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *ReminderMonitor {
	return &ReminderMonitor{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		engine:           engine,
		gate:             gate,
		logger:           logger,
		metrics:          metrics,
		now:              time.Now,
	}
}

// Run performs one reminder sweep across all users. One user's failure never
// blocks the remaining users.
func (m *ReminderMonitor) Run(ctx context.Context) error {
	userIDs, err := m.bookingRepo.ListUserIDsWithUpcoming(ctx, reminderHorizonDays)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if err := m.processUser(ctx, userID); err != nil {
			m.logger.Error("Reminder sweep failed for user", "userId", userID, "error", err)
		}
	}
	return nil
}

func (m *ReminderMonitor) processUser(ctx context.Context, userID string) error {
	bookings, err := m.bookingRepo.ListDueForReminder(ctx, userID, reminderHorizonDays)
	if err != nil {
		return err
	}

	now := m.now()
	for _, booking := range bookings {
		for _, intent := range m.engine.Evaluate(booking, now) {
			m.emit(ctx, booking, intent)
		}
	}
	return nil
}

// emit authorizes the intent through the dedup gate and persists it. Write
// failures are logged and the sweep moves on; a missed notification is the
// worst acceptable outcome.
func (m *ReminderMonitor) emit(ctx context.Context, booking *entity.Booking, intent NotificationIntent) {
	ok, err := m.gate.ShouldEmit(ctx, booking.UserID, booking.ID, intent.Category, intent.Lookback)
	if err != nil {
		m.logger.Error("Dedup check failed", "bookingId", booking.ID, "category", intent.Category, "error", err)
		return
	}
	if !ok {
		return
	}

	notification := &entity.Notification{
		UserID:    booking.UserID,
		TripID:    booking.TripID,
		BookingID: booking.ID,
		Category:  intent.Category,
		Title:     intent.Title,
		Message:   intent.Message,
		Priority:  intent.Priority,
		Metadata:  intent.Metadata,
	}
	if err := m.notificationRepo.Create(ctx, notification); err != nil {
		m.logger.Error("Failed to persist reminder", "bookingId", booking.ID, "error", err)
		return
	}

	m.metrics.NotificationsCreated.WithLabelValues(string(intent.Category)).Inc()
	m.logger.Info("Reminder created",
		"userId", booking.UserID, "bookingId", booking.ID,
		"category", intent.Category, "priority", intent.Priority)
}
