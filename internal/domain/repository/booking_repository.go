package repository

import (
	"context"
	"time"

	"tripwatch-service/internal/domain/entity"
)

// BookingDetailsUpdate carries the last-observed flight state the engine is
// allowed to write back onto a booking.
type BookingDetailsUpdate struct {
	Gate             string
	Terminal         string
	LastDelayMinutes int
	LastCheckedAt    time.Time
}

// BookingRepository defines the interface for booking read access plus the
// single opportunistic write the engine performs.
type BookingRepository interface {
	ListDueForReminder(ctx context.Context, userID string, withinDays int) ([]*entity.Booking, error)
	ListFlightBookings(ctx context.Context, userID string, withinHours int) ([]*entity.Booking, error)
	ListGeocodedActivities(ctx context.Context, tripID string, withinDays int) ([]*entity.Booking, error)
	ListUserIDsWithUpcoming(ctx context.Context, withinDays int) ([]string, error)
	ListUserIDsWithFlights(ctx context.Context, withinHours int) ([]string, error)
	UpdateDetails(ctx context.Context, bookingID, userID string, update BookingDetailsUpdate) error
}
