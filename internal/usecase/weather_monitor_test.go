package usecase

import (
	"context"
	"testing"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func geocodedActivity(id, tripID string) *entity.Booking {
	lat, lng := 48.2082, 16.3738
	return &entity.Booking{
		ID:       id,
		UserID:   "u1",
		TripID:   tripID,
		Category: entity.CategoryActivity,
		Name:     "City Walking Tour",
		Date:     time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
		Details:  entity.BookingDetails{Latitude: &lat, Longitude: &lng},
	}
}

func newWeatherMonitor(bookings *fakeBookingRepo, notifications *fakeNotificationRepo, weather *fakeWeatherProvider) *WeatherMonitor {
	trips := &fakeTripRepo{trips: []*entity.Trip{{ID: "t1", UserID: "u1", Name: "Vienna", Status: entity.TripActive}}}
	return NewWeatherMonitor(
		trips,
		bookings,
		notifications,
		weather,
		NewDedupGate(notifications, logger.Nop(), newTestMetrics()),
		logger.Nop(),
		newTestMetrics(),
	)
}

func TestWeatherMonitorAlertsOnConcerningConditions(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*entity.Booking{geocodedActivity("b1", "t1")}}
	notifications := newFakeNotificationRepo()
	weather := &fakeWeatherProvider{report: &entity.WeatherReport{
		Condition:    "Thunderstorm",
		Description:  "heavy thunderstorm",
		TemperatureC: 19,
	}}

	monitor := newWeatherMonitor(bookings, notifications, weather)
	require.NoError(t, monitor.Run(context.Background()))

	created := notifications.byCategory(entity.CategoryWeatherAlert)
	require.Len(t, created, 1)
	assert.Equal(t, entity.PriorityHigh, created[0].Priority)
	assert.Contains(t, created[0].Message, "heavy thunderstorm")

	// Same conditions within the lookback: suppressed.
	require.NoError(t, monitor.Run(context.Background()))
	assert.Len(t, notifications.byCategory(entity.CategoryWeatherAlert), 1)
	assert.Equal(t, 2, weather.calls)
}

func TestWeatherMonitorIgnoresBenignConditions(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*entity.Booking{geocodedActivity("b1", "t1")}}
	notifications := newFakeNotificationRepo()
	weather := &fakeWeatherProvider{report: &entity.WeatherReport{Condition: "Clear", Description: "clear sky"}}

	monitor := newWeatherMonitor(bookings, notifications, weather)
	require.NoError(t, monitor.Run(context.Background()))

	assert.Empty(t, notifications.notifications)
}

func TestWeatherMonitorSkipsActivityOnProviderFailure(t *testing.T) {
	bookings := &fakeBookingRepo{bookings: []*entity.Booking{geocodedActivity("b1", "t1")}}
	notifications := newFakeNotificationRepo()
	weather := &fakeWeatherProvider{err: context.DeadlineExceeded}

	monitor := newWeatherMonitor(bookings, notifications, weather)
	require.NoError(t, monitor.Run(context.Background()), "a provider failure must not fail the sweep")

	assert.Empty(t, notifications.notifications)
}

func TestWeatherMonitorSkipsUngeocodedActivities(t *testing.T) {
	activity := geocodedActivity("b1", "t1")
	activity.Details.Latitude = nil
	activity.Details.Longitude = nil

	bookings := &fakeBookingRepo{bookings: []*entity.Booking{activity}}
	notifications := newFakeNotificationRepo()
	weather := &fakeWeatherProvider{report: &entity.WeatherReport{Condition: "Rain"}}

	monitor := newWeatherMonitor(bookings, notifications, weather)
	require.NoError(t, monitor.Run(context.Background()))

	assert.Zero(t, weather.calls)
	assert.Empty(t, notifications.notifications)
}
