package usecase

import (
	"testing"
	"time"

	"tripwatch-service/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hotelBookingAt(startsAt time.Time) *entity.Booking {
	return &entity.Booking{
		ID:       "b-hotel",
		UserID:   "u1",
		Category: entity.CategoryHotel,
		Name:     "Hotel Sacher",
		Date:     time.Date(startsAt.Year(), startsAt.Month(), startsAt.Day(), 0, 0, 0, 0, time.UTC),
		Time:     startsAt.Format("15:04"),
	}
}

func TestEvaluateFires24hThresholdWithinTolerance(t *testing.T) {
	engine := NewReminderEngine(30 * time.Minute)
	startsAt := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	// 24.2 hours out: inside the half-hour tolerance around 24h.
	now := startsAt.Add(-24*time.Hour - 12*time.Minute)
	intents := engine.Evaluate(hotelBookingAt(startsAt), now)

	require.Len(t, intents, 1)
	assert.Equal(t, entity.CategoryBookingReminder, intents[0].Category)
	assert.Equal(t, entity.PriorityHigh, intents[0].Priority)
	assert.Equal(t, 24, intents[0].Metadata["leadTimeHours"])
	assert.Equal(t, 25*time.Hour, intents[0].Lookback)
}

func TestEvaluateQuietBetweenThresholds(t *testing.T) {
	engine := NewReminderEngine(30 * time.Minute)
	startsAt := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	// 12 hours out sits between the 24h and 2h rungs.
	intents := engine.Evaluate(hotelBookingAt(startsAt), startsAt.Add(-12*time.Hour))
	assert.Empty(t, intents)
}

func TestEvaluatePriorityLadder(t *testing.T) {
	engine := NewReminderEngine(30 * time.Minute)
	startsAt := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)
	booking := hotelBookingAt(startsAt)

	cases := []struct {
		hoursOut time.Duration
		priority entity.NotificationPriority
		lead     int
	}{
		{2 * time.Hour, entity.PriorityUrgent, 2},
		{24 * time.Hour, entity.PriorityHigh, 24},
		{72 * time.Hour, entity.PriorityMedium, 72},
		{168 * time.Hour, entity.PriorityMedium, 168},
	}
	for _, c := range cases {
		intents := engine.Evaluate(booking, startsAt.Add(-c.hoursOut))
		require.Len(t, intents, 1, "at %v out", c.hoursOut)
		assert.Equal(t, c.priority, intents[0].Priority)
		assert.Equal(t, c.lead, intents[0].Metadata["leadTimeHours"])
	}
}

func TestEvaluatePastBookingIsIgnored(t *testing.T) {
	engine := NewReminderEngine(30 * time.Minute)
	startsAt := time.Date(2026, 8, 24, 15, 0, 0, 0, time.UTC)

	intents := engine.Evaluate(hotelBookingAt(startsAt), startsAt.Add(time.Hour))
	assert.Empty(t, intents)
}

func TestEvaluateFlightCheckinWindow(t *testing.T) {
	engine := NewReminderEngine(30 * time.Minute)
	startsAt := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	booking := hotelBookingAt(startsAt)
	booking.Category = entity.CategoryFlight
	booking.Details.FlightNumber = "LH454"

	// 23 hours out: inside [22h, 26h], and also on the 24h ladder rung? No -
	// 23h is outside the 24h±0.5h tolerance, so only check-in fires.
	intents := engine.Evaluate(booking, startsAt.Add(-23*time.Hour))
	require.Len(t, intents, 1)
	assert.Equal(t, entity.CategoryCheckinReminder, intents[0].Category)
	assert.Equal(t, entity.PriorityHigh, intents[0].Priority)
	assert.Equal(t, 25*time.Hour, intents[0].Lookback)

	// 24 hours out both the ladder rung and check-in fire, as separate
	// categories.
	intents = engine.Evaluate(booking, startsAt.Add(-24*time.Hour))
	require.Len(t, intents, 2)
	assert.Equal(t, entity.CategoryBookingReminder, intents[0].Category)
	assert.Equal(t, entity.CategoryCheckinReminder, intents[1].Category)

	// 30 hours out: neither.
	intents = engine.Evaluate(booking, startsAt.Add(-30*time.Hour))
	assert.Empty(t, intents)

	// A hotel never gets a check-in reminder.
	hotel := hotelBookingAt(startsAt)
	intents = engine.Evaluate(hotel, startsAt.Add(-23*time.Hour))
	assert.Empty(t, intents)
}

func TestEvaluateWiderToleranceCatchesMoreDrift(t *testing.T) {
	// A slow poller (2h cadence) derives a 1h tolerance; 24h±1h must fire.
	engine := NewReminderEngine(time.Hour)
	startsAt := time.Date(2026, 8, 26, 15, 0, 0, 0, time.UTC)

	intents := engine.Evaluate(hotelBookingAt(startsAt), startsAt.Add(-25*time.Hour))
	require.Len(t, intents, 1)
	assert.Equal(t, 24, intents[0].Metadata["leadTimeHours"])
}
