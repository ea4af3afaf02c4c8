package usecase

import (
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/templates"
)

// reminderLeadTimes are the thresholds, in hours before the booking, at
// which a reminder fires. Checked longest-first so a booking crossing two
// thresholds in one cycle gets the most proximate one last.
var reminderLeadTimes = []int{168, 72, 24, 2}

// Flight check-in opens roughly a day ahead; the window carries the same
// tolerance reasoning as the ladder.
const (
	checkinWindowStart = 22 * time.Hour
	checkinWindowEnd   = 26 * time.Hour
	checkinLookback    = 25 * time.Hour
)

// ReminderEngine decides which reminder thresholds a booking is currently
// crossing. It holds no state; the dedup gate keeps repeated polls from
// re-firing a threshold.
type ReminderEngine struct {
	tolerance time.Duration
}

// NewReminderEngine creates an engine with the given tolerance half-window.
// The tolerance must be at least half the polling cadence or thresholds can
// fall between two ticks.
func NewReminderEngine(tolerance time.Duration) *ReminderEngine {
	return &ReminderEngine{tolerance: tolerance}
}

// Evaluate returns the reminder intents the booking triggers at the given
// instant: at most one ladder reminder plus, for flights, a check-in
// reminder.
func (e *ReminderEngine) Evaluate(booking *entity.Booking, now time.Time) []NotificationIntent {
	until := booking.StartsAt().Sub(now)
	if until <= 0 {
		return nil
	}

	var intents []NotificationIntent

	for _, leadHours := range reminderLeadTimes {
		lead := time.Duration(leadHours) * time.Hour
		distance := until - lead
		if distance < 0 {
			distance = -distance
		}
		if distance > e.tolerance {
			continue
		}

		intents = append(intents, NotificationIntent{
			Category: entity.CategoryBookingReminder,
			Kind:     "reminder",
			Title:    templates.ReminderTitle(booking, leadHours),
			Message:  templates.ReminderMessage(booking, leadHours),
			Priority: reminderPriority(leadHours),
			Metadata: map[string]interface{}{
				"leadTimeHours": leadHours,
				"category":      booking.Category,
			},
			// One extra hour so a threshold fires exactly once even when
			// consecutive ticks both land inside the tolerance window.
			Lookback: lead + time.Hour,
		})
		break
	}

	if booking.Category == entity.CategoryFlight && until >= checkinWindowStart && until <= checkinWindowEnd {
		intents = append(intents, NotificationIntent{
			Category: entity.CategoryCheckinReminder,
			Kind:     "checkin",
			Title:    templates.CheckinTitle(booking.Details.FlightNumber),
			Message:  templates.CheckinMessage(booking),
			Priority: entity.PriorityHigh,
			Metadata: map[string]interface{}{
				"flightNumber": booking.Details.FlightNumber,
			},
			Lookback: checkinLookback,
		})
	}

	return intents
}

func reminderPriority(leadHours int) entity.NotificationPriority {
	switch {
	case leadHours <= 2:
		return entity.PriorityUrgent
	case leadHours <= 24:
		return entity.PriorityHigh
	default:
		return entity.PriorityMedium
	}
}
