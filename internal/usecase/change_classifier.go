package usecase

import (
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/templates"
)

// Classification thresholds. Delays at or below the notice threshold are
// normal operational jitter and never alerted.
const (
	delayNoticeMinutes = 15
	delayUrgentMinutes = 60
	boardingWindow     = 2 * time.Hour
)

// Lookback windows per notification family (see DedupGate).
const (
	flightLookback  = 2 * time.Hour
	weatherLookback = 12 * time.Hour
)

// NotificationIntent is a decision to notify: everything needed to persist a
// notification plus the dedup lookback that guards it.
type NotificationIntent struct {
	Category    entity.NotificationCategory
	Kind        string // e.g. "cancelled", "delay", "gate_change", "boarding"
	Title       string
	Message     string
	Priority    entity.NotificationPriority
	Metadata    map[string]interface{}
	Lookback    time.Duration
	UpdatesGate bool // gate-change side effect: record the new gate on the booking
}

// ChangeClassifier decides whether the difference between two status
// snapshots is worth telling the user about.
type ChangeClassifier struct {
	now func() time.Time
}

// NewChangeClassifier creates a classifier using wall-clock time.
func NewChangeClassifier() *ChangeClassifier {
	return &ChangeClassifier{now: time.Now}
}

// Classify applies the decision rules in priority order; the first match
// wins. previous may be nil (first observation). flightDesc is the
// human-readable flight description used in message copy.
//
// Snapshots for different flights are never compared.
func (c *ChangeClassifier) Classify(booking *entity.Booking, previous, current *entity.FlightStatusSnapshot, flightDesc string) *NotificationIntent {
	if current == nil {
		return nil
	}
	if previous != nil && !current.ComparableTo(previous) {
		previous = nil
	}
	if flightDesc == "" {
		flightDesc = current.FlightNumber
	}

	// Rule 1: cancellation trumps everything.
	if current.Status == entity.FlightCancelled {
		return &NotificationIntent{
			Category: entity.CategoryFlightUpdate,
			Kind:     "cancelled",
			Title:    templates.CancellationTitle(flightDesc),
			Message:  templates.CancellationMessage(flightDesc),
			Priority: entity.PriorityUrgent,
			Metadata: map[string]interface{}{
				"flightNumber": current.FlightNumber,
				"status":       string(current.Status),
			},
			Lookback: flightLookback,
		}
	}

	// Rule 2: a delay that grew past the notice threshold.
	previousDelay := 0
	if previous != nil {
		previousDelay = previous.DelayMinutes
	}
	if current.DelayMinutes > delayNoticeMinutes && current.DelayMinutes > previousDelay {
		priority := entity.PriorityHigh
		if current.DelayMinutes > delayUrgentMinutes {
			priority = entity.PriorityUrgent
		}
		return &NotificationIntent{
			Category: entity.CategoryFlightDelay,
			Kind:     "delay",
			Title:    templates.DelayTitle(flightDesc, current.DelayMinutes),
			Message:  templates.DelayMessage(flightDesc, current.DelayMinutes),
			Priority: priority,
			Metadata: map[string]interface{}{
				"flightNumber":  current.FlightNumber,
				"delayMinutes":  current.DelayMinutes,
				"previousDelay": previousDelay,
			},
			Lookback: flightLookback,
		}
	}

	// Rule 3: gate differs from the booking's last-known gate.
	gate := current.Departure.Gate
	if gate != "" && gate != booking.Details.Gate {
		return &NotificationIntent{
			Category: entity.CategoryFlightUpdate,
			Kind:     "gate_change",
			Title:    templates.GateChangeTitle(flightDesc, gate),
			Message:  templates.GateChangeMessage(flightDesc, gate, current.Departure.Terminal),
			Priority: entity.PriorityHigh,
			Metadata: map[string]interface{}{
				"flightNumber": current.FlightNumber,
				"gate":         gate,
				"terminal":     current.Departure.Terminal,
				"previousGate": booking.Details.Gate,
			},
			Lookback:    flightLookback,
			UpdatesGate: true,
		}
	}

	// Rule 4: departure imminent while the flight is moving.
	if current.Status == entity.FlightActive || current.Status == entity.FlightBoarding {
		if until := c.untilDeparture(booking, current); until > 0 && until <= boardingWindow {
			return &NotificationIntent{
				Category: entity.CategoryFlightUpdate,
				Kind:     "boarding",
				Title:    templates.BoardingTitle(flightDesc),
				Message:  templates.BoardingMessage(flightDesc, gate),
				Priority: entity.PriorityUrgent,
				Metadata: map[string]interface{}{
					"flightNumber": current.FlightNumber,
					"status":       string(current.Status),
				},
				Lookback: flightLookback,
			}
		}
	}

	return nil
}

// untilDeparture prefers the provider's scheduled departure and falls back
// to the booking's own date/time.
func (c *ChangeClassifier) untilDeparture(booking *entity.Booking, current *entity.FlightStatusSnapshot) time.Duration {
	departure := booking.StartsAt()
	if current.Departure.Scheduled != nil {
		departure = *current.Departure.Scheduled
	}
	return departure.Sub(c.now())
}
