package entity

import "time"

// NotificationCategory is the closed set of notification kinds the engine
// can emit.
type NotificationCategory string

const (
	CategoryBookingReminder NotificationCategory = "booking_reminder"
	CategoryCheckinReminder NotificationCategory = "checkin_reminder"
	CategoryWeatherAlert    NotificationCategory = "weather_alert"
	CategoryFlightDelay     NotificationCategory = "flight_delay"
	CategoryFlightUpdate    NotificationCategory = "flight_update"
)

// NotificationPriority is an ordered priority scale.
type NotificationPriority string

const (
	PriorityLow    NotificationPriority = "low"
	PriorityMedium NotificationPriority = "medium"
	PriorityHigh   NotificationPriority = "high"
	PriorityUrgent NotificationPriority = "urgent"
)

// Rank returns the ordering position of a priority, low first. Unknown
// values rank below low.
func (p NotificationPriority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	case PriorityUrgent:
		return 4
	}
	return 0
}

// Notification is a persisted user-facing alert. The engine only ever
// inserts notifications; dismissal is a user action handled elsewhere and
// nothing deletes them.
type Notification struct {
	ID        string                 `bson:"_id,omitempty"`
	UserID    string                 `bson:"userId"`
	TripID    string                 `bson:"tripId,omitempty"`
	BookingID string                 `bson:"bookingId,omitempty"`
	Category  NotificationCategory   `bson:"category"`
	Title     string                 `bson:"title"`
	Message   string                 `bson:"message"`
	Priority  NotificationPriority   `bson:"priority"`
	Metadata  map[string]interface{} `bson:"metadata,omitempty"`
	CreatedAt time.Time              `bson:"createdAt"`
	Dismissed bool                   `bson:"dismissed"`
}
