package entity

import "time"

// FlightLifecycleStatus is the canonical flight status set. Provider-specific
// values are mapped into this set by the provider adapters.
type FlightLifecycleStatus string

const (
	FlightScheduled FlightLifecycleStatus = "scheduled"
	FlightActive    FlightLifecycleStatus = "active"
	FlightLanded    FlightLifecycleStatus = "landed"
	FlightCancelled FlightLifecycleStatus = "cancelled"
	FlightDiverted  FlightLifecycleStatus = "diverted"
	FlightDelayed   FlightLifecycleStatus = "delayed"
	FlightBoarding  FlightLifecycleStatus = "boarding"
)

// FlightPoint describes one end of a flight segment.
type FlightPoint struct {
	Airport   string     `bson:"airport"`
	Scheduled *time.Time `bson:"scheduled,omitempty"`
	Estimated *time.Time `bson:"estimated,omitempty"`
	Actual    *time.Time `bson:"actual,omitempty"`
	Terminal  string     `bson:"terminal,omitempty"`
	Gate      string     `bson:"gate,omitempty"`
}

// FlightStatusSnapshot is a single normalized read of a flight's state from
// an external provider, tied to a retrieval timestamp.
type FlightStatusSnapshot struct {
	FlightNumber string                `bson:"flightNumber"`
	FlightDate   string                `bson:"flightDate"` // "2006-01-02"
	Status       FlightLifecycleStatus `bson:"status"`
	DelayMinutes int                   `bson:"delayMinutes"`
	Departure    FlightPoint           `bson:"departure"`
	Arrival      FlightPoint           `bson:"arrival"`
	Provider     string                `bson:"provider"`
	FetchedAt    time.Time             `bson:"fetchedAt"`
}

// ComparableTo reports whether two snapshots reference the same flight on the
// same date. Snapshots of different flights must never be diffed.
func (s *FlightStatusSnapshot) ComparableTo(other *FlightStatusSnapshot) bool {
	if other == nil {
		return false
	}
	return s.FlightNumber == other.FlightNumber && s.FlightDate == other.FlightDate
}

// DelayFromTimes derives a delay in whole minutes from scheduled vs estimated
// departure, used when a provider reports no explicit delay. Never negative.
func DelayFromTimes(scheduled, estimated *time.Time) int {
	if scheduled == nil || estimated == nil {
		return 0
	}
	minutes := int(estimated.Sub(*scheduled).Round(time.Minute) / time.Minute)
	if minutes < 0 {
		return 0
	}
	return minutes
}
