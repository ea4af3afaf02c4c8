// Package templates holds the user-facing notification copy. Monitors fill
// these in; keeping the wording in one place keeps jobs free of string
// assembly.
package templates

import (
	"fmt"

	"tripwatch-service/internal/domain/entity"
)

// Reminder ladder copy, keyed by proximity.
const (
	reminderSoonTitle     = "%s starting soon"
	reminderSoonBody      = "%s starts in about %s. Time to get moving."
	reminderTomorrowTitle = "%s is tomorrow"
	reminderTomorrowBody  = "%s is coming up tomorrow (%s)."
	reminderUpcomingTitle = "Coming up: %s"
	reminderUpcomingBody  = "%s is coming up on %s."
)

// ReminderTitle renders the title for a reminder at the given lead time.
func ReminderTitle(booking *entity.Booking, leadHours int) string {
	switch {
	case leadHours <= 2:
		return fmt.Sprintf(reminderSoonTitle, booking.Name)
	case leadHours <= 24:
		return fmt.Sprintf(reminderTomorrowTitle, booking.Name)
	default:
		return fmt.Sprintf(reminderUpcomingTitle, booking.Name)
	}
}

// ReminderMessage renders the body for a reminder at the given lead time.
func ReminderMessage(booking *entity.Booking, leadHours int) string {
	when := booking.StartsAt().Format("Mon, 2 Jan 15:04")
	switch {
	case leadHours <= 2:
		return fmt.Sprintf(reminderSoonBody, booking.Name, fmt.Sprintf("%d hours", leadHours))
	case leadHours <= 24:
		return fmt.Sprintf(reminderTomorrowBody, booking.Name, when)
	default:
		return fmt.Sprintf(reminderUpcomingBody, booking.Name, when)
	}
}

// CheckinTitle renders the flight check-in reminder title.
func CheckinTitle(flightNumber string) string {
	return fmt.Sprintf("Check in for flight %s", flightNumber)
}

// CheckinMessage renders the flight check-in reminder body.
func CheckinMessage(booking *entity.Booking) string {
	return fmt.Sprintf("Online check-in for %s is open. Departure %s.",
		booking.Details.FlightNumber, booking.StartsAt().Format("Mon, 2 Jan 15:04"))
}

// CancellationTitle renders the flight cancellation alert title.
func CancellationTitle(flightDesc string) string {
	return fmt.Sprintf("Flight %s cancelled", flightDesc)
}

// CancellationMessage renders the flight cancellation alert body.
func CancellationMessage(flightDesc string) string {
	return fmt.Sprintf("%s has been cancelled. Contact the airline to rebook.", flightDesc)
}

// DelayTitle renders the flight delay alert title.
func DelayTitle(flightDesc string, delayMinutes int) string {
	return fmt.Sprintf("Flight %s delayed %d min", flightDesc, delayMinutes)
}

// DelayMessage renders the flight delay alert body.
func DelayMessage(flightDesc string, delayMinutes int) string {
	return fmt.Sprintf("%s is currently delayed by %d minutes.", flightDesc, delayMinutes)
}

// GateChangeTitle renders the gate change alert title.
func GateChangeTitle(flightDesc, gate string) string {
	return fmt.Sprintf("Gate change for %s: %s", flightDesc, gate)
}

// GateChangeMessage renders the gate change alert body.
func GateChangeMessage(flightDesc, gate, terminal string) string {
	if terminal != "" {
		return fmt.Sprintf("%s now departs from gate %s, terminal %s.", flightDesc, gate, terminal)
	}
	return fmt.Sprintf("%s now departs from gate %s.", flightDesc, gate)
}

// BoardingTitle renders the boarding-imminent alert title.
func BoardingTitle(flightDesc string) string {
	return fmt.Sprintf("Flight %s departs soon", flightDesc)
}

// BoardingMessage renders the boarding-imminent alert body.
func BoardingMessage(flightDesc, gate string) string {
	if gate != "" {
		return fmt.Sprintf("%s departs within 2 hours. Head to gate %s.", flightDesc, gate)
	}
	return fmt.Sprintf("%s departs within 2 hours.", flightDesc)
}

// WeatherTitle renders the weather alert title.
func WeatherTitle(condition, activityName string) string {
	return fmt.Sprintf("%s expected for %s", condition, activityName)
}

// WeatherMessage renders the weather alert body.
func WeatherMessage(report *entity.WeatherReport, activityName string) string {
	return fmt.Sprintf("Forecast near %s: %s, %.0f°C. Consider adjusting your plans.",
		activityName, report.Description, report.TemperatureC)
}
