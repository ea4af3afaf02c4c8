package entity

import (
	"time"
)

// Booking categories
const (
	CategoryFlight   = "flight"
	CategoryHotel    = "hotel"
	CategoryCar      = "car"
	CategoryActivity = "activity"
)

// Booking lifecycle status
const (
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingCompleted = "completed"
)

// BookingDetails holds the free-form structured part of a booking. Gate,
// Terminal, LastDelayMinutes and LastCheckedAt are the last state the engine
// observed from a status provider; everything else is written by the booking
// CRUD service and read-only here.
type BookingDetails struct {
	FlightNumber     string     `bson:"flightNumber,omitempty"`
	Gate             string     `bson:"gate,omitempty"`
	Terminal         string     `bson:"terminal,omitempty"`
	DepartureAirport string     `bson:"departureAirport,omitempty"`
	ArrivalAirport   string     `bson:"arrivalAirport,omitempty"`
	Latitude         *float64   `bson:"latitude,omitempty"`
	Longitude        *float64   `bson:"longitude,omitempty"`
	LastDelayMinutes int        `bson:"lastDelayMinutes,omitempty"`
	LastCheckedAt    *time.Time `bson:"lastCheckedAt,omitempty"`
}

// Booking represents a reservation a user holds (flight, hotel, car rental
// or activity). Created and owned by the booking CRUD service; the engine
// only updates the last-observed details.
type Booking struct {
	ID        string         `bson:"_id,omitempty"`
	UserID    string         `bson:"userId"`
	TripID    string         `bson:"tripId,omitempty"`
	Category  string         `bson:"category"`
	Name      string         `bson:"name"`
	Date      time.Time      `bson:"date"`
	Time      string         `bson:"time,omitempty"` // "15:04", optional
	Details   BookingDetails `bson:"details"`
	Status    string         `bson:"status"`
	CreatedAt time.Time      `bson:"createdAt"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

// StartsAt combines the booking date with its optional wall-clock time.
// Bookings without a time default to start of day.
func (b *Booking) StartsAt() time.Time {
	day := time.Date(b.Date.Year(), b.Date.Month(), b.Date.Day(), 0, 0, 0, 0, b.Date.Location())
	if b.Time == "" {
		return day
	}
	clock, err := time.Parse("15:04", b.Time)
	if err != nil {
		return day
	}
	return day.Add(time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute)
}

// HasCoordinates reports whether the booking carries a geocoded location.
func (b *Booking) HasCoordinates() bool {
	return b.Details.Latitude != nil && b.Details.Longitude != nil
}
