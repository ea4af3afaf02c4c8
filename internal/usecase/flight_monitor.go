package usecase

import (
	"context"
	"fmt"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/pkg/utils"
)

// Flights further out than this are not polled; status data that early is
// noise.
const flightHorizonHours = 48

// FlightStatusMonitor is the flight-status job body: poll the provider chain
// for every imminent flight booking, classify the change against the
// booking's last-known state and emit through the dedup gate.
type FlightStatusMonitor struct {
	bookingRepo      repository.BookingRepository
	notificationRepo repository.NotificationRepository
	airlineRepo      repository.AirlineRepository
	airportRepo      repository.AirportRepository
	chain            *StatusProviderChain
	classifier       *ChangeClassifier
	gate             *DedupGate
	logger           logger.Logger
	metrics          *metrics.Metrics
	now              func() time.Time
}

// NewFlightStatusMonitor creates the flight-status job body.
func NewFlightStatusMonitor(
	bookingRepo repository.BookingRepository,
	notificationRepo repository.NotificationRepository,
	airlineRepo repository.AirlineRepository,
	airportRepo repository.AirportRepository,
	chain *StatusProviderChain,
	classifier *ChangeClassifier,
	gate *DedupGate,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *FlightStatusMonitor {
	return &FlightStatusMonitor{
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		airlineRepo:      airlineRepo,
		airportRepo:      airportRepo,
		chain:            chain,
		classifier:       classifier,
		gate:             gate,
		logger:           logger,
		metrics:          metrics,
		now:              time.Now,
	}
}

// Run performs one status sweep across all users with imminent flights.
func (m *FlightStatusMonitor) Run(ctx context.Context) error {
	userIDs, err := m.bookingRepo.ListUserIDsWithFlights(ctx, flightHorizonHours)
	if err != nil {
		return err
	}

	for _, userID := range userIDs {
		if err := m.processUser(ctx, userID); err != nil {
			m.logger.Error("Flight status sweep failed for user", "userId", userID, "error", err)
		}
	}
	return nil
}

func (m *FlightStatusMonitor) processUser(ctx context.Context, userID string) error {
	bookings, err := m.bookingRepo.ListFlightBookings(ctx, userID, flightHorizonHours)
	if err != nil {
		return err
	}

	for _, booking := range bookings {
		if booking.Details.FlightNumber == "" {
			continue
		}
		if err := m.processBooking(ctx, booking); err != nil {
			m.logger.Error("Failed to process flight booking",
				"bookingId", booking.ID, "flight", booking.Details.FlightNumber, "error", err)
		}
	}
	return nil
}

func (m *FlightStatusMonitor) processBooking(ctx context.Context, booking *entity.Booking) error {
	date := booking.Date.Format("2006-01-02")
	current, err := m.chain.GetStatus(ctx, booking.Details.FlightNumber, date)
	if err != nil {
		return err
	}
	if current == nil {
		// No information available this cycle.
		return nil
	}

	previous := m.lastKnownSnapshot(booking, current)
	intent := m.classifier.Classify(booking, previous, current, m.describeFlight(ctx, current))

	if intent != nil {
		m.emit(ctx, booking, current, *intent)
	}

	// Record what we observed so the next cycle diffs against it.
	update := repository.BookingDetailsUpdate{
		LastDelayMinutes: current.DelayMinutes,
		LastCheckedAt:    m.now().UTC(),
	}
	if intent != nil && intent.UpdatesGate {
		update.Gate = current.Departure.Gate
		update.Terminal = current.Departure.Terminal
	}
	if err := m.bookingRepo.UpdateDetails(ctx, booking.ID, booking.UserID, update); err != nil {
		m.logger.Error("Failed to record observed flight state", "bookingId", booking.ID, "error", err)
	}
	return nil
}

// lastKnownSnapshot reconstructs the previous observation from the state
// recorded on the booking. Nil when the booking has never been checked.
func (m *FlightStatusMonitor) lastKnownSnapshot(booking *entity.Booking, current *entity.FlightStatusSnapshot) *entity.FlightStatusSnapshot {
	if booking.Details.LastCheckedAt == nil {
		return nil
	}
	return &entity.FlightStatusSnapshot{
		FlightNumber: current.FlightNumber,
		FlightDate:   current.FlightDate,
		DelayMinutes: booking.Details.LastDelayMinutes,
		Departure: entity.FlightPoint{
			Gate:     booking.Details.Gate,
			Terminal: booking.Details.Terminal,
		},
		FetchedAt: *booking.Details.LastCheckedAt,
	}
}

// describeFlight enriches the flight number with airline and destination
// reference data. Lookup failures degrade to the raw codes.
func (m *FlightStatusMonitor) describeFlight(ctx context.Context, snapshot *entity.FlightStatusSnapshot) string {
	desc := snapshot.FlightNumber

	if airline, err := m.airlineRepo.GetByCode(ctx, utils.CarrierCode(snapshot.FlightNumber)); err == nil && airline.Name != "" {
		desc = fmt.Sprintf("%s (%s)", snapshot.FlightNumber, airline.Name)
	}
	if snapshot.Arrival.Airport != "" {
		destination := snapshot.Arrival.Airport
		if airport, err := m.airportRepo.GetByCode(ctx, snapshot.Arrival.Airport); err == nil && airport.CityName != "" {
			destination = airport.CityName
		}
		desc = fmt.Sprintf("%s to %s", desc, destination)
	}
	return desc
}

func (m *FlightStatusMonitor) emit(ctx context.Context, booking *entity.Booking, current *entity.FlightStatusSnapshot, intent NotificationIntent) {
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
		m.logger.Error("Failed to persist flight notification", "bookingId", booking.ID, "error", err)
		return
	}

	m.metrics.NotificationsCreated.WithLabelValues(string(intent.Category)).Inc()
	m.logger.Info("Flight notification created",
		"userId", booking.UserID, "bookingId", booking.ID,
		"flight", current.FlightNumber, "kind", intent.Kind, "priority", intent.Priority)
}
