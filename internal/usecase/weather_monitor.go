package usecase

import (
	"context"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/templates"
)

// Activities further out than this are not checked; forecasts beyond a few
// days are too unstable to alert on.
const weatherHorizonDays = 3

// WeatherMonitor is the weather job body: for every active or upcoming trip,
// check conditions at geocoded activities and alert on concerning weather.
type WeatherMonitor struct {
	tripRepo         repository.TripRepository
	bookingRepo      repository.BookingRepository
	notificationRepo repository.NotificationRepository
	weather          repository.WeatherProvider
	gate             *DedupGate
	logger           logger.Logger
	metrics          *metrics.Metrics
}

// NewWeatherMonitor creates the weather job body.
func NewWeatherMonitor(
	tripRepo repository.TripRepository,
	bookingRepo repository.BookingRepository,
	notificationRepo repository.NotificationRepository,
	weather repository.WeatherProvider,
	gate *DedupGate,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *WeatherMonitor {
	return &WeatherMonitor{
		tripRepo:         tripRepo,
		bookingRepo:      bookingRepo,
		notificationRepo: notificationRepo,
		weather:          weather,
		gate:             gate,
		logger:           logger,
		metrics:          metrics,
	}
}

// Run performs one weather sweep across all active and upcoming trips.
func (m *WeatherMonitor) Run(ctx context.Context) error {
	trips, err := m.tripRepo.ListActiveAndUpcoming(ctx)
	if err != nil {
		return err
	}

	for _, trip := range trips {
		if err := m.processTrip(ctx, trip); err != nil {
			m.logger.Error("Weather sweep failed for trip", "tripId", trip.ID, "error", err)
		}
	}
	return nil
}

func (m *WeatherMonitor) processTrip(ctx context.Context, trip *entity.Trip) error {
	activities, err := m.bookingRepo.ListGeocodedActivities(ctx, trip.ID, weatherHorizonDays)
	if err != nil {
		return err
	}

	for _, activity := range activities {
		if !activity.HasCoordinates() {
			continue
		}

		report, err := m.weather.GetWeather(ctx, *activity.Details.Latitude, *activity.Details.Longitude)
		if err != nil {
			m.logger.Warn("Weather fetch failed, skipping activity",
				"bookingId", activity.ID, "error", err)
			continue
		}
		if report == nil || !report.Concerning() {
			continue
		}

		m.emit(ctx, activity, report)
	}
	return nil
}

func (m *WeatherMonitor) emit(ctx context.Context, activity *entity.Booking, report *entity.WeatherReport) {
	ok, err := m.gate.ShouldEmit(ctx, activity.UserID, activity.ID, entity.CategoryWeatherAlert, weatherLookback)
	if err != nil {
		m.logger.Error("Dedup check failed", "bookingId", activity.ID, "error", err)
		return
	}
	if !ok {
		return
	}

	notification := &entity.Notification{
		UserID:    activity.UserID,
		TripID:    activity.TripID,
		BookingID: activity.ID,
		Category:  entity.CategoryWeatherAlert,
		Title:     templates.WeatherTitle(report.Condition, activity.Name),
		Message:   templates.WeatherMessage(report, activity.Name),
		Priority:  entity.PriorityHigh,
		Metadata: map[string]interface{}{
			"condition":    report.Condition,
			"description":  report.Description,
			"temperatureC": report.TemperatureC,
		},
	}
	if err := m.notificationRepo.Create(ctx, notification); err != nil {
		m.logger.Error("Failed to persist weather alert", "bookingId", activity.ID, "error", err)
		return
	}

	m.metrics.NotificationsCreated.WithLabelValues(string(entity.CategoryWeatherAlert)).Inc()
	m.logger.Info("Weather alert created",
		"userId", activity.UserID, "bookingId", activity.ID, "condition", report.Condition)
}
