package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

func newTestMetrics() *metrics.Metrics {
	return metrics.NewMetricsWith(prometheus.NewRegistry(), "test")
}

// fakeNotificationRepo is an in-memory notification store.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []*entity.Notification
	createErr     error
	now           func() time.Time
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{now: time.Now}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if n.CreatedAt.IsZero() {
		n.CreatedAt = r.now()
	}
	r.notifications = append(r.notifications, n)
	return nil
}

func (r *fakeNotificationRepo) FindRecent(ctx context.Context, userID, bookingID string, category entity.NotificationCategory, lookback time.Duration) ([]*entity.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	since := r.now().Add(-lookback)
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.UserID == userID && n.BookingID == bookingID && n.Category == category && !n.CreatedAt.Before(since) {
			out = append(out, n)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) byCategory(category entity.NotificationCategory) []*entity.Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.Notification
	for _, n := range r.notifications {
		if n.Category == category {
			out = append(out, n)
		}
	}
	return out
}

// fakeBookingRepo serves a fixed set of bookings and records detail updates.
// failFor makes the per-user list calls error for that user.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*entity.Booking
	updates  []repository.BookingDetailsUpdate
	failFor  string
}

func (r *fakeBookingRepo) ListDueForReminder(ctx context.Context, userID string, withinDays int) ([]*entity.Booking, error) {
	if r.failFor != "" && r.failFor == userID {
		return nil, errors.New("store unavailable")
	}
	return r.forUser(userID), nil
}

func (r *fakeBookingRepo) ListFlightBookings(ctx context.Context, userID string, withinHours int) ([]*entity.Booking, error) {
	if r.failFor != "" && r.failFor == userID {
		return nil, errors.New("store unavailable")
	}
	var out []*entity.Booking
	for _, b := range r.forUser(userID) {
		if b.Category == entity.CategoryFlight {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListGeocodedActivities(ctx context.Context, tripID string, withinDays int) ([]*entity.Booking, error) {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.TripID == tripID && b.Category == entity.CategoryActivity && b.HasCoordinates() {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) ListUserIDsWithUpcoming(ctx context.Context, withinDays int) ([]string, error) {
	return r.userIDs(), nil
}

func (r *fakeBookingRepo) ListUserIDsWithFlights(ctx context.Context, withinHours int) ([]string, error) {
	return r.userIDs(), nil
}

func (r *fakeBookingRepo) UpdateDetails(ctx context.Context, bookingID, userID string, update repository.BookingDetailsUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.updates = append(r.updates, update)
	for _, b := range r.bookings {
		if b.ID == bookingID && b.UserID == userID {
			if update.Gate != "" {
				b.Details.Gate = update.Gate
			}
			if update.Terminal != "" {
				b.Details.Terminal = update.Terminal
			}
			b.Details.LastDelayMinutes = update.LastDelayMinutes
			checkedAt := update.LastCheckedAt
			b.Details.LastCheckedAt = &checkedAt
		}
	}
	return nil
}

func (r *fakeBookingRepo) forUser(userID string) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out
}

func (r *fakeBookingRepo) userIDs() []string {
	seen := map[string]bool{}
	var out []string
	for _, b := range r.bookings {
		if !seen[b.UserID] {
			seen[b.UserID] = true
			out = append(out, b.UserID)
		}
	}
	return out
}

// fakeTripRepo serves a fixed set of trips.
type fakeTripRepo struct {
	trips []*entity.Trip
}

func (r *fakeTripRepo) ListActiveAndUpcoming(ctx context.Context) ([]*entity.Trip, error) {
	return r.trips, nil
}

// fakeStatusProvider returns a canned snapshot or error and counts calls.
type fakeStatusProvider struct {
	name     string
	snapshot *entity.FlightStatusSnapshot
	err      error
	calls    int
}

func (p *fakeStatusProvider) Name() string { return p.name }

func (p *fakeStatusProvider) Fetch(ctx context.Context, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	if p.snapshot == nil {
		return nil, repository.ErrStatusNotFound
	}
	snapshot := *p.snapshot
	snapshot.FlightNumber = flightNumber
	snapshot.FlightDate = date
	snapshot.Provider = p.name
	snapshot.FetchedAt = time.Now()
	return &snapshot, nil
}

// fakeWeatherProvider returns a canned report.
type fakeWeatherProvider struct {
	report *entity.WeatherReport
	err    error
	calls  int
}

func (p *fakeWeatherProvider) GetWeather(ctx context.Context, lat, lng float64) (*entity.WeatherReport, error) {
	p.calls++
	return p.report, p.err
}

// fakeAirlineRepo and fakeAirportRepo serve static reference data.
type fakeAirlineRepo struct {
	airlines map[string]string // code -> name
}

func (r *fakeAirlineRepo) GetByCode(ctx context.Context, code string) (*entity.Airline, error) {
	if name, ok := r.airlines[code]; ok {
		return &entity.Airline{Code: code, Name: name}, nil
	}
	return nil, errors.New("airline not found")
}

type fakeAirportRepo struct {
	cities map[string]string // code -> city
}

func (r *fakeAirportRepo) GetByCode(ctx context.Context, code string) (*entity.Airport, error) {
	if city, ok := r.cities[code]; ok {
		return &entity.Airport{AirportCode: code, CityName: city}, nil
	}
	return nil, errors.New("airport not found")
}
