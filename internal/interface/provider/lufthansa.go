// internal/interface/provider/lufthansa.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

// lufthansaStatusMap translates Lufthansa Open API FlightStatus codes into
// the canonical lifecycle set.
var lufthansaStatusMap = map[string]entity.FlightLifecycleStatus{
	"CD": entity.FlightCancelled, // cancelled
	"DP": entity.FlightActive,    // departed
	"LD": entity.FlightLanded,    // landed
	"RT": entity.FlightDiverted,  // rerouted
	"NA": entity.FlightScheduled, // no status yet
}

const lufthansaTimeLayout = "2006-01-02T15:04Z"

// LufthansaProvider queries the Lufthansa Open API flight status operation.
// It is the secondary source in the chain and authenticates with OAuth2
// client credentials.
type LufthansaProvider struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewLufthansaProvider creates a new Lufthansa provider adapter. The client
// must inject bearer tokens (see infrastructure/oauth).
func NewLufthansaProvider(baseURL string, client *http.Client, logger logger.Logger) *LufthansaProvider {
	return &LufthansaProvider{
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}
}

// Name returns the provider name used in snapshots and metrics
func (p *LufthansaProvider) Name() string {
	return "lufthansa"
}

type lufthansaEnvelope struct {
	FlightStatusResource struct {
		Flights struct {
			Flight []lufthansaFlight `json:"Flight"`
		} `json:"Flights"`
	} `json:"FlightStatusResource"`
}

type lufthansaFlight struct {
	Departure    lufthansaPoint `json:"Departure"`
	Arrival      lufthansaPoint `json:"Arrival"`
	FlightStatus struct {
		Code string `json:"Code"`
	} `json:"FlightStatus"`
}

type lufthansaPoint struct {
	AirportCode      string        `json:"AirportCode"`
	ScheduledTimeUTC lufthansaTime `json:"ScheduledTimeUTC"`
	EstimatedTimeUTC lufthansaTime `json:"EstimatedTimeUTC"`
	ActualTimeUTC    lufthansaTime `json:"ActualTimeUTC"`
	Terminal         struct {
		Name interface{} `json:"Name"`
		Gate string      `json:"Gate"`
	} `json:"Terminal"`
	TimeStatus struct {
		Code string `json:"Code"`
	} `json:"TimeStatus"`
}

type lufthansaTime struct {
	DateTime string `json:"DateTime"`
}

// Fetch queries the flight status operation for one flight on one date.
func (p *LufthansaProvider) Fetch(ctx context.Context, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	endpoint := fmt.Sprintf("%s/operations/flightstatus/%s/%s", p.baseURL, flightNumber, date)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lufthansa request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, repository.ErrStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lufthansa returned status %d", resp.StatusCode)
	}

	var envelope lufthansaEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		p.logger.Warn("Unexpected lufthansa response shape", "error", err)
		return nil, repository.ErrStatusNotFound
	}

	flights := envelope.FlightStatusResource.Flights.Flight
	if len(flights) == 0 {
		return nil, repository.ErrStatusNotFound
	}

	return p.normalize(flights[0], flightNumber, date)
}

func (p *LufthansaProvider) normalize(raw lufthansaFlight, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	status, ok := lufthansaStatusMap[raw.FlightStatus.Code]
	if !ok {
		p.logger.Warn("Unknown lufthansa flight status", "code", raw.FlightStatus.Code, "flight", flightNumber)
		return nil, repository.ErrStatusNotFound
	}

	departure := normalizeLufthansaPoint(raw.Departure)
	arrival := normalizeLufthansaPoint(raw.Arrival)

	// A scheduled flight running late is reported through the departure
	// TimeStatus, not the overall FlightStatus.
	if status == entity.FlightScheduled && raw.Departure.TimeStatus.Code == "DL" {
		status = entity.FlightDelayed
	}

	return &entity.FlightStatusSnapshot{
		FlightNumber: flightNumber,
		FlightDate:   date,
		Status:       status,
		DelayMinutes: entity.DelayFromTimes(departure.Scheduled, departure.Estimated),
		Departure:    departure,
		Arrival:      arrival,
		Provider:     p.Name(),
		FetchedAt:    time.Now().UTC(),
	}, nil
}

func normalizeLufthansaPoint(raw lufthansaPoint) entity.FlightPoint {
	return entity.FlightPoint{
		Airport:   raw.AirportCode,
		Scheduled: parseLufthansaTime(raw.ScheduledTimeUTC),
		Estimated: parseLufthansaTime(raw.EstimatedTimeUTC),
		Actual:    parseLufthansaTime(raw.ActualTimeUTC),
		Terminal:  terminalName(raw.Terminal.Name),
		Gate:      raw.Terminal.Gate,
	}
}

func parseLufthansaTime(value lufthansaTime) *time.Time {
	if value.DateTime == "" {
		return nil
	}
	t, err := time.Parse(lufthansaTimeLayout, value.DateTime)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

// terminalName renders the Terminal.Name field, which the API returns as
// either a string or a number.
func terminalName(value interface{}) string {
	if value == nil {
		return ""
	}
	name := strings.TrimSpace(fmt.Sprint(value))
	if name == "<nil>" {
		return ""
	}
	return name
}
