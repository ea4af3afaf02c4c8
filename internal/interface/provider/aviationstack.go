// internal/interface/provider/aviationstack.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

// aviationStackStatusMap translates AviationStack flight_status values into
// the canonical lifecycle set.
var aviationStackStatusMap = map[string]entity.FlightLifecycleStatus{
	"scheduled": entity.FlightScheduled,
	"active":    entity.FlightActive,
	"en-route":  entity.FlightActive,
	"landed":    entity.FlightLanded,
	"cancelled": entity.FlightCancelled,
	"diverted":  entity.FlightDiverted,
	"incident":  entity.FlightDiverted,
	"delayed":   entity.FlightDelayed,
}

// AviationStackProvider queries the AviationStack flights endpoint. It is the
// primary source in the chain.
type AviationStackProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewAviationStackProvider creates a new AviationStack provider adapter
func NewAviationStackProvider(baseURL, apiKey string, logger logger.Logger) *AviationStackProvider {
	return &AviationStackProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		logger:  logger,
	}
}

// Name returns the provider name used in snapshots and metrics
func (p *AviationStackProvider) Name() string {
	return "aviationstack"
}

type aviationStackEnvelope struct {
	Data []aviationStackFlight `json:"data"`
}

type aviationStackFlight struct {
	FlightDate   string               `json:"flight_date"`
	FlightStatus string               `json:"flight_status"`
	Departure    aviationStackAirport `json:"departure"`
	Arrival      aviationStackAirport `json:"arrival"`
	Flight       struct {
		IATA string `json:"iata"`
	} `json:"flight"`
}

type aviationStackAirport struct {
	IATA      string  `json:"iata"`
	Terminal  string  `json:"terminal"`
	Gate      string  `json:"gate"`
	Delay     *int    `json:"delay"`
	Scheduled *string `json:"scheduled"`
	Estimated *string `json:"estimated"`
	Actual    *string `json:"actual"`
}

// Fetch queries the flights endpoint for one flight on one date and
// normalizes the first matching record.
func (p *AviationStackProvider) Fetch(ctx context.Context, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	query := url.Values{}
	query.Set("access_key", p.apiKey)
	query.Set("flight_iata", flightNumber)
	query.Set("flight_date", date)

	endpoint := fmt.Sprintf("%s/flights?%s", p.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("aviationstack request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, repository.ErrStatusNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("aviationstack returned status %d", resp.StatusCode)
	}

	var envelope aviationStackEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		p.logger.Warn("Unexpected aviationstack response shape", "error", err)
		return nil, repository.ErrStatusNotFound
	}
	if len(envelope.Data) == 0 {
		return nil, repository.ErrStatusNotFound
	}

	return p.normalize(envelope.Data[0], flightNumber, date)
}

func (p *AviationStackProvider) normalize(raw aviationStackFlight, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	status, ok := aviationStackStatusMap[raw.FlightStatus]
	if !ok {
		p.logger.Warn("Unknown aviationstack flight status", "status", raw.FlightStatus, "flight", flightNumber)
		return nil, repository.ErrStatusNotFound
	}

	snapshot := &entity.FlightStatusSnapshot{
		FlightNumber: flightNumber,
		FlightDate:   date,
		Status:       status,
		Departure:    normalizePoint(raw.Departure),
		Arrival:      normalizePoint(raw.Arrival),
		Provider:     p.Name(),
		FetchedAt:    time.Now().UTC(),
	}

	if raw.Departure.Delay != nil && *raw.Departure.Delay > 0 {
		snapshot.DelayMinutes = *raw.Departure.Delay
	} else {
		snapshot.DelayMinutes = entity.DelayFromTimes(snapshot.Departure.Scheduled, snapshot.Departure.Estimated)
	}

	return snapshot, nil
}

func normalizePoint(raw aviationStackAirport) entity.FlightPoint {
	return entity.FlightPoint{
		Airport:   raw.IATA,
		Scheduled: parseRFC3339(raw.Scheduled),
		Estimated: parseRFC3339(raw.Estimated),
		Actual:    parseRFC3339(raw.Actual),
		Terminal:  raw.Terminal,
		Gate:      raw.Gate,
	}
}

func parseRFC3339(value *string) *time.Time {
	if value == nil || *value == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
