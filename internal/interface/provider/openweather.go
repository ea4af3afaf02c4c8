// internal/interface/provider/openweather.go
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/pkg/logger"
)

// OpenWeatherProvider queries the OpenWeather current-weather endpoint.
type OpenWeatherProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	logger  logger.Logger
}

// NewOpenWeatherProvider creates a new OpenWeather provider adapter
func NewOpenWeatherProvider(baseURL, apiKey string, logger logger.Logger) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{},
		logger:  logger,
	}
}

type openWeatherResponse struct {
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// GetWeather returns current conditions at the coordinates, or nil when the
// provider has nothing usable.
func (p *OpenWeatherProvider) GetWeather(ctx context.Context, lat, lng float64) (*entity.WeatherReport, error) {
	query := url.Values{}
	query.Set("lat", strconv.FormatFloat(lat, 'f', 4, 64))
	query.Set("lon", strconv.FormatFloat(lng, 'f', 4, 64))
	query.Set("appid", p.apiKey)
	query.Set("units", "metric")

	endpoint := fmt.Sprintf("%s/weather?%s", p.baseURL, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openweather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("openweather returned status %d", resp.StatusCode)
	}

	var payload openWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		p.logger.Warn("Unexpected openweather response shape", "error", err)
		return nil, nil
	}
	if len(payload.Weather) == 0 {
		return nil, nil
	}

	return &entity.WeatherReport{
		Condition:    payload.Weather[0].Main,
		Description:  payload.Weather[0].Description,
		TemperatureC: payload.Main.Temp,
	}, nil
}
