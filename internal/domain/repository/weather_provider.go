package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// WeatherProvider defines the interface to the external weather collaborator.
// A nil report with nil error means no information is available.
type WeatherProvider interface {
	GetWeather(ctx context.Context, lat, lng float64) (*entity.WeatherReport, error)
}
