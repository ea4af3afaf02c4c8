package repository

import (
	"context"
	"errors"

	"tripwatch-service/internal/domain/entity"
)

// ErrStatusNotFound means the provider answered but knows nothing about the
// flight. The chain treats it like any other failure and falls through.
var ErrStatusNotFound = errors.New("flight status not found")

// FlightStatusProvider is one external flight-status source. Implementations
// normalize their raw responses into FlightStatusSnapshot; unknown response
// shapes are reported as ErrStatusNotFound.
type FlightStatusProvider interface {
	Name() string
	Fetch(ctx context.Context, flightNumber, date string) (*entity.FlightStatusSnapshot, error)
}
