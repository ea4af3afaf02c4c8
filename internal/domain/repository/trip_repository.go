package repository

import (
	"context"

	"tripwatch-service/internal/domain/entity"
)

// TripRepository defines the trip read access the weather job needs.
type TripRepository interface {
	ListActiveAndUpcoming(ctx context.Context) ([]*entity.Trip, error)
}
