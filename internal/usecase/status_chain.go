package usecase

import (
	"context"
	"errors"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"
	"tripwatch-service/pkg/utils"
)

// StatusProviderChain consults ranked flight-status providers with fallback.
// Results go through the owned StatusCache so repeated polls inside the
// freshness window cost nothing.
type StatusProviderChain struct {
	providers []repository.FlightStatusProvider
	cache     *StatusCache
	timeout   time.Duration
	logger    logger.Logger
	metrics   *metrics.Metrics
}

// NewStatusProviderChain creates a chain over the given providers, consulted
// in order.
func NewStatusProviderChain(
	providers []repository.FlightStatusProvider,
	cache *StatusCache,
	timeout time.Duration,
	logger logger.Logger,
	metrics *metrics.Metrics,
) *StatusProviderChain {
	return &StatusProviderChain{
		providers: providers,
		cache:     cache,
		timeout:   timeout,
		logger:    logger,
		metrics:   metrics,
	}
}

// GetStatus returns the current snapshot for a flight on a date.
//
// A malformed flight identifier fails fast with ErrInvalidFlightNumber and no
// network call. When every provider fails or knows nothing, GetStatus returns
// (nil, nil): no information available this cycle, not an error.
func (c *StatusProviderChain) GetStatus(ctx context.Context, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	normalized, err := utils.NormalizeFlightNumber(flightNumber)
	if err != nil {
		return nil, err
	}

	if snapshot, ok := c.cache.Get(normalized, date); ok {
		c.metrics.CacheHits.Inc()
		return snapshot, nil
	}
	c.metrics.CacheMisses.Inc()

	for _, provider := range c.providers {
		snapshot, err := c.fetchOne(ctx, provider, normalized, date)
		if err != nil {
			if errors.Is(err, repository.ErrStatusNotFound) {
				c.metrics.ProviderRequests.WithLabelValues(provider.Name(), "not_found").Inc()
				c.logger.Debug("Provider has no data for flight",
					"provider", provider.Name(), "flight", normalized, "date", date)
			} else {
				c.metrics.ProviderRequests.WithLabelValues(provider.Name(), "error").Inc()
				c.logger.Warn("Provider fetch failed, falling through",
					"provider", provider.Name(), "flight", normalized, "error", err)
			}
			continue
		}

		c.metrics.ProviderRequests.WithLabelValues(provider.Name(), "ok").Inc()
		c.cache.Put(snapshot)
		return snapshot, nil
	}

	// Exhausted the chain; the next scheduled tick is the retry.
	return nil, nil
}

func (c *StatusProviderChain) fetchOne(ctx context.Context, provider repository.FlightStatusProvider, flightNumber, date string) (*entity.FlightStatusSnapshot, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return provider.Fetch(fetchCtx, flightNumber, date)
}
