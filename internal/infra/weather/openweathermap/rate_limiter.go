package openweathermap

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
)

// Provider is the pair of lookups the weather domain needs.
type Provider interface {
	weather.Geocoder
	weather.ForecastClient
}

// RateLimitedClient shares one token bucket across geocoding and forecast
// calls so a burst of plans cannot exhaust the account quota.
type RateLimitedClient struct {
	provider Provider
	limiter  *rate.Limiter
}

// NewRateLimitedClient wraps provider. rps may be fractional; a non-positive
// rps disables limiting.
func NewRateLimitedClient(provider Provider, rps float64, burst int) *RateLimitedClient {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedClient{
		provider: provider,
		limiter:  rate.NewLimiter(limit, burst),
	}
}

// Geocode waits for a token and forwards the call.
func (r *RateLimitedClient) Geocode(ctx context.Context, location string) (weather.GeoPoint, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return weather.GeoPoint{}, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Geocode(ctx, location)
}

// Forecast waits for a token and forwards the call.
func (r *RateLimitedClient) Forecast(ctx context.Context, point weather.GeoPoint) ([]weather.RawForecastSample, error) {
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return r.provider.Forecast(ctx, point)
}

var _ Provider = (*RateLimitedClient)(nil)
