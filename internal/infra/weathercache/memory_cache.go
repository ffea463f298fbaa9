package weathercache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && e.expiresAt.Before(now)
}

// MemoryCache is an in-process weather cache for tests/dev.
type MemoryCache struct {
	mu        sync.RWMutex
	points    map[string]entry[weather.GeoPoint]
	forecasts map[string]entry[[]weather.RawForecastSample]
	now       func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		points:    make(map[string]entry[weather.GeoPoint]),
		forecasts: make(map[string]entry[[]weather.RawForecastSample]),
		now:       time.Now,
	}
}

func (c *MemoryCache) GetGeoPoint(_ context.Context, location string) (weather.GeoPoint, bool, error) {
	c.mu.RLock()
	e, ok := c.points[location]
	c.mu.RUnlock()
	if !ok || e.expired(c.now()) {
		return weather.GeoPoint{}, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryCache) SaveGeoPoint(_ context.Context, location string, point weather.GeoPoint, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.points[location] = entry[weather.GeoPoint]{value: point, expiresAt: c.expiry(ttl)}
	return nil
}

func (c *MemoryCache) GetSamples(_ context.Context, point weather.GeoPoint) ([]weather.RawForecastSample, bool, error) {
	c.mu.RLock()
	e, ok := c.forecasts[pointKey(point)]
	c.mu.RUnlock()
	if !ok || e.expired(c.now()) {
		return nil, false, nil
	}
	out := make([]weather.RawForecastSample, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (c *MemoryCache) SaveSamples(_ context.Context, point weather.GeoPoint, samples []weather.RawForecastSample, ttl time.Duration) error {
	stored := make([]weather.RawForecastSample, len(samples))
	copy(stored, samples)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.forecasts[pointKey(point)] = entry[[]weather.RawForecastSample]{value: stored, expiresAt: c.expiry(ttl)}
	return nil
}

func (c *MemoryCache) expiry(ttl time.Duration) time.Time {
	if ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(ttl)
}

func pointKey(point weather.GeoPoint) string {
	return fmt.Sprintf("%.4f,%.4f", point.Latitude, point.Longitude)
}

var _ weather.Cache = (*MemoryCache)(nil)
