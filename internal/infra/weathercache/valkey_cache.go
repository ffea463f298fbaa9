package weathercache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
)

// ValkeyCache keeps geocoding results and forecast samples in Valkey.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "weather"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) GetGeoPoint(ctx context.Context, location string) (weather.GeoPoint, bool, error) {
	var point weather.GeoPoint
	ok, err := c.getJSON(ctx, c.geoKey(location), &point)
	return point, ok, err
}

func (c *ValkeyCache) SaveGeoPoint(ctx context.Context, location string, point weather.GeoPoint, ttl time.Duration) error {
	return c.setJSON(ctx, c.geoKey(location), point, ttl)
}

func (c *ValkeyCache) GetSamples(ctx context.Context, point weather.GeoPoint) ([]weather.RawForecastSample, bool, error) {
	var samples []weather.RawForecastSample
	ok, err := c.getJSON(ctx, c.forecastKey(point), &samples)
	return samples, ok, err
}

func (c *ValkeyCache) SaveSamples(ctx context.Context, point weather.GeoPoint, samples []weather.RawForecastSample, ttl time.Duration) error {
	return c.setJSON(ctx, c.forecastKey(point), samples, ttl)
}

func (c *ValkeyCache) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	payload, err := c.client.Do(ctx, c.client.B().Get().Key(key).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

func (c *ValkeyCache) setJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(key).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) geoKey(location string) string {
	return fmt.Sprintf("%s:geo:%s", c.prefix, location)
}

// Coordinates are rounded to four places so equivalent geocodes share a key.
func (c *ValkeyCache) forecastKey(point weather.GeoPoint) string {
	return fmt.Sprintf("%s:forecast:%s,%s", c.prefix,
		strconv.FormatFloat(point.Latitude, 'f', 4, 64),
		strconv.FormatFloat(point.Longitude, 'f', 4, 64),
	)
}

var _ weather.Cache = (*ValkeyCache)(nil)
