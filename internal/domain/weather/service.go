package weather

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

// ErrLocationNotFound is returned by geocoders when a query has no match.
var ErrLocationNotFound = errors.New("location not found")

// Service finds the dates whose forecast matches a weather preference.
type Service interface {
	RelevantDates(ctx context.Context, req DatesRequest) (DatesResponse, error)
}

// Geocoder resolves a free-text place name.
type Geocoder interface {
	Geocode(ctx context.Context, location string) (GeoPoint, error)
}

// ForecastClient returns sub-daily forecast samples for a point.
type ForecastClient interface {
	Forecast(ctx context.Context, point GeoPoint) ([]RawForecastSample, error)
}

// Cache keeps geocoding and forecast lookups between requests.
type Cache interface {
	GetGeoPoint(ctx context.Context, location string) (GeoPoint, bool, error)
	SaveGeoPoint(ctx context.Context, location string, point GeoPoint, ttl time.Duration) error
	GetSamples(ctx context.Context, point GeoPoint) ([]RawForecastSample, bool, error)
	SaveSamples(ctx context.Context, point GeoPoint, samples []RawForecastSample, ttl time.Duration) error
}

type service struct {
	cfg      Config
	geocoder Geocoder
	forecast ForecastClient
	cache    Cache
	logger   *slog.Logger
}

// NewService wires up the weather domain. cache may be nil.
func NewService(cfg Config, geocoder Geocoder, forecast ForecastClient, cache Cache, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		geocoder: geocoder,
		forecast: forecast,
		cache:    cache,
		logger:   logger.With("component", "weather.service"),
	}
}

func (s *service) RelevantDates(ctx context.Context, req DatesRequest) (DatesResponse, error) {
	location := strings.TrimSpace(req.Location)
	if location == "" {
		return DatesResponse{}, apperrors.Wrap("invalid_input", "location cannot be empty", nil)
	}
	days := s.resolveDays(req.Days)
	condition := normalizeCondition(req.Condition)
	s.logger.Info("searching weather dates", "location", location, "condition", condition, "days", days)

	point, pointCached, err := s.lookupPoint(ctx, location)
	if err != nil {
		return DatesResponse{}, err
	}
	samples, samplesCached, err := s.lookupSamples(ctx, point)
	if err != nil {
		return DatesResponse{}, err
	}

	forecasts := AggregateByDay(samples, days)
	dates := FilterDates(forecasts, condition)
	s.logger.Info("weather dates resolved",
		"location", point.Name,
		"lat", point.Latitude,
		"lon", point.Longitude,
		"days", len(forecasts),
		"matches", len(dates),
	)

	return DatesResponse{
		Location:  point,
		Condition: condition,
		Days:      days,
		Dates:     dates,
		Forecasts: forecasts,
		Cached:    pointCached && samplesCached,
	}, nil
}

func (s *service) resolveDays(requested int) int {
	days := requested
	if days <= 0 {
		days = s.cfg.DefaultDays
	}
	if days <= 0 || days > MaxForecastDays {
		days = MaxForecastDays
	}
	return days
}

func (s *service) lookupPoint(ctx context.Context, location string) (GeoPoint, bool, error) {
	key := strings.ToLower(location)
	if s.cache != nil {
		point, ok, err := s.cache.GetGeoPoint(ctx, key)
		if err != nil {
			s.logger.Warn("geocode cache read failed", "error", err)
		} else if ok {
			return point, true, nil
		}
	}

	point, err := s.geocoder.Geocode(ctx, location)
	if err != nil {
		if errors.Is(err, ErrLocationNotFound) {
			return GeoPoint{}, false, apperrors.Wrap("location_not_found", "no coordinates found for "+location, err)
		}
		return GeoPoint{}, false, apperrors.Wrap("weather_unavailable", "geocoding failed", err)
	}
	if s.cache != nil {
		if err := s.cache.SaveGeoPoint(ctx, key, point, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("geocode cache write failed", "error", err)
		}
	}
	return point, false, nil
}

func (s *service) lookupSamples(ctx context.Context, point GeoPoint) ([]RawForecastSample, bool, error) {
	if s.cache != nil {
		samples, ok, err := s.cache.GetSamples(ctx, point)
		if err != nil {
			s.logger.Warn("forecast cache read failed", "error", err)
		} else if ok {
			return samples, true, nil
		}
	}

	samples, err := s.forecast.Forecast(ctx, point)
	if err != nil {
		return nil, false, apperrors.Wrap("weather_unavailable", "forecast lookup failed", err)
	}
	if s.cache != nil && len(samples) > 0 {
		if err := s.cache.SaveSamples(ctx, point, samples, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("forecast cache write failed", "error", err)
		}
	}
	return samples, false, nil
}
