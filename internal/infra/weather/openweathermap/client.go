package openweathermap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
)

const (
	defaultBaseURL    = "https://api.openweathermap.org/data/2.5"
	defaultGeoBaseURL = "https://api.openweathermap.org/geo/1.0"
)

// ErrLocationNotFound aliases the domain sentinel so callers can match on either.
var ErrLocationNotFound = weather.ErrLocationNotFound

// Client talks to the OpenWeatherMap geocoding and 3-hour forecast APIs.
type Client struct {
	apiKey     string
	baseURL    string
	geoBaseURL string
	httpClient *http.Client
}

// NewClient builds an API client. The key is required.
func NewClient(apiKey, baseURL, geoBaseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweathermap api key cannot be empty")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if strings.TrimSpace(geoBaseURL) == "" {
		geoBaseURL = defaultGeoBaseURL
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		geoBaseURL: strings.TrimRight(geoBaseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type geoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

// Geocode resolves a place name to its first match.
func (c *Client) Geocode(ctx context.Context, location string) (weather.GeoPoint, error) {
	params := url.Values{}
	params.Set("q", location)
	params.Set("limit", "1")
	params.Set("appid", c.apiKey)

	body, err := c.get(ctx, "geocode", c.geoBaseURL+"/direct?"+params.Encode())
	if err != nil {
		return weather.GeoPoint{}, err
	}

	var results []geoResult
	if err := json.Unmarshal(body, &results); err != nil {
		return weather.GeoPoint{}, fmt.Errorf("decode geocoding response: %w", err)
	}
	if len(results) == 0 {
		return weather.GeoPoint{}, fmt.Errorf("geocode %q: %w", location, ErrLocationNotFound)
	}
	first := results[0]
	return weather.GeoPoint{
		Latitude:  first.Lat,
		Longitude: first.Lon,
		Name:      first.Name,
		Region:    first.State,
		Country:   first.Country,
	}, nil
}

type forecastResponse struct {
	City struct {
		Name     string `json:"name"`
		Timezone int    `json:"timezone"`
	} `json:"city"`
	List []forecastItem `json:"list"`
}

type forecastItem struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
}

// Forecast returns the 3-hourly samples for a point in metric units. Sample
// timestamps are expressed in the city's UTC offset.
func (c *Client) Forecast(ctx context.Context, point weather.GeoPoint) ([]weather.RawForecastSample, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(point.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(point.Longitude, 'f', -1, 64))
	params.Set("appid", c.apiKey)
	params.Set("units", "metric")

	body, err := c.get(ctx, "forecast", c.baseURL+"/forecast?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var raw forecastResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode forecast response: %w", err)
	}
	return normalizeForecast(raw), nil
}

func normalizeForecast(raw forecastResponse) []weather.RawForecastSample {
	zone := time.FixedZone(raw.City.Name, raw.City.Timezone)
	samples := make([]weather.RawForecastSample, 0, len(raw.List))
	for _, item := range raw.List {
		var condition, description string
		if len(item.Weather) > 0 {
			condition = item.Weather[0].Main
			description = item.Weather[0].Description
		}
		samples = append(samples, weather.RawForecastSample{
			Timestamp:   time.Unix(item.Dt, 0).In(zone),
			Condition:   condition,
			Description: description,
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
		})
	}
	return samples
}

func (c *Client) get(ctx context.Context, operation, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", operation, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, newAPIError(resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Operation: operation, Err: err}
	}
	return body, nil
}

var (
	_ weather.Geocoder       = (*Client)(nil)
	_ weather.ForecastClient = (*Client)(nil)
)
