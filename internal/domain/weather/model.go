package weather

import "time"

// MaxForecastDays is the forecast horizon the provider can serve.
const MaxForecastDays = 30

// GeoPoint is a geocoded place.
type GeoPoint struct {
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Name      string  `json:"name"`
	Region    string  `json:"region,omitempty"`
	Country   string  `json:"country"`
}

// RawForecastSample is one sub-daily observation. Timestamp carries the
// provider's local zone so that calendar dates come out right.
type RawForecastSample struct {
	Timestamp   time.Time `json:"timestamp"`
	Condition   string    `json:"condition"`
	Description string    `json:"description"`
	Temperature float64   `json:"temperature"`
	Humidity    int       `json:"humidity"`
}

// DailyForecast summarizes every sample that shares a calendar date.
type DailyForecast struct {
	Date        string  `json:"date"`
	Condition   string  `json:"condition"`
	Description string  `json:"description"`
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
}

// DatesRequest asks for the dates matching a condition at a location.
type DatesRequest struct {
	Location  string `json:"location" form:"location"`
	Condition string `json:"condition" form:"condition"`
	Days      int    `json:"days" form:"days"`
}

// DatesResponse is returned to API consumers and the trip planner.
type DatesResponse struct {
	Location  GeoPoint        `json:"location"`
	Condition string          `json:"condition"`
	Days      int             `json:"days"`
	Dates     []string        `json:"dates"`
	Forecasts []DailyForecast `json:"forecasts"`
	Cached    bool            `json:"cached"`
}

// Config wires runtime settings for the weather domain.
type Config struct {
	DefaultDays int
	CacheTTL    time.Duration
}
