package trip

import (
	"encoding/json"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
	"github.com/singhHarcharan/trip-planner-agent/pkg/llmjson"
	"github.com/singhHarcharan/trip-planner-agent/pkg/metrics"
)

// Plan outcomes.
const (
	StatusNotATrip          = "not_a_trip"
	StatusIncomplete        = "incomplete_request"
	StatusNoAvailableDates  = "no_available_dates"
	StatusNoAvailableHotels = "no_available_hotels"
	StatusPlanned           = "planned"
)

// Config holds planner defaults.
type Config struct {
	DefaultEmployeeID int64
	DefaultDays       int
	MinHotelRating    float64
	PreferenceQuery   string
	Temperature       float32
	MaxTokens         int
}

// TripRequest is the structured reading of a user's prompt. Fields the model
// may answer with free-form values stay loosely typed.
type TripRequest struct {
	Source            string    `json:"source"`
	Destination       string    `json:"destination"`
	WeatherPreference Condition `json:"weather_preference"`
	TravelDates       any       `json:"travel_dates,omitempty"`
	HotelPreferences  any       `json:"hotel_preferences,omitempty"`
	OtherInfo         any       `json:"other_info,omitempty"`
}

// Condition is the requested weather. Models sometimes answer with a list of
// conditions; the first non-empty one is kept.
type Condition string

func (c *Condition) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*c = Condition(strings.TrimSpace(single))
		return nil
	}
	var list []any
	if err := json.Unmarshal(data, &list); err == nil {
		*c = ""
		for _, item := range list {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				*c = Condition(strings.TrimSpace(s))
				break
			}
		}
		return nil
	}
	// null or a scalar the planner cannot use
	*c = ""
	return nil
}

// Extraction is tagged: Trip is set for structured replies, Message for
// prose replies.
type Extraction struct {
	Kind    llmjson.Kind       `json:"kind"`
	Trip    *TripRequest       `json:"trip,omitempty"`
	Message string             `json:"message,omitempty"`
	Usage   metrics.TokenUsage `json:"usage"`
}

// ExtractRequest is the payload for a bare extraction.
type ExtractRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

// PlanRequest starts an end-to-end plan.
type PlanRequest struct {
	Prompt     string `json:"prompt" binding:"required"`
	EmployeeID int64  `json:"employeeId"`
	Days       int    `json:"days"`
	DryRun     bool   `json:"dryRun"`
}

// Hotel is a search result.
type Hotel struct {
	Name     string  `json:"hotelName"`
	Rating   float64 `json:"rating"`
	Location string  `json:"location"`
}

// HotelBooking confirms a one-night stay.
type HotelBooking struct {
	ConfirmationNumber string `json:"confirmationNumber"`
	HotelName          string `json:"hotelName"`
	Location           string `json:"location"`
	CheckIn            string `json:"checkIn"`
	CheckOut           string `json:"checkOut"`
}

// FlightBooking confirms a single flight.
type FlightBooking struct {
	ConfirmationNumber string `json:"confirmationNumber"`
	FlightNumber       string `json:"flightNumber"`
	Source             string `json:"source"`
	Destination        string `json:"destination"`
	Departure          string `json:"departure"`
	Arrival            string `json:"arrival"`
}

// Confirmation is the e-mail sent once both bookings succeed.
type Confirmation struct {
	To      string `json:"emailTo"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// PlanResponse carries every intermediate result so callers can see why a
// plan stopped where it did.
type PlanResponse struct {
	PlanID           string                         `json:"planId"`
	Status           string                         `json:"status"`
	Message          string                         `json:"message,omitempty"`
	DryRun           bool                           `json:"dryRun"`
	EmployeeID       int64                          `json:"employeeId"`
	Trip             *TripRequest                   `json:"trip,omitempty"`
	Weather          *weather.DatesResponse         `json:"weather,omitempty"`
	WeatherDates     []string                       `json:"weatherDates"`
	Holidays         []string                       `json:"holidays"`
	CandidateDates   []string                       `json:"candidateDates"`
	SelectedDate     string                         `json:"selectedDate,omitempty"`
	HotelPreferences *hotelpref.PreferencesResponse `json:"hotelPreferences,omitempty"`
	MinHotelRating   float64                        `json:"minHotelRating,omitempty"`
	Hotels           []Hotel                        `json:"hotels"`
	SelectedHotel    *Hotel                         `json:"selectedHotel,omitempty"`
	HotelBooking     *HotelBooking                  `json:"hotelBooking,omitempty"`
	FlightBooking    *FlightBooking                 `json:"flightBooking,omitempty"`
	Confirmation     *Confirmation                  `json:"confirmation,omitempty"`
	Warnings         []string                       `json:"warnings"`
	Usage            metrics.TokenUsage             `json:"usage"`
}
