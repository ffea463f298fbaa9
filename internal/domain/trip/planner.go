package trip

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/holiday"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/hotelpref"
	"github.com/singhHarcharan/trip-planner-agent/internal/domain/weather"
	apperrors "github.com/singhHarcharan/trip-planner-agent/pkg/errors"
)

// DefaultMinHotelRating applies when the preferences name no rating.
const DefaultMinHotelRating = 4.0

// TravelDesk performs hotel search and the bookings.
type TravelDesk interface {
	SearchHotels(ctx context.Context, destination, date string, minRating float64) ([]Hotel, error)
	BookHotel(ctx context.Context, hotel Hotel, date string) (HotelBooking, error)
	BookFlight(ctx context.Context, source, destination, date string) (FlightBooking, error)
	SendConfirmation(ctx context.Context, to string, flight FlightBooking, hotel HotelBooking) (Confirmation, error)
}

// Planner runs the full pipeline from prompt to confirmation.
type Planner interface {
	Plan(ctx context.Context, req PlanRequest) (PlanResponse, error)
}

type planner struct {
	cfg       Config
	extractor Extractor
	weather   weather.Service
	holidays  holiday.Service
	prefs     hotelpref.Service
	desk      TravelDesk
	logger    *slog.Logger
}

// NewPlanner wires the trip pipeline.
func NewPlanner(cfg Config, extractor Extractor, weatherSvc weather.Service, holidaySvc holiday.Service, prefs hotelpref.Service, desk TravelDesk, logger *slog.Logger) Planner {
	if cfg.DefaultEmployeeID <= 0 {
		cfg.DefaultEmployeeID = holiday.DefaultEmployeeID
	}
	if cfg.MinHotelRating <= 0 {
		cfg.MinHotelRating = DefaultMinHotelRating
	}
	return &planner{
		cfg:       cfg,
		extractor: extractor,
		weather:   weatherSvc,
		holidays:  holidaySvc,
		prefs:     prefs,
		desk:      desk,
		logger:    logger.With("component", "trip.planner"),
	}
}

func (p *planner) Plan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	resp := PlanResponse{
		PlanID:         uuid.NewString(),
		DryRun:         req.DryRun,
		EmployeeID:     req.EmployeeID,
		WeatherDates:   []string{},
		Holidays:       []string{},
		CandidateDates: []string{},
		Hotels:         []Hotel{},
		Warnings:       []string{},
	}
	if resp.EmployeeID <= 0 {
		resp.EmployeeID = p.cfg.DefaultEmployeeID
	}
	log := p.logger.With("planId", resp.PlanID)

	// 1. extract
	extraction, err := p.extractor.Extract(ctx, req.Prompt)
	if err != nil {
		return PlanResponse{}, err
	}
	resp.Usage = resp.Usage.Add(extraction.Usage)
	if extraction.Trip == nil {
		resp.Status = StatusNotATrip
		resp.Message = extraction.Message
		if resp.Message == "" {
			resp.Message = NotATripMessage
		}
		log.Info("prompt is not a trip request", "step", 1)
		return resp, nil
	}
	trip := extraction.Trip
	resp.Trip = trip
	if missing := trip.missingFields(); len(missing) > 0 {
		resp.Status = StatusIncomplete
		resp.Message = IncompleteMessage
		log.Info("trip request incomplete", "step", 1, "missing", strings.Join(missing, ","))
		return resp, nil
	}
	log.Info("trip extracted", "step", 1, "source", trip.Source, "destination", trip.Destination, "weather", trip.WeatherPreference)

	// 2. weather
	dates, err := p.weather.RelevantDates(ctx, weather.DatesRequest{
		Location:  trip.Destination,
		Condition: string(trip.WeatherPreference),
		Days:      p.days(req.Days),
	})
	if err != nil {
		resp.warn(log, 2, "weather lookup failed", err)
	} else {
		resp.Weather = &dates
		resp.WeatherDates = dates.Dates
		log.Info("weather dates found", "step", 2, "count", len(dates.Dates))
	}

	// 3. holidays
	holidays, err := p.holidays.Upcoming(ctx, resp.EmployeeID)
	if err != nil {
		resp.warn(log, 3, "holiday lookup failed", err)
	} else {
		resp.Holidays = holidays.Holidays
		log.Info("holidays found", "step", 3, "employeeId", resp.EmployeeID, "count", len(holidays.Holidays))
	}

	// 4. intersect
	resp.CandidateDates = intersect(resp.WeatherDates, resp.Holidays)
	log.Info("candidate dates computed", "step", 4, "count", len(resp.CandidateDates))
	if len(resp.CandidateDates) == 0 {
		resp.Status = StatusNoAvailableDates
		resp.Message = fmt.Sprintf("No holiday in the forecast window has %s weather in %s.", describeCondition(string(trip.WeatherPreference)), trip.Destination)
		return resp, nil
	}

	// 5. hotel preferences
	prefs, err := p.prefs.Preferences(ctx, p.cfg.PreferenceQuery)
	if err != nil {
		resp.warn(log, 5, "hotel preference lookup failed", err)
	} else {
		resp.HotelPreferences = &prefs
		resp.Usage = resp.Usage.Add(prefs.Usage)
		log.Info("hotel preferences resolved", "step", 5, "kind", prefs.Kind)
	}

	// 6. date and hotel
	resp.SelectedDate = resp.CandidateDates[0]
	resp.MinHotelRating = p.minRating(resp.HotelPreferences)
	hotels, err := p.desk.SearchHotels(ctx, trip.Destination, resp.SelectedDate, resp.MinHotelRating)
	if err != nil {
		return PlanResponse{}, apperrors.Wrap("booking_error", "hotel search failed", err)
	}
	resp.Hotels = hotels
	best, ok := bestHotel(hotels)
	if !ok {
		resp.Status = StatusNoAvailableHotels
		resp.Message = fmt.Sprintf("No hotel in %s is rated %.1f or higher on %s.", trip.Destination, resp.MinHotelRating, resp.SelectedDate)
		log.Info("no hotel matched", "step", 6, "minRating", resp.MinHotelRating)
		return resp, nil
	}
	resp.SelectedHotel = &best
	log.Info("hotel selected", "step", 6, "date", resp.SelectedDate, "hotel", best.Name, "rating", best.Rating)

	// 7. bookings
	if req.DryRun {
		resp.Status = StatusPlanned
		resp.Message = fmt.Sprintf("Dry run: would travel from %s to %s on %s and stay at %s.", trip.Source, trip.Destination, resp.SelectedDate, best.Name)
		log.Info("dry run, skipping bookings", "step", 7)
		return resp, nil
	}
	hotelBooking, err := p.desk.BookHotel(ctx, best, resp.SelectedDate)
	if err != nil {
		return PlanResponse{}, apperrors.Wrap("booking_error", "hotel booking failed", err)
	}
	resp.HotelBooking = &hotelBooking
	flight, err := p.desk.BookFlight(ctx, trip.Source, trip.Destination, resp.SelectedDate)
	if err != nil {
		return PlanResponse{}, apperrors.Wrap("booking_error", "flight booking failed", err)
	}
	resp.FlightBooking = &flight
	confirmation, err := p.desk.SendConfirmation(ctx, trip.Source, flight, hotelBooking)
	if err != nil {
		resp.warn(log, 7, "confirmation e-mail failed", err)
	} else {
		resp.Confirmation = &confirmation
	}
	log.Info("trip booked", "step", 7, "flight", flight.FlightNumber, "hotel", hotelBooking.HotelName)

	resp.Status = StatusPlanned
	resp.Message = fmt.Sprintf("Booked %s from %s to %s on %s and %s until %s.",
		flight.FlightNumber, trip.Source, trip.Destination, resp.SelectedDate, hotelBooking.HotelName, hotelBooking.CheckOut)
	return resp, nil
}

func (p *planner) days(requested int) int {
	if requested > 0 {
		return requested
	}
	return p.cfg.DefaultDays
}

func (p *planner) minRating(prefs *hotelpref.PreferencesResponse) float64 {
	if prefs != nil {
		if rating, ok := prefs.Preferences.MinRating(); ok {
			return rating
		}
	}
	return p.cfg.MinHotelRating
}

func (r *PlanResponse) warn(log *slog.Logger, step int, msg string, err error) {
	log.Warn(msg, "step", step, "error", err)
	r.Warnings = append(r.Warnings, fmt.Sprintf("%s: %v", msg, err))
}

func (t *TripRequest) missingFields() []string {
	var missing []string
	if t.Source == "" {
		missing = append(missing, "source")
	}
	if t.Destination == "" {
		missing = append(missing, "destination")
	}
	return missing
}

// intersect keeps the order of weatherDates.
func intersect(weatherDates, holidays []string) []string {
	free := make(map[string]struct{}, len(holidays))
	for _, d := range holidays {
		free[d] = struct{}{}
	}
	out := []string{}
	for _, d := range weatherDates {
		if _, ok := free[d]; ok {
			out = append(out, d)
		}
	}
	return out
}

// bestHotel picks the highest rating, keeping search order on ties.
func bestHotel(hotels []Hotel) (Hotel, bool) {
	if len(hotels) == 0 {
		return Hotel{}, false
	}
	best := hotels[0]
	for _, h := range hotels[1:] {
		if h.Rating > best.Rating {
			best = h
		}
	}
	return best, true
}

func describeCondition(condition string) string {
	if strings.TrimSpace(condition) == "" {
		return "suitable"
	}
	return strings.ToLower(condition)
}
