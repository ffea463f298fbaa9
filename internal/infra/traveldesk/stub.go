package traveldesk

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
	"github.com/singhHarcharan/trip-planner-agent/pkg/util"
)

// catalogue is the fixed hotel inventory served for every destination.
var catalogue = []trip.Hotel{
	{Name: "Hotel Sunshine", Rating: 4.5},
	{Name: "Sunny Stay", Rating: 4.2},
}

const stubFlightNumber = "AA123"

// Stub answers travel-desk calls with sample data and never contacts a
// provider.
type Stub struct {
	logger *slog.Logger
	newID  func() string
}

// NewStub constructs the stub desk.
func NewStub(logger *slog.Logger) *Stub {
	return &Stub{
		logger: logger.With("component", "traveldesk.stub"),
		newID:  uuid.NewString,
	}
}

// SearchHotels returns catalogue hotels rated at least minRating.
func (s *Stub) SearchHotels(_ context.Context, destination, date string, minRating float64) ([]trip.Hotel, error) {
	out := make([]trip.Hotel, 0, len(catalogue))
	for _, h := range catalogue {
		if h.Rating >= minRating {
			h.Location = destination
			out = append(out, h)
		}
	}
	s.logger.Info("hotels searched", "destination", destination, "date", date, "minRating", minRating, "results", len(out))
	return out, nil
}

// BookHotel reserves one night starting on date.
func (s *Stub) BookHotel(_ context.Context, hotel trip.Hotel, date string) (trip.HotelBooking, error) {
	checkIn, err := time.Parse(util.DateLayout, date)
	if err != nil {
		return trip.HotelBooking{}, fmt.Errorf("parse check-in date %q: %w", date, err)
	}
	booking := trip.HotelBooking{
		ConfirmationNumber: s.confirmation("HTL"),
		HotelName:          hotel.Name,
		Location:           hotel.Location,
		CheckIn:            util.FormatDate(checkIn),
		CheckOut:           util.FormatDate(checkIn.AddDate(0, 0, 1)),
	}
	s.logger.Info("hotel booked", "hotel", booking.HotelName, "checkIn", booking.CheckIn, "confirmation", booking.ConfirmationNumber)
	return booking, nil
}

// BookFlight books a same-day flight.
func (s *Stub) BookFlight(_ context.Context, source, destination, date string) (trip.FlightBooking, error) {
	if _, err := time.Parse(util.DateLayout, date); err != nil {
		return trip.FlightBooking{}, fmt.Errorf("parse departure date %q: %w", date, err)
	}
	booking := trip.FlightBooking{
		ConfirmationNumber: s.confirmation("FLT"),
		FlightNumber:       stubFlightNumber,
		Source:             source,
		Destination:        destination,
		Departure:          date,
		Arrival:            date,
	}
	s.logger.Info("flight booked", "flight", booking.FlightNumber, "source", source, "destination", destination, "date", date)
	return booking, nil
}

// SendConfirmation composes the confirmation e-mail.
func (s *Stub) SendConfirmation(_ context.Context, to string, flight trip.FlightBooking, hotel trip.HotelBooking) (trip.Confirmation, error) {
	msg := trip.Confirmation{
		To:      to,
		Subject: "Travel Confirmation",
		Body: fmt.Sprintf("Flight booked: %s %s to %s on %s (%s), Hotel booked: %s %s to %s (%s)",
			flight.FlightNumber, flight.Source, flight.Destination, flight.Departure, flight.ConfirmationNumber,
			hotel.HotelName, hotel.CheckIn, hotel.CheckOut, hotel.ConfirmationNumber),
	}
	s.logger.Info("confirmation sent", "to", to)
	return msg, nil
}

func (s *Stub) confirmation(prefix string) string {
	id := strings.ReplaceAll(s.newID(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	return prefix + "-" + strings.ToUpper(id)
}

var _ trip.TravelDesk = (*Stub)(nil)
