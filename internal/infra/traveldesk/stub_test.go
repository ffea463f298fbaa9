package traveldesk

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/singhHarcharan/trip-planner-agent/internal/domain/trip"
)

func newTestStub() *Stub {
	s := NewStub(slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.newID = func() string { return "1b4e28ba-2fa1-11d2-883f-0016d3cca427" }
	return s
}

func TestSearchHotelsFiltersByRating(t *testing.T) {
	s := newTestStub()

	hotels, err := s.SearchHotels(context.Background(), "Amritsar", "2025-08-20", 4.0)
	require.NoError(t, err)
	require.Len(t, hotels, 2)
	require.Equal(t, "Amritsar", hotels[0].Location)

	hotels, err = s.SearchHotels(context.Background(), "Amritsar", "2025-08-20", 4.3)
	require.NoError(t, err)
	require.Equal(t, []trip.Hotel{{Name: "Hotel Sunshine", Rating: 4.5, Location: "Amritsar"}}, hotels)

	hotels, err = s.SearchHotels(context.Background(), "Amritsar", "2025-08-20", 5)
	require.NoError(t, err)
	require.Empty(t, hotels)
}

func TestBookHotelChecksOutNextDay(t *testing.T) {
	s := newTestStub()

	booking, err := s.BookHotel(context.Background(), trip.Hotel{Name: "Hotel Sunshine", Location: "Amritsar"}, "2025-08-31")
	require.NoError(t, err)
	require.Equal(t, "2025-08-31", booking.CheckIn)
	require.Equal(t, "2025-09-01", booking.CheckOut)
	require.Equal(t, "HTL-1B4E28BA", booking.ConfirmationNumber)

	_, err = s.BookHotel(context.Background(), trip.Hotel{Name: "x"}, "next friday")
	require.Error(t, err)
}

func TestBookFlightAndConfirm(t *testing.T) {
	s := newTestStub()
	ctx := context.Background()

	flight, err := s.BookFlight(ctx, "Bangalore", "Amritsar", "2025-08-20")
	require.NoError(t, err)
	require.Equal(t, "AA123", flight.FlightNumber)
	require.Equal(t, "2025-08-20", flight.Arrival)

	hotel, err := s.BookHotel(ctx, trip.Hotel{Name: "Hotel Sunshine"}, "2025-08-20")
	require.NoError(t, err)

	msg, err := s.SendConfirmation(ctx, "Bangalore", flight, hotel)
	require.NoError(t, err)
	require.Equal(t, "Bangalore", msg.To)
	require.Equal(t, "Travel Confirmation", msg.Subject)
	require.Contains(t, msg.Body, "Flight booked: AA123")
	require.Contains(t, msg.Body, "Hotel booked: Hotel Sunshine")
}
