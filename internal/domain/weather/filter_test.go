package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilterDatesSunny(t *testing.T) {
	forecasts := []DailyForecast{
		{Date: "2025-08-18", Condition: "clear"},
		{Date: "2025-08-19", Condition: "rain"},
		{Date: "2025-08-20", Condition: "clouds"},
	}

	require.Equal(t, []string{"2025-08-18"}, FilterDates(forecasts, "sunny"))
	require.Equal(t, []string{"2025-08-19"}, FilterDates(forecasts, "  Rainy "))
	require.Equal(t, []string{"2025-08-20"}, FilterDates(forecasts, "cloudy"))
}

func TestFilterDatesEmptyInput(t *testing.T) {
	for _, condition := range []string{"sunny", "", "hail"} {
		dates := FilterDates(nil, condition)
		require.NotNil(t, dates)
		require.Empty(t, dates)
	}
}

func TestAggregateThenFilterIsIdempotent(t *testing.T) {
	samples := []RawForecastSample{
		sample("2025-08-18T00:00:00Z", "Clear", "clear sky", 20, 60),
		sample("2025-08-18T03:00:00Z", "Clear", "clear sky", 21, 60),
		sample("2025-08-19T00:00:00Z", "Rain", "light rain", 18, 80),
		sample("2025-08-20T00:00:00Z", "Clouds", "broken clouds", 19, 70),
		sample("2025-08-21T00:00:00Z", "Clear", "clear sky", 24, 40),
	}

	first := FilterDates(AggregateByDay(samples, 30), "sunny")
	second := FilterDates(AggregateByDay(samples, 30), "sunny")
	require.Equal(t, []string{"2025-08-18", "2025-08-21"}, first)
	require.Equal(t, first, second)
}

func TestFilterDatesSubsetOfForecastDates(t *testing.T) {
	forecasts := []DailyForecast{
		{Date: "2025-08-18", Condition: "mist"},
		{Date: "2025-08-19", Condition: "haze"},
		{Date: "2025-08-20", Condition: "clear"},
	}
	known := map[string]bool{}
	for _, f := range forecasts {
		known[f.Date] = true
	}

	for _, condition := range []string{"foggy", "sunny", "mist", "anything"} {
		for _, date := range FilterDates(forecasts, condition) {
			require.True(t, known[date])
		}
	}
}
