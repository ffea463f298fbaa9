package weather

// FilterDates returns, in input order, the dates whose dominant condition
// matches the requested one.
func FilterDates(forecasts []DailyForecast, requestedCondition string) []string {
	requested := normalizeCondition(requestedCondition)
	dates := make([]string, 0)
	for _, forecast := range forecasts {
		if Classify(forecast.Condition, requested) {
			dates = append(dates, forecast.Date)
		}
	}
	return dates
}
