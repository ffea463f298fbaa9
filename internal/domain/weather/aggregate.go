package weather

import (
	"math"

	"github.com/singhHarcharan/trip-planner-agent/pkg/util"
)

type dayBucket struct {
	date        string
	first       RawForecastSample
	tempSum     float64
	count       int
	labelCounts map[string]int
	labelOrder  []string
}

// AggregateByDay collapses sub-daily samples into one DailyForecast per
// calendar date, keeping first-seen date order. At most dayLimit days are
// returned; a non-positive or oversized limit means MaxForecastDays.
func AggregateByDay(samples []RawForecastSample, dayLimit int) []DailyForecast {
	if dayLimit <= 0 || dayLimit > MaxForecastDays {
		dayLimit = MaxForecastDays
	}

	buckets := make(map[string]*dayBucket)
	order := make([]string, 0)
	for _, sample := range samples {
		date := util.FormatDate(sample.Timestamp)
		bucket, ok := buckets[date]
		if !ok {
			bucket = &dayBucket{
				date:        date,
				first:       sample,
				labelCounts: make(map[string]int),
			}
			buckets[date] = bucket
			order = append(order, date)
		}
		label := normalizeCondition(sample.Condition)
		if _, seen := bucket.labelCounts[label]; !seen {
			bucket.labelOrder = append(bucket.labelOrder, label)
		}
		bucket.labelCounts[label]++
		bucket.tempSum += sample.Temperature
		bucket.count++
	}

	if len(order) > dayLimit {
		order = order[:dayLimit]
	}
	out := make([]DailyForecast, 0, len(order))
	for _, date := range order {
		bucket := buckets[date]
		out = append(out, DailyForecast{
			Date:        bucket.date,
			Condition:   bucket.dominant(),
			Description: bucket.first.Description,
			Temperature: roundTenth(bucket.tempSum / float64(bucket.count)),
			Humidity:    bucket.first.Humidity,
		})
	}
	return out
}

// dominant picks the most frequent label; ties go to the earliest seen.
func (b *dayBucket) dominant() string {
	best := ""
	bestCount := 0
	for _, label := range b.labelOrder {
		if count := b.labelCounts[label]; count > bestCount {
			best = label
			bestCount = count
		}
	}
	return best
}

func roundTenth(v float64) float64 {
	return math.RoundToEven(v*10) / 10
}
