package weather

import "strings"

// ConditionCategory is a canonical, user-facing weather label.
type ConditionCategory string

const (
	Sunny  ConditionCategory = "sunny"
	Cloudy ConditionCategory = "cloudy"
	Rainy  ConditionCategory = "rainy"
	Snowy  ConditionCategory = "snowy"
	Stormy ConditionCategory = "stormy"
	Foggy  ConditionCategory = "foggy"
	Windy  ConditionCategory = "windy"
)

// Provider vocabulary accepted for each category.
var conditionSynonyms = map[ConditionCategory][]string{
	Sunny:  {"clear", "clear sky"},
	Cloudy: {"clouds", "scattered clouds", "broken clouds", "overcast clouds"},
	Rainy:  {"rain", "light rain", "moderate rain", "heavy rain", "drizzle"},
	Snowy:  {"snow", "light snow", "moderate snow", "heavy snow"},
	Stormy: {"thunderstorm", "storm"},
	Foggy:  {"fog", "mist", "haze"},
	Windy:  {"wind", "breeze"},
}

// Categories lists the canonical categories in a stable order.
func Categories() []ConditionCategory {
	return []ConditionCategory{Sunny, Cloudy, Rainy, Snowy, Stormy, Foggy, Windy}
}

// Synonyms returns a copy of the provider labels accepted for c.
func Synonyms(c ConditionCategory) []string {
	return append([]string(nil), conditionSynonyms[c]...)
}

// Classify reports whether a forecast condition satisfies the requested one.
// An exact match wins; a known category then only accepts its synonyms;
// anything else falls back to substring containment in either direction.
func Classify(forecastCondition, requestedCondition string) bool {
	forecast := normalizeCondition(forecastCondition)
	requested := normalizeCondition(requestedCondition)

	if forecast == requested {
		return true
	}
	if synonyms, ok := conditionSynonyms[ConditionCategory(requested)]; ok {
		for _, candidate := range synonyms {
			if candidate == forecast {
				return true
			}
		}
		return false
	}
	return strings.Contains(forecast, requested) || strings.Contains(requested, forecast)
}

func normalizeCondition(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
