package hotelpref

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/singhHarcharan/trip-planner-agent/pkg/llmjson"
	"github.com/singhHarcharan/trip-planner-agent/pkg/metrics"
)

// Config tunes chunking, retrieval and extraction.
type Config struct {
	Collection     string
	ChunkSize      int
	ChunkStep      int
	TopN           int
	DefaultQuery   string
	Temperature    float32
	MaxTokens      int
	IndexOnStartup bool
}

// Chunk is one fixed-width window of the preference document.
type Chunk struct {
	ID         string `json:"id"`
	Index      int    `json:"index"`
	Text       string `json:"text"`
	TokenCount int    `json:"tokenCount"`
}

// IndexedChunk pairs a chunk with its embedding.
type IndexedChunk struct {
	Chunk
	Embedding []float32
}

// Match is a retrieval hit ordered by ascending distance.
type Match struct {
	ID       string  `json:"id"`
	Text     string  `json:"text"`
	Distance float64 `json:"distance"`
}

// IndexResult summarises an indexing run.
type IndexResult struct {
	Collection string `json:"collection"`
	Chunks     int    `json:"chunks"`
	Tokens     int    `json:"tokens"`
}

// StringList accepts either a JSON array of strings or a single
// comma-separated string.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	var out []string
	for _, part := range strings.Split(single, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	*l = out
	return nil
}

// Details are the hotel-specific preferences. Rating and PriceRange are left
// loosely typed since models answer with numbers, strings or objects.
type Details struct {
	Rating     any        `json:"rating"`
	Amenities  StringList `json:"amenities"`
	PriceRange any        `json:"price_range"`
}

// Preferences is the structured extraction result.
type Preferences struct {
	Location         *string  `json:"location"`
	StayDates        any      `json:"stay_dates"`
	HotelPreferences *Details `json:"hotel_preferences"`
}

var ratingPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// MinRating returns the numeric rating floor if one was expressed.
func (p *Preferences) MinRating() (float64, bool) {
	if p == nil || p.HotelPreferences == nil {
		return 0, false
	}
	switch v := p.HotelPreferences.Rating.(type) {
	case float64:
		return v, v > 0
	case string:
		match := ratingPattern.FindString(v)
		if match == "" {
			return 0, false
		}
		rating, err := strconv.ParseFloat(match, 64)
		if err != nil || rating <= 0 {
			return 0, false
		}
		return rating, true
	default:
		return 0, false
	}
}

// PreferencesResponse is tagged: Preferences is set for structured replies,
// Text for prose replies.
type PreferencesResponse struct {
	Kind        llmjson.Kind       `json:"kind"`
	Preferences *Preferences       `json:"preferences,omitempty"`
	Text        string             `json:"text,omitempty"`
	Context     string             `json:"context"`
	Usage       metrics.TokenUsage `json:"usage"`
}
