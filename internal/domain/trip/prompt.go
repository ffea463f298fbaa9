package trip

import "strings"

// NotATripMessage is returned when a prompt has nothing to plan.
const NotATripMessage = "This AI agent is designed specifically to help plan trips. Please ask something like 'Plan a trip to CA on a sunny day'."

// IncompleteMessage is returned when a trip lacks a source or destination.
const IncompleteMessage = "Please provide a complete trip planning query with source, destination, and any other relevant details."

const systemPrompt = `You are an AI agent that helps users plan trips. Your job is to extract key parameters from their query.
If the query is related to planning a trip, return a JSON object with the following fields:
- source
- destination
- weather_preference
- travel_dates (if mentioned)
- hotel_preferences (if mentioned)
- other_info (any other relevant info)

If the query is NOT about planning a trip or some data is missing, respond with a message saying:
"` + NotATripMessage + `" or
"` + IncompleteMessage + `"

IMPORTANT: Return ONLY the JSON object without any markdown formatting, code blocks, or additional text.
Your response should be a valid JSON string that can be directly parsed.

Example queries:
- "Plan a trip to California on a sunny day"
- "Book a flight from New York to San Francisco on a sunny weekend"
- "Find hotels in Paris for a family trip next month"
- "I want to travel from London to Tokyo in the spring"
- "Plan a trip to New York for a family vacation in July"`

func buildUserPrompt(query string) string {
	return `User query: "` + strings.TrimSpace(query) + `"`
}
