package hotelpref

import "strings"

const extractionPrompt = `You are an AI assistant that extracts hotel preferences from user context.

Context:
{{context}}

Respond with a JSON object containing:
- location
- stay_dates
- hotel_preferences:
    - rating
    - amenities
    - price_range

If any field is missing, set it to null.
IMPORTANT: Return ONLY the JSON object. No markdown or extra text.`

func buildPrompt(context string) string {
	return strings.Replace(extractionPrompt, "{{context}}", context, 1)
}
