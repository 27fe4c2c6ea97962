package itinerary

import (
	"encoding/json"
	"fmt"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const finalAnswerSentinel = "Final Answer:"

const itineraryExample = `{
  "trip_summary": "2-day budget trip from Delhi to Goa",
  "flight_selected": {"airline": "IndiGo", "price": 5000},
  "hotel_selected": {"hotel_name": "Goa Beach Resort", "price": 4000},
  "total_budget_estimated": 20000,
  "reasoning": "IndiGo was the cheapest flight and the resort is close to the beaches.",
  "day_wise_plan": [
    {"day": 1, "activity": "Arrive in Goa, check in and relax at Baga Beach."},
    {"day": 2, "activity": "Visit Fort Aguada in the morning and fly back in the evening."}
  ]
}`

// BuildItineraryPrompt renders the single instruction the model receives for a trip.
func BuildItineraryPrompt(req types.TripRequest, tc types.TripContext) string {
	toolData, err := json.MarshalIndent(tc, "", "  ")
	if err != nil {
		toolData = []byte(fmt.Sprintf("%+v", tc))
	}

	return fmt.Sprintf(`You are a travel planning engine. You return data, not conversation.
Do not talk. Do not explain. Just JSON.

RULES:
- Respond with exactly ONE JSON object and nothing else.
- No prose before or after the object, no explanations, no markdown, no code fences.
- Use ONLY these keys: trip_summary, flight_selected, hotel_selected, total_budget_estimated, reasoning, day_wise_plan.
- All prices are whole numbers in INR, without currency symbols or thousands separators.
- day_wise_plan must contain exactly %[1]d entries, numbered 1 to %[1]d.
- If you must prefix your answer, use "%[2]s" followed by the JSON object.

FIELDS:
- trip_summary: one sentence describing the trip.
- flight_selected: {"airline": name of the chosen airline, "price": flight price}.
- hotel_selected: {"hotel_name": name of the chosen hotel, "price": price per night}.
- total_budget_estimated: flight + hotel for all nights + daily expenses, as a number.
- reasoning: why this flight and hotel were chosen.
- day_wise_plan: list of {"day": day number, "activity": what to do that day}.

EXAMPLE OUTPUT:
%[3]s

TRIP:
- Source: %[4]s
- Destination: %[5]s
- Days: %[1]d
- Budget: %[6]s

TOOL DATA (use these results, do not invent other flights or hotels):
%[7]s

Now return the JSON object for this trip with exactly %[1]d days in day_wise_plan.`,
		req.Days, finalAnswerSentinel, itineraryExample,
		req.Source, req.Destination, req.Budget, string(toolData))
}
