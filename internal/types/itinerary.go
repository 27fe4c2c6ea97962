package types

import (
	"encoding/json"

	"github.com/google/uuid"
)

type FlightSelection struct {
	Airline string `json:"airline"`
	Price   int    `json:"price"`
}

type HotelSelection struct {
	HotelName string `json:"hotel_name"`
	Price     int    `json:"price"`
}

type DayPlan struct {
	Day      int    `json:"day"`
	Activity string `json:"activity"`
}

// ItineraryResult is the response contract of the itinerary endpoint.
// Every field is always present; TotalBudgetEstimated is never negative.
type ItineraryResult struct {
	TripSummary          string          `json:"trip_summary"`
	FlightSelected       FlightSelection `json:"flight_selected"`
	HotelSelected        HotelSelection  `json:"hotel_selected"`
	TotalBudgetEstimated int             `json:"total_budget_estimated"`
	Reasoning            string          `json:"reasoning"`
	DayWisePlan          []DayPlan       `json:"day_wise_plan"`
}

// MarshalJSON keeps day_wise_plan an array even when empty.
func (r ItineraryResult) MarshalJSON() ([]byte, error) {
	type alias ItineraryResult
	if r.DayWisePlan == nil {
		r.DayWisePlan = []DayPlan{}
	}
	return json.Marshal(alias(r))
}

// ItinerarySource tells whether a result came from the model or the fallback.
type ItinerarySource string

const (
	SourceModel    ItinerarySource = "model"
	SourceFallback ItinerarySource = "fallback"
)

// GeneratedItinerary wraps a result with where it came from.
type GeneratedItinerary struct {
	Itinerary     ItineraryResult
	Source        ItinerarySource
	InteractionID uuid.UUID
}
