package itinerary

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var (
	// ErrNoJSONObject means the model text held nothing that parses as a JSON object.
	ErrNoJSONObject = errors.New("model output does not contain a JSON object")
	// ErrNoItineraryFields means the object parsed but carries none of the itinerary keys.
	ErrNoItineraryFields = errors.New("model output has no itinerary fields")
)

var (
	openingFencePattern = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \t]*\n?")
	closingFencePattern = regexp.MustCompile("\n?```[ \t]*$")
	sentinelPattern     = regexp.MustCompile(`(?i)final answer:`)
)

type cleanStep func(string) string

// Order matters: the sentinel is cut first so a fence that follows it becomes leading.
var cleaningPipeline = []cleanStep{
	trimBeforeSentinel,
	stripCodeFences,
	extractJSONObject,
}

func cleanModelOutput(raw string) string {
	out := raw
	for _, step := range cleaningPipeline {
		out = step(out)
	}
	return out
}

// stripCodeFences removes an opening fence (labelled or not) and a closing fence
// around the text. Backticks inside the payload are left alone.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	for {
		next := openingFencePattern.ReplaceAllString(s, "")
		next = strings.TrimSpace(closingFencePattern.ReplaceAllString(next, ""))
		if next == s {
			return s
		}
		s = next
	}
}

// trimBeforeSentinel drops everything up to and including the last "Final Answer:"
// that precedes the first '{'. Sentinels inside the payload are data.
func trimBeforeSentinel(s string) string {
	head := s
	if i := strings.Index(s, "{"); i >= 0 {
		head = s[:i]
	}
	matches := sentinelPattern.FindAllStringIndex(head, -1)
	if len(matches) == 0 {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(s[matches[len(matches)-1][1]:])
}

// extractJSONObject keeps the span from the first '{' to the last '}'.
func extractJSONObject(s string) string {
	s = strings.TrimSpace(s)
	first := strings.Index(s, "{")
	last := strings.LastIndex(s, "}")
	if first == -1 || last <= first {
		return s
	}
	return s[first : last+1]
}

// ParseItinerary cleans raw model text and decodes it into the result contract.
// Numbers are read leniently: 5000, 5000.0 and "5,000" all become 5000.
func ParseItinerary(raw string) (types.ItineraryResult, error) {
	cleaned := cleanModelOutput(raw)
	if !strings.HasPrefix(cleaned, "{") {
		return types.ItineraryResult{}, ErrNoJSONObject
	}

	dec := json.NewDecoder(strings.NewReader(cleaned))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return types.ItineraryResult{}, fmt.Errorf("%w: %v", ErrNoJSONObject, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return types.ItineraryResult{}, fmt.Errorf("%w: trailing data after object", ErrNoJSONObject)
	}

	return itineraryFromObject(obj)
}

var itineraryKeys = []string{
	"trip_summary", "flight_selected", "hotel_selected",
	"total_budget_estimated", "reasoning", "day_wise_plan",
}

func itineraryFromObject(obj map[string]any) (types.ItineraryResult, error) {
	found := false
	for _, k := range itineraryKeys {
		if _, ok := obj[k]; ok {
			found = true
			break
		}
	}
	if !found {
		return types.ItineraryResult{}, ErrNoItineraryFields
	}

	var (
		res types.ItineraryResult
		err error
	)
	if res.TripSummary, err = toText(obj["trip_summary"]); err != nil {
		return res, fmt.Errorf("trip_summary: %w", err)
	}
	if res.Reasoning, err = toText(obj["reasoning"]); err != nil {
		return res, fmt.Errorf("reasoning: %w", err)
	}
	if res.FlightSelected, err = toFlight(obj["flight_selected"]); err != nil {
		return res, fmt.Errorf("flight_selected: %w", err)
	}
	if res.HotelSelected, err = toHotel(obj["hotel_selected"]); err != nil {
		return res, fmt.Errorf("hotel_selected: %w", err)
	}
	if res.TotalBudgetEstimated, err = toAmount(obj["total_budget_estimated"]); err != nil {
		return res, fmt.Errorf("total_budget_estimated: %w", err)
	}
	if res.DayWisePlan, err = toDayPlan(obj["day_wise_plan"]); err != nil {
		return res, fmt.Errorf("day_wise_plan: %w", err)
	}
	return res, nil
}

func toText(v any) (string, error) {
	switch t := v.(type) {
	case nil:
		return "", nil
	case map[string]any, []any:
		return "", fmt.Errorf("expected text, got %T", v)
	case json.Number:
		return t.String(), nil
	default:
		s, err := cast.ToStringE(t)
		return strings.TrimSpace(s), err
	}
}

var amountNoise = strings.NewReplacer(",", "", "₹", "", "INR", "", "Rs.", "", "Rs", "", " ", "")

// toAmount reads a money value and clamps it at zero.
func toAmount(v any) (int, error) {
	if v == nil {
		return 0, nil
	}
	if n, ok := v.(json.Number); ok {
		v = n.String()
	}
	if s, ok := v.(string); ok {
		s = amountNoise.Replace(strings.TrimSpace(s))
		if s == "" {
			return 0, nil
		}
		v = s
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", v)
	}
	return max(int(math.Round(f)), 0), nil
}

func toFlight(v any) (types.FlightSelection, error) {
	switch t := v.(type) {
	case nil:
		return types.FlightSelection{}, nil
	case string:
		return types.FlightSelection{Airline: strings.TrimSpace(t)}, nil
	case map[string]any:
		airline, err := toText(t["airline"])
		if err != nil {
			return types.FlightSelection{}, err
		}
		price, err := toAmount(t["price"])
		if err != nil {
			return types.FlightSelection{}, err
		}
		return types.FlightSelection{Airline: airline, Price: price}, nil
	default:
		return types.FlightSelection{}, fmt.Errorf("unexpected %T", v)
	}
}

func toHotel(v any) (types.HotelSelection, error) {
	switch t := v.(type) {
	case nil:
		return types.HotelSelection{}, nil
	case string:
		return types.HotelSelection{HotelName: strings.TrimSpace(t)}, nil
	case map[string]any:
		nameField := t["hotel_name"]
		if nameField == nil {
			nameField = t["name"]
		}
		name, err := toText(nameField)
		if err != nil {
			return types.HotelSelection{}, err
		}
		price, err := toAmount(t["price"])
		if err != nil {
			return types.HotelSelection{}, err
		}
		return types.HotelSelection{HotelName: name, Price: price}, nil
	default:
		return types.HotelSelection{}, fmt.Errorf("unexpected %T", v)
	}
}

func toDayPlan(v any) ([]types.DayPlan, error) {
	if v == nil {
		return []types.DayPlan{}, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("expected a list, got %T", v)
	}

	plan := make([]types.DayPlan, 0, len(items))
	for i, item := range items {
		switch t := item.(type) {
		case string:
			plan = append(plan, types.DayPlan{Day: i + 1, Activity: strings.TrimSpace(t)})
		case map[string]any:
			// "day" is not trusted; entries are renumbered by position.
			activity, err := toText(t["activity"])
			if err != nil {
				return nil, fmt.Errorf("entry %d: %w", i, err)
			}
			plan = append(plan, types.DayPlan{Day: i + 1, Activity: activity})
		default:
			return nil, fmt.Errorf("entry %d: unexpected %T", i, item)
		}
	}
	return plan, nil
}

// Normalize turns raw model text into a result for req. It always returns a
// usable result; a non-nil error means the fallback plan was substituted.
func Normalize(raw string, req types.TripRequest) (types.ItineraryResult, error) {
	res, err := ParseItinerary(raw)
	if err != nil {
		return FallbackItinerary(req), err
	}
	res.DayWisePlan = reconcileDayPlan(res.DayWisePlan, req.Days, req.Destination)
	return res, nil
}

// reconcileDayPlan keeps the model's order, renumbers from 1, drops blank and
// surplus entries, and pads missing days.
func reconcileDayPlan(plan []types.DayPlan, days int, destination string) []types.DayPlan {
	out := make([]types.DayPlan, 0, max(days, len(plan)))
	for _, p := range plan {
		if p.Activity == "" {
			continue
		}
		if days > 0 && len(out) == days {
			break
		}
		out = append(out, types.DayPlan{Day: len(out) + 1, Activity: p.Activity})
	}
	for len(out) < days {
		out = append(out, types.DayPlan{
			Day:      len(out) + 1,
			Activity: fmt.Sprintf("Free day to explore %s at your own pace.", destination),
		})
	}
	return out
}

const (
	fallbackAirline     = "Standard Airlines"
	fallbackFlightPrice = 4500
	fallbackHotel       = "Premium City Hotel"
	fallbackHotelPrice  = 3500
	fallbackDefaultDays = 3
)

// FallbackItinerary is the fixed plan returned when the model cannot be used.
// It depends only on req, and its total budget is always zero.
func FallbackItinerary(req types.TripRequest) types.ItineraryResult {
	days := req.Days
	if days <= 0 {
		days = fallbackDefaultDays
	}

	plan := make([]types.DayPlan, 0, days)
	for d := 1; d <= days; d++ {
		var activity string
		switch {
		case d == 1:
			activity = fmt.Sprintf("Arrive in %s and check in to the hotel.", req.Destination)
		case d == days:
			activity = fmt.Sprintf("Check out and depart from %s.", req.Destination)
		default:
			activity = fmt.Sprintf("Local sightseeing in %s.", req.Destination)
		}
		plan = append(plan, types.DayPlan{Day: d, Activity: activity})
	}

	return types.ItineraryResult{
		TripSummary:          fmt.Sprintf("Trip from %s to %s (fallback plan)", req.Source, req.Destination),
		FlightSelected:       types.FlightSelection{Airline: fallbackAirline, Price: fallbackFlightPrice},
		HotelSelected:        types.HotelSelection{HotelName: fallbackHotel, Price: fallbackHotelPrice},
		TotalBudgetEstimated: 0,
		Reasoning:            "The planning service could not produce a valid itinerary, so a standard template is shown. Prices are indicative and no total budget was estimated.",
		DayWisePlan:          plan,
	}
}
