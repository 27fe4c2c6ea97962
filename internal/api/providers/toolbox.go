package providers

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cast"

	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const (
	ToolSearchFlights  = "search_flights"
	ToolRecommendHotel = "recommend_hotel"
	ToolLookupWeather  = "lookup_weather"
	ToolDiscoverPlaces = "discover_places"
	ToolEstimateBudget = "estimate_budget"
)

// FailureRecorder is told which provider returned a degraded record.
type FailureRecorder func(ctx context.Context, provider string)

// Toolbox bundles the data providers used to ground a generation.
type Toolbox struct {
	flights   *FlightProvider
	hotels    *HotelProvider
	weather   *WeatherProvider
	places    *PlacesProvider
	budget    *BudgetProvider
	logger    *slog.Logger
	onFailure FailureRecorder
}

func NewToolbox(rs RandSource, weather *WeatherProvider, places *PlacesProvider, logger *slog.Logger) *Toolbox {
	return &Toolbox{
		flights: NewFlightProvider(rs),
		hotels:  NewHotelProvider(rs),
		weather: weather,
		places:  places,
		budget:  NewBudgetProvider(),
		logger:  logger,
	}
}

func (t *Toolbox) SetFailureRecorder(fn FailureRecorder) {
	t.onFailure = fn
}

// Gather calls every provider once, in a fixed order, for the trip.
func (t *Toolbox) Gather(ctx context.Context, req types.TripRequest) types.TripContext {
	pref := req.Budget.Preference()

	tc := types.TripContext{
		Flight:  t.flights.Search(req.Source, req.Destination, pref),
		Hotel:   t.hotels.Recommend(req.Destination, pref),
		Weather: t.weather.Forecast(ctx, req.Destination),
		Places:  t.places.Discover(ctx, req.Destination),
		Budget:  t.budget.Estimate(req.Days, string(req.Budget)),
	}

	if tc.Weather.Error != "" {
		t.recordFailure(ctx, ToolLookupWeather, tc.Weather.Error)
	}
	if tc.Budget.Error != "" {
		t.recordFailure(ctx, ToolEstimateBudget, tc.Budget.Error)
	}
	return tc
}

func (t *Toolbox) recordFailure(ctx context.Context, provider, reason string) {
	t.logger.WarnContext(ctx, "Provider returned a degraded record",
		slog.String("provider", provider), slog.String("reason", reason))
	if t.onFailure != nil {
		t.onFailure(ctx, provider)
	}
}

// Specs describes the providers as callable tools.
func (t *Toolbox) Specs() []types.ToolSpec {
	return []types.ToolSpec{
		{
			Name:        ToolSearchFlights,
			Description: "Find a flight between two cities. Use preference 'luxury' or 'fastest' for premium carriers, otherwise 'cheapest'.",
			Params: []types.ToolParam{
				{Name: "source", Type: "string", Description: "Departure city", Required: true},
				{Name: "destination", Type: "string", Description: "Arrival city", Required: true},
				{Name: "preference", Type: "string", Description: "cheapest, luxury or fastest"},
			},
		},
		{
			Name:        ToolRecommendHotel,
			Description: "Recommend a hotel in a city for the given budget preference.",
			Params: []types.ToolParam{
				{Name: "city", Type: "string", Description: "City to stay in", Required: true},
				{Name: "preference", Type: "string", Description: "budget or luxury"},
			},
		},
		{
			Name:        ToolLookupWeather,
			Description: "Get a short daily weather forecast for a city.",
			Params: []types.ToolParam{
				{Name: "city", Type: "string", Description: "City name", Required: true},
			},
		},
		{
			Name:        ToolDiscoverPlaces,
			Description: "List tourist attractions in a city.",
			Params: []types.ToolParam{
				{Name: "city", Type: "string", Description: "City name", Required: true},
			},
		},
		{
			Name:        ToolEstimateBudget,
			Description: "Estimate daily living expenses in INR for a trip.",
			Params: []types.ToolParam{
				{Name: "days", Type: "integer", Description: "Number of days", Required: true},
				{Name: "category", Type: "string", Description: "budget or luxury"},
			},
		},
	}
}

// Execute runs the named tool with loosely typed arguments.
func (t *Toolbox) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	str := func(key string) string { return cast.ToString(args[key]) }

	switch name {
	case ToolSearchFlights:
		return t.flights.Search(str("source"), str("destination"), str("preference")), nil
	case ToolRecommendHotel:
		return t.hotels.Recommend(str("city"), str("preference")), nil
	case ToolLookupWeather:
		rec := t.weather.Forecast(ctx, str("city"))
		if rec.Error != "" {
			t.recordFailure(ctx, name, rec.Error)
		}
		return rec, nil
	case ToolDiscoverPlaces:
		return t.places.Discover(ctx, str("city")), nil
	case ToolEstimateBudget:
		rec := t.budget.EstimateFromArg(args["days"], str("category"))
		if rec.Error != "" {
			t.recordFailure(ctx, name, rec.Error)
		}
		return rec, nil
	default:
		return nil, fmt.Errorf("unknown tool %q", name)
	}
}
