package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-travel-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-itinerary/config"
	"github.com/FACorreiaa/go-travel-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-travel-itinerary/internal/container"
	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const benchmarkModelOutput = "Final Answer:\n```json\n" + `{
	"trip_summary": "Five days in Goa",
	"flight_selected": {"airline": "IndiGo", "price": 5200},
	"hotel_selected": {"hotel_name": "Ginger Goa Inn", "price": "2,100"},
	"total_budget_estimated": 21500.0,
	"reasoning": "Cheapest flight and a well rated hotel.",
	"day_wise_plan": [
		{"day": 1, "activity": "Arrive and check in."},
		{"day": 2, "activity": "Baga Beach."},
		{"day": 3, "activity": "Fort Aguada."},
		{"day": 4, "activity": "Dudhsagar Falls."},
		{"day": 5, "activity": "Depart."}
	]
}` + "\n```"

var benchmarkTrip = types.TripRequest{Source: "Delhi", Destination: "Goa", Days: 5, Budget: types.BudgetTierBudget}

type fixedGenerator struct{ text string }

func (g fixedGenerator) Generate(context.Context, string) (string, error) { return g.text, nil }
func (g fixedGenerator) Model() string                                    { return "fixed" }

// setupBenchmarkHandler builds the full HTTP stack around a fixed generator.
// The forecast lookup goes to a local fake so network latency stays out of the numbers.
func setupBenchmarkHandler(b *testing.B) http.Handler {
	b.Helper()
	weather := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(openMeteoFixture))
	}))
	b.Cleanup(weather.Close)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	appMetrics, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("bench"))
	if err != nil {
		b.Fatal(err)
	}

	cfg := &config.Config{}
	cfg.LLM.Backend = config.BackendGemini
	cfg.Server.Timeout = 5 * time.Second
	cfg.Providers.WeatherBaseURL = weather.URL
	cfg.Providers.WeatherTimeout = time.Second
	cfg.Providers.ForecastDays = 3
	cfg.Planner.MaxDays = 15

	c := container.NewContainerWithGenerator(cfg, fixedGenerator{text: benchmarkModelOutput}, appMetrics, logger)
	return newHTTPHandler(c, logger)
}

func BenchmarkNormalize(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := itinerary.Normalize(benchmarkModelOutput, benchmarkTrip); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkNormalizeFallback(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = itinerary.Normalize("no json here", benchmarkTrip)
	}
}

func BenchmarkBuildItineraryPrompt(b *testing.B) {
	tc := types.TripContext{
		Flight:  types.FlightRecord{FlightID: "IN-412", Source: "Delhi", Destination: "Goa", Airline: "IndiGo", Price: 5200},
		Hotel:   types.HotelRecord{HotelName: "Ginger Goa Inn", City: "Goa", Price: 2100, Rating: 4.1},
		Weather: types.WeatherRecord{City: "Goa", Forecast: []string{"Day 1: Clear Sky (31.2°C)"}},
		Places:  types.PlacesRecord{City: "Goa", Places: []string{"Baga Beach", "Fort Aguada"}},
		Budget:  types.BudgetRecord{EstimatedTotalExpenses: 19000, Currency: "INR", Breakdown: "Flights ~10000, Stay ~9000"},
	}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_ = itinerary.BuildItineraryPrompt(benchmarkTrip, tc)
	}
}

func BenchmarkItineraryEndpoint(b *testing.B) {
	h := setupBenchmarkHandler(b)
	body := `{"source":"Delhi","destination":"Goa","days":5,"budget":"Budget"}`

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			b.Fatalf("unexpected status %d", rec.Code)
		}
	}
}

func BenchmarkItineraryEndpointParallel(b *testing.B) {
	h := setupBenchmarkHandler(b)
	body := `{"source":"Delhi","destination":"Goa","days":5,"budget":"Budget"}`

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary", strings.NewReader(body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
		}
	})
}
