package metrics

import (
	"fmt"
	"log"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// AppMetrics holds the application's metric instruments.
type AppMetrics struct {
	ItineraryRequestsTotal    metric.Int64Counter
	ItineraryFallbacksTotal   metric.Int64Counter
	ProviderFailuresTotal     metric.Int64Counter
	GenerationDurationSeconds metric.Float64Histogram
}

var (
	appMetrics *AppMetrics
	once       sync.Once
)

// NewAppMetrics builds the instruments on the given meter.
func NewAppMetrics(meter metric.Meter) (*AppMetrics, error) {
	var err error
	m := &AppMetrics{}

	m.ItineraryRequestsTotal, err = meter.Int64Counter(
		"itinerary_requests_total",
		metric.WithDescription("Total number of itinerary generations completed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create itinerary_requests_total: %w", err)
	}

	m.ItineraryFallbacksTotal, err = meter.Int64Counter(
		"itinerary_fallbacks_total",
		metric.WithDescription("Itineraries answered with the fallback plan, by reason"),
		metric.WithUnit("{itinerary}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create itinerary_fallbacks_total: %w", err)
	}

	m.ProviderFailuresTotal, err = meter.Int64Counter(
		"provider_failures_total",
		metric.WithDescription("Data provider lookups that returned a degraded record"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create provider_failures_total: %w", err)
	}

	m.GenerationDurationSeconds, err = meter.Float64Histogram(
		"generation_duration_seconds",
		metric.WithDescription("Duration of generation backend calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create generation_duration_seconds: %w", err)
	}

	return m, nil
}

// InitAppMetrics initializes the global metrics instruments ONLY ONCE.
// It gets the Meter from the globally configured MeterProvider.
func InitAppMetrics() {
	once.Do(func() {
		m, err := NewAppMetrics(otel.GetMeterProvider().Meter("TravelItinerary"))
		if err != nil {
			log.Fatalf("Metrics: %v", err)
		}
		log.Println("Application metrics instruments initialized.")
		appMetrics = m
	})
}

// Get returns the globally initialized AppMetrics instance.
// Panics if InitAppMetrics was not called first.
func Get() *AppMetrics {
	if appMetrics == nil {
		panic("metrics instruments not initialized. Call metrics.InitAppMetrics() first.")
	}
	return appMetrics
}
