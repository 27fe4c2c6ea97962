package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	"go.opentelemetry.io/otel/metric/noop"

	"github.com/FACorreiaa/go-travel-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-itinerary/config"
	"github.com/FACorreiaa/go-travel-itinerary/internal/container"
	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var (
	source      = flag.String("source", "Delhi", "departure city")
	destination = flag.String("destination", "Goa", "destination city")
	days        = flag.Int("days", 3, "trip length in days")
	budget      = flag.String("budget", "Budget", "Budget or Luxury")
	backend     = flag.String("backend", "", "override llm.backend (gemini, groq, agent)")
	showPrompt  = flag.Bool("prompt", false, "log the tool data gathered for the trip")
)

func main() {
	flag.Parse()
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found or error loading:", err)
	}

	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: slog.LevelInfo, TimeFormat: time.Kitchen}))

	cfg, err := config.InitConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *backend != "" {
		cfg.LLM.Backend = *backend
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	tier, err := types.ParseBudgetTier(*budget)
	if err != nil {
		log.Fatalf("budget: %v", err)
	}
	req := types.TripRequest{Source: *source, Destination: *destination, Days: *days, Budget: tier}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.Timeout)
	defer cancel()

	appMetrics, err := metrics.NewAppMetrics(noop.NewMeterProvider().Meter("plan_trip"))
	if err != nil {
		log.Fatalf("metrics: %v", err)
	}
	c, err := container.NewContainer(ctx, &cfg, appMetrics, logger)
	if err != nil {
		log.Fatalf("container: %v", err)
	}

	if *showPrompt {
		tc := c.Toolbox.Gather(ctx, req)
		data, _ := json.MarshalIndent(tc, "", "  ")
		logger.Info("Gathered trip context", slog.String("context", string(data)))
	}

	out, err := c.ItineraryService.GenerateItinerary(ctx, req)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	logger.Info("Itinerary ready",
		slog.String("source", string(out.Source)),
		slog.String("interaction_id", out.InteractionID.String()),
		slog.String("model", c.Generator.Model()),
	)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out.Itinerary); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
