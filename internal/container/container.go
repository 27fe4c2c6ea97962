package container

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	appMiddleware "github.com/FACorreiaa/go-travel-itinerary/app/middleware"
	"github.com/FACorreiaa/go-travel-itinerary/app/observability/metrics"
	"github.com/FACorreiaa/go-travel-itinerary/config"
	generativeAI "github.com/FACorreiaa/go-travel-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-itinerary/internal/api/itinerary"
	"github.com/FACorreiaa/go-travel-itinerary/internal/api/providers"
	"github.com/FACorreiaa/go-travel-itinerary/internal/router"
)

// Container holds all application dependencies
type Container struct {
	Config           *config.Config
	Logger           *slog.Logger
	Toolbox          *providers.Toolbox
	Generator        generativeAI.Generator
	ItineraryService *itinerary.ServiceImpl
	ItineraryHandler *itinerary.HandlerImpl
}

// NewContainer initializes and returns a new dependency container.
// A missing backend key yields a container whose service reports unavailable.
func NewContainer(ctx context.Context, cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) (*Container, error) {
	toolbox := newToolbox(cfg, appMetrics, logger)

	generator, err := newGenerator(ctx, cfg, toolbox, logger)
	if err != nil {
		logger.Error("Failed to initialize generation backend", slog.Any("error", err))
		return nil, err
	}

	return assemble(cfg, toolbox, generator, appMetrics, logger), nil
}

// NewContainerWithGenerator wires the container around an already built generator.
func NewContainerWithGenerator(cfg *config.Config, generator generativeAI.Generator, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Container {
	return assemble(cfg, newToolbox(cfg, appMetrics, logger), generator, appMetrics, logger)
}

func assemble(cfg *config.Config, toolbox *providers.Toolbox, generator generativeAI.Generator, appMetrics *metrics.AppMetrics, logger *slog.Logger) *Container {
	itineraryService := itinerary.NewServiceImpl(toolbox, generator, appMetrics, cfg.Planner.MaxDays, logger)
	itineraryHandler := itinerary.NewHandlerImpl(itineraryService, logger)

	return &Container{
		Config:           cfg,
		Logger:           logger,
		Toolbox:          toolbox,
		Generator:        generator,
		ItineraryService: itineraryService,
		ItineraryHandler: itineraryHandler,
	}
}

// RouterConfig exposes the handlers and route middleware to the router.
func (c *Container) RouterConfig() *router.Config {
	return &router.Config{
		ItineraryHandler: c.ItineraryHandler,
		ItineraryService: c.ItineraryService,
		AllowedOrigins:   c.Config.CORS.AllowedOrigins,
		RateLimit:        appMiddleware.RateLimit(c.Logger, c.Config.RateLimit.RequestsPerMinute, c.Config.RateLimit.Burst),
	}
}

func newToolbox(cfg *config.Config, appMetrics *metrics.AppMetrics, logger *slog.Logger) *providers.Toolbox {
	rs := providers.NewRandSource(cfg.Providers.RandomSeed)
	weather := providers.NewWeatherProvider(cfg.Providers.WeatherBaseURL, cfg.Providers.WeatherTimeout, cfg.Providers.ForecastDays)

	var searcher providers.PlaceSearcher
	if key := strings.TrimSpace(cfg.Providers.MapsAPIKey); key != "" {
		mapsSearcher, err := providers.NewMapsPlaceSearcher(key)
		if err != nil {
			logger.Warn("Google Maps client unavailable, using static places", slog.Any("error", err))
		} else {
			searcher = mapsSearcher
		}
	}

	toolbox := providers.NewToolbox(rs, weather, providers.NewPlacesProvider(searcher, logger), logger)
	if appMetrics != nil {
		toolbox.SetFailureRecorder(func(ctx context.Context, provider string) {
			appMetrics.ProviderFailuresTotal.Add(ctx, 1,
				metric.WithAttributes(attribute.String("provider", provider)))
		})
	}
	return toolbox
}

// newGenerator returns a nil Generator when the key is missing and allowed to be.
func newGenerator(ctx context.Context, cfg *config.Config, toolbox *providers.Toolbox, logger *slog.Logger) (generativeAI.Generator, error) {
	if strings.TrimSpace(cfg.APIKey()) == "" {
		if cfg.LLM.AllowMissingKey {
			logger.Warn("No API key for generation backend, itinerary endpoint disabled",
				slog.String("backend", cfg.LLM.Backend))
			return nil, nil
		}
		return nil, fmt.Errorf("%w: backend %s", config.ErrMissingAPIKey, cfg.LLM.Backend)
	}

	gemini := generativeAI.GeminiConfig{
		APIKey:      cfg.LLM.GeminiAPIKey,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
	}

	switch cfg.LLM.Backend {
	case config.BackendGemini:
		g, err := generativeAI.NewGeminiGenerator(ctx, gemini)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.BackendAgent:
		g, err := generativeAI.NewAgentGenerator(ctx, gemini, toolbox, cfg.LLM.MaxAgentSteps, logger)
		if err != nil {
			return nil, err
		}
		return g, nil
	case config.BackendGroq:
		return generativeAI.NewGroqGenerator(generativeAI.GroqConfig{
			APIKey:      cfg.LLM.GroqAPIKey,
			BaseURL:     cfg.LLM.GroqBaseURL,
			Model:       cfg.LLM.GroqModel,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.Server.Timeout,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.LLM.Backend)
	}
}
