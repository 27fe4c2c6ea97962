package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-itinerary/app/observability/metrics"
	generativeAI "github.com/FACorreiaa/go-travel-itinerary/internal/api/generative_ai"
	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

var (
	// ErrInvalidTrip wraps every validation failure of a TripRequest.
	ErrInvalidTrip = errors.New("invalid trip request")
	// ErrGenerationUnavailable is returned when no generation backend is configured.
	ErrGenerationUnavailable = errors.New("itinerary generation is unavailable")
)

const (
	fallbackReasonGeneration = "generation_error"
	fallbackReasonParse      = "parse_error"
)

// TripContextGatherer collects the provider records for a trip.
type TripContextGatherer interface {
	Gather(ctx context.Context, req types.TripRequest) types.TripContext
}

// Service defines the business logic contract for itinerary generation.
type Service interface {
	GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.GeneratedItinerary, error)
	Available() bool
}

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

type ServiceImpl struct {
	logger    *slog.Logger
	gatherer  TripContextGatherer
	generator generativeAI.Generator
	metrics   *metrics.AppMetrics
	maxDays   int
}

// NewServiceImpl wires the pipeline. A nil generator leaves the service unavailable.
func NewServiceImpl(gatherer TripContextGatherer, generator generativeAI.Generator, appMetrics *metrics.AppMetrics, maxDays int, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:    logger,
		gatherer:  gatherer,
		generator: generator,
		metrics:   appMetrics,
		maxDays:   maxDays,
	}
}

func (s *ServiceImpl) Available() bool {
	return s.generator != nil
}

// ValidateTrip checks a request before any provider or model is called.
func ValidateTrip(req types.TripRequest, maxDays int) error {
	switch {
	case strings.TrimSpace(req.Source) == "":
		return fmt.Errorf("%w: source is required", ErrInvalidTrip)
	case strings.TrimSpace(req.Destination) == "":
		return fmt.Errorf("%w: destination is required", ErrInvalidTrip)
	case req.Days < 1 || (maxDays > 0 && req.Days > maxDays):
		return fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidTrip, maxDays)
	case req.Budget != types.BudgetTierBudget && req.Budget != types.BudgetTierLuxury:
		return fmt.Errorf("%w: budget must be one of Budget, Luxury", ErrInvalidTrip)
	}
	return nil
}

func (s *ServiceImpl) GenerateItinerary(ctx context.Context, req types.TripRequest) (*types.GeneratedItinerary, error) {
	ctx, span := otel.Tracer("ItineraryService").Start(ctx, "GenerateItinerary", trace.WithAttributes(
		attribute.String("trip.source", req.Source),
		attribute.String("trip.destination", req.Destination),
		attribute.Int("trip.days", req.Days),
		attribute.String("trip.budget", string(req.Budget)),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GenerateItinerary"),
		slog.String("source", req.Source), slog.String("destination", req.Destination))

	if err := ValidateTrip(req, s.maxDays); err != nil {
		span.SetStatus(codes.Error, "invalid trip")
		return nil, err
	}
	if !s.Available() {
		span.SetStatus(codes.Error, "generation unavailable")
		return nil, ErrGenerationUnavailable
	}

	tripContext := s.gatherer.Gather(ctx, req)
	prompt := BuildItineraryPrompt(req, tripContext)

	interaction := types.LlmInteraction{
		ID:        uuid.New(),
		Prompt:    prompt,
		ModelUsed: s.generator.Model(),
	}
	span.SetAttributes(attribute.String("llm.interaction_id", interaction.ID.String()),
		attribute.String("llm.model", interaction.ModelUsed))

	start := time.Now()
	raw, genErr := s.generator.Generate(ctx, prompt)
	elapsed := time.Since(start)
	interaction.LatencyMs = int(elapsed.Milliseconds())
	interaction.ResponseText = raw
	s.metrics.GenerationDurationSeconds.Record(ctx, elapsed.Seconds(),
		metric.WithAttributes(attribute.String("model", interaction.ModelUsed)))

	if genErr != nil && ctx.Err() != nil {
		span.RecordError(ctx.Err())
		span.SetStatus(codes.Error, "request cancelled")
		l.WarnContext(ctx, "Request ended before generation finished", slog.Any("error", ctx.Err()))
		return nil, ctx.Err()
	}

	var (
		result types.ItineraryResult
		source = types.SourceModel
	)
	switch {
	case genErr != nil:
		span.RecordError(genErr)
		l.ErrorContext(ctx, "Generation backend failed, using fallback itinerary",
			slog.Any("error", genErr), slog.String("interaction_id", interaction.ID.String()))
		interaction.Error = genErr.Error()
		result = FallbackItinerary(req)
		source = types.SourceFallback
		s.recordFallback(ctx, fallbackReasonGeneration)
	default:
		var parseErr error
		result, parseErr = Normalize(raw, req)
		if parseErr != nil {
			span.RecordError(parseErr)
			l.WarnContext(ctx, "Model output could not be parsed, using fallback itinerary",
				slog.Any("error", parseErr), slog.String("raw_response", raw),
				slog.String("interaction_id", interaction.ID.String()))
			interaction.Error = parseErr.Error()
			source = types.SourceFallback
			s.recordFallback(ctx, fallbackReasonParse)
		}
	}
	interaction.Outcome = source

	s.metrics.ItineraryRequestsTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("source", string(source))))
	span.SetAttributes(attribute.String("itinerary.source", string(source)))
	span.SetStatus(codes.Ok, "itinerary generated")

	l.DebugContext(ctx, "LLM interaction", slog.Any("interaction", interaction))
	l.InfoContext(ctx, "Itinerary generated",
		slog.String("interaction_id", interaction.ID.String()),
		slog.String("source", string(source)),
		slog.Int("latency_ms", interaction.LatencyMs))

	return &types.GeneratedItinerary{
		Itinerary:     result,
		Source:        source,
		InteractionID: interaction.ID,
	}, nil
}

func (s *ServiceImpl) recordFallback(ctx context.Context, reason string) {
	s.metrics.ItineraryFallbacksTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}
