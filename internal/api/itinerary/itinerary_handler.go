package itinerary

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-travel-itinerary/internal/api"
	"github.com/FACorreiaa/go-travel-itinerary/internal/types"
)

const (
	HeaderItinerarySource = "X-Itinerary-Source"
	HeaderInteractionID   = "X-Interaction-ID"
)

type HandlerImpl struct {
	service Service
	logger  *slog.Logger
}

func NewHandlerImpl(service Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		service: service,
		logger:  logger,
	}
}

// GenerateItinerary plans a trip from the posted TripRequest.
func (h *HandlerImpl) GenerateItinerary(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ItineraryHandler").Start(r.Context(), "GenerateItinerary", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/itinerary"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "GenerateItinerary"))
	l.DebugContext(ctx, "Generate itinerary handler invoked")

	var req types.TripRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}
	req.Source = strings.TrimSpace(req.Source)
	req.Destination = strings.TrimSpace(req.Destination)

	generated, err := h.service.GenerateItinerary(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		switch {
		case errors.Is(err, ErrInvalidTrip):
			l.WarnContext(ctx, "Invalid trip request", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, ErrGenerationUnavailable):
			l.ErrorContext(ctx, "Generation backend not configured")
			api.ErrorResponse(w, r, http.StatusServiceUnavailable, "Itinerary generation is not configured on this server")
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			if ctx.Err() != nil {
				// the timeout middleware (or a gone client) owns the response
				l.WarnContext(ctx, "Request context ended before itinerary was ready", slog.Any("error", err))
				return
			}
			l.WarnContext(ctx, "Itinerary request timed out", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusGatewayTimeout, "Itinerary generation timed out")
		default:
			l.ErrorContext(ctx, "Failed to generate itinerary", slog.Any("error", err))
			api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to generate itinerary")
		}
		return
	}

	w.Header().Set(HeaderItinerarySource, string(generated.Source))
	w.Header().Set(HeaderInteractionID, generated.InteractionID.String())
	l.InfoContext(ctx, "Itinerary served", slog.String("source", string(generated.Source)))
	api.WriteJSONResponse(w, r, http.StatusOK, generated.Itinerary)
}
