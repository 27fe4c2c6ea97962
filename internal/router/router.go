package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/FACorreiaa/go-travel-itinerary/internal/api"
	"github.com/FACorreiaa/go-travel-itinerary/internal/api/itinerary"
)

// Config contains dependencies needed for the router setup
type Config struct {
	ItineraryHandler *itinerary.HandlerImpl
	ItineraryService itinerary.Service
	AllowedOrigins   []string
	RateLimit        func(http.Handler) http.Handler
}

type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// SetupRouter initializes and configures the main application router.
// Server-wide middleware (logger, request id, recoverer) is applied in main.go.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{itinerary.HeaderItinerarySource, itinerary.HeaderInteractionID},
		MaxAge:         300,
	}))

	health := healthHandler(cfg.ItineraryService)
	r.Get("/", health)
	r.Head("/", health)

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		if cfg.RateLimit != nil {
			r.Use(cfg.RateLimit)
		}
		r.Post("/itinerary", cfg.ItineraryHandler.GenerateItinerary)
	})

	return r
}

func healthHandler(svc itinerary.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || !svc.Available() {
			api.WriteJSONResponse(w, r, http.StatusServiceUnavailable, healthResponse{
				Status:  "unavailable",
				Message: "Generation backend is not configured",
			})
			return
		}
		api.WriteJSONResponse(w, r, http.StatusOK, healthResponse{
			Status:  "active",
			Message: "AI Agent is running successfully",
		})
	}
}
