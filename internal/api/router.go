package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/randytsao24/wastewizard/internal/api/handlers"
	"github.com/randytsao24/wastewizard/internal/observability"
	"github.com/randytsao24/wastewizard/internal/skill"
)

// requestTimeout bounds a whole request, including every upstream call it makes
const requestTimeout = 15 * time.Second

// NewRouter creates and configures the HTTP router with all routes and middleware
func NewRouter(s *skill.Skill, metrics *observability.Collector, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	rootHandler := handlers.NewRootHandler()
	alexaHandler := handlers.NewAlexaHandler(s, logger)
	scheduleHandler := handlers.NewScheduleHandler(s)
	disposalHandler := handlers.NewDisposalHandler(s)

	// Core routes
	mux.HandleFunc("GET /{$}", rootHandler.Index)
	mux.HandleFunc("GET /api", rootHandler.Index)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", metrics.Handler())

	// Voice platform webhook
	mux.HandleFunc("POST /alexa", alexaHandler.Webhook)

	// Lookups by typed address or material
	mux.HandleFunc("GET /api/schedule", scheduleHandler.GetSchedule)
	mux.HandleFunc("GET /api/disposal", disposalHandler.GetDisposal)

	mux.HandleFunc("/", rootHandler.NotFound)

	// Apply middleware stack
	handler := Chain(mux,
		Recovery(logger),
		RequestID,
		Logging(logger),
		CORS,
		Timeout(requestTimeout),
	)

	return handler
}
