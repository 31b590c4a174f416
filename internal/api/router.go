// Package api provides the HTTP API for driver-x.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/api/handler"
	"github.com/ndungtse/driver-x/internal/api/middleware"
	"github.com/ndungtse/driver-x/internal/auth"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version        string
	Logger         zerolog.Logger
	ServiceName    string
	Metrics        *middleware.Metrics
	Database       handler.Pinger
	AuthService    *auth.Service
	TripService    *trip.Service
	LogbookService *logbook.Service
	Jobs           handler.JobPublisher
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "driver-x-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.Database)
	authHandler := handler.NewAuthHandler(cfg.AuthService)
	tripHandler := handler.NewTripHandler(cfg.TripService)
	dailyLogHandler := handler.NewDailyLogHandler(cfg.LogbookService, cfg.TripService)
	activityHandler := handler.NewActivityHandler(cfg.LogbookService, cfg.TripService, cfg.Jobs, cfg.Logger)
	logbookHandler := handler.NewLogbookHandler(cfg.LogbookService, cfg.TripService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	authRateLimit := middleware.RateLimitByIP(middleware.AuthRateLimit)           // 10 req/min
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByDriver(middleware.StandardRateLimit)

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Auth endpoints (public) - strict rate limiting
		r.Route("/auth", func(r chi.Router) {
			r.Use(authRateLimit) // 10 requests per minute per IP
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			// logout-all requires authentication
			r.With(authMiddleware).Post("/logout-all", authHandler.LogoutAll)
		})

		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Trip endpoints (authenticated) - driver-based rate limiting
		r.Route("/trips", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit) // 100 req/min per driver
			r.Get("/", tripHandler.ListTrips)
			r.Post("/", tripHandler.CreateTrip)

			r.Route("/{tripId}", func(r chi.Router) {
				r.Get("/", tripHandler.GetTrip)
				r.Put("/", tripHandler.UpdateTrip)
				r.Delete("/", tripHandler.DeleteTrip)
				r.Post("/start", tripHandler.StartTrip)
				r.Post("/complete", tripHandler.CompleteTrip)

				// Route computation is expensive - strict rate limiting
				r.With(expensiveRateLimit).Post("/route:compute", tripHandler.ComputeRoute)

				// Daily logs of a trip
				r.Get("/logs", dailyLogHandler.ListLogs)
				r.Post("/logs", dailyLogHandler.CreateLog)
			})
		})

		// Daily log endpoints (authenticated)
		r.Route("/logs/{logId}", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)
			r.Get("/", dailyLogHandler.GetLog)
			r.Put("/", dailyLogHandler.UpdateLog)
			r.Delete("/", dailyLogHandler.DeleteLog)

			// Assembled log sheet view
			r.Get("/logbook", logbookHandler.GetLogbook)

			// Activities on the day's timeline
			r.Get("/activities", activityHandler.ListActivities)
			r.Post("/activities", activityHandler.CreateActivity)
		})

		// Activity endpoints (authenticated)
		r.Route("/activities/{activityId}", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(standardRateLimit)
			r.Put("/", activityHandler.UpdateActivity)
			r.Delete("/", activityHandler.DeleteActivity)
		})
	})

	return r
}
