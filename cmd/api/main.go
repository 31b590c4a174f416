// Package main provides the entrypoint for the driver-x API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/ndungtse/driver-x/internal/api"
	"github.com/ndungtse/driver-x/internal/api/handler"
	"github.com/ndungtse/driver-x/internal/api/middleware"
	"github.com/ndungtse/driver-x/internal/auth"
	"github.com/ndungtse/driver-x/internal/database"
	"github.com/ndungtse/driver-x/internal/logbook"
	"github.com/ndungtse/driver-x/internal/routing"
	"github.com/ndungtse/driver-x/internal/routing/osrm"
	"github.com/ndungtse/driver-x/internal/telemetry"
	"github.com/ndungtse/driver-x/internal/trip"
	"github.com/ndungtse/driver-x/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "driver-x-api"

	// Load .env for local development; absence is fine.
	_ = godotenv.Load()

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting driver-x API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Connect to database and apply migrations
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	if err := database.Migrate(ctx, dbConfig); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}
	log.Info().Msg("migrations applied")

	// Initialize auth service
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	authService := auth.NewService(auth.ServiceConfig{
		JWTService: auth.NewJWTService(auth.JWTConfig{
			SigningKey: jwtSigningKey,
			Issuer:     os.Getenv("JWT_ISSUER"),
			Audience:   os.Getenv("JWT_AUDIENCE"),
		}),
		DriverRepo:  auth.NewPostgresDriverRepository(pool),
		RefreshRepo: auth.NewPostgresRefreshTokenRepository(pool),
	})
	log.Info().Msg("auth service initialized")

	// Initialize logbook service
	logbookService, err := logbook.NewService(logbook.ServiceConfig{
		Logs:       logbook.NewPostgresLogRepository(pool),
		Activities: logbook.NewPostgresActivityRepository(pool),
		Logger:     log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize logbook service")
	}
	log.Info().Msg("logbook service initialized")

	// Initialize routing service backed by OSRM
	osrmURL := os.Getenv("OSRM_BASE_URL")
	if osrmURL == "" {
		osrmURL = "https://router.project-osrm.org"
	}
	routingService := routing.NewService(routing.ServiceConfig{
		Provider: osrm.NewClient(osrm.ClientConfig{
			BaseURL: osrmURL,
			Logger:  log,
		}),
		Logger: log,
	})
	log.Info().Str("osrm_url", osrmURL).Msg("routing service initialized")

	// Initialize trip service
	tripService := trip.NewService(trip.ServiceConfig{
		Trips:   trip.NewPostgresRepository(pool),
		Logbook: logbookService,
		Router:  routingService,
		Logger:  log,
	})
	log.Info().Msg("trip service initialized")

	// Initialize the job publisher when Pub/Sub is configured
	var jobs handler.JobPublisher
	if projectID := os.Getenv("PUBSUB_PROJECT_ID"); projectID != "" {
		topic := os.Getenv("PUBSUB_TOPIC")
		if topic == "" {
			topic = "driver-x-jobs"
		}
		publisher, err := worker.NewPublisher(ctx, worker.PublisherConfig{
			ProjectID: projectID,
			TopicName: topic,
			Logger:    log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to initialize job publisher")
		}
		defer func() {
			if closeErr := publisher.Close(); closeErr != nil {
				log.Error().Err(closeErr).Msg("failed to close job publisher")
			}
		}()
		jobs = publisher
		log.Info().Str("topic", topic).Msg("job publisher initialized")
	} else {
		log.Warn().Msg("Pub/Sub not configured - derived trip fields refresh on demand only")
	}

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:        Version,
		Logger:         log,
		ServiceName:    serviceName,
		Metrics:        metrics,
		Database:       pool,
		AuthService:    authService,
		TripService:    tripService,
		LogbookService: logbookService,
		Jobs:           jobs,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
