package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/euprava/vrtic-dashboard/internal/adapters/storage"
	"github.com/euprava/vrtic-dashboard/internal/api/handlers"
	"github.com/euprava/vrtic-dashboard/internal/api/routes"
	"github.com/euprava/vrtic-dashboard/internal/application/services"
	"github.com/euprava/vrtic-dashboard/internal/application/session"
	"github.com/euprava/vrtic-dashboard/internal/domain/providers"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/clients/redis"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/clients/vrticapi"
	"github.com/euprava/vrtic-dashboard/internal/infrastructure/observability"
	"github.com/euprava/vrtic-dashboard/internal/presentation/views"
	"github.com/euprava/vrtic-dashboard/internal/presentation/web"
	"github.com/euprava/vrtic-dashboard/pkg/config"
)

func main() {
	// A missing .env is fine; the environment may already be set
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Env)

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	shutdownOTEL, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint, cfg.OTEL.Enabled)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to set up OpenTelemetry, continuing without export")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownOTEL(ctx); err != nil {
				log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
			}
		}()
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Tokens live in Redis when it is reachable, otherwise in process memory
	var kv providers.KeyValueStore
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, keeping tokens in memory")
		} else {
			defer redisClient.Close()
			kv = storage.NewRedisAdapter(redisClient)
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Redis client initialized successfully")
		}
	}
	if kv == nil {
		kv = storage.NewMemoryAdapter()
	}

	sessions := session.NewManager(kv, metrics, cfg.Session.IdleTimeout)
	sessions.StartSweeper(ctx, cfg.Session.SweepInterval)

	apiClient := vrticapi.NewClient(cfg.Upstream, metrics)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load templates")
	}
	builder := views.NewBuilder(services.NewFacilityViewService(cfg.Display.Locale), apiClient.FacilityURL())

	dashboardHandler := handlers.NewDashboardHandler(apiClient, builder, renderer)
	router := routes.NewRouter(dashboardHandler, web.Assets(), sessions, cfg.Session, metrics)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.SetupRoutes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Str("facility_api", cfg.Upstream.FacilityURL).
			Str("auth_api", cfg.Upstream.AuthURL).
			Msg("Dashboard starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Server shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error during server shutdown")
	}

	log.Info().Msg("Server stopped")
}
