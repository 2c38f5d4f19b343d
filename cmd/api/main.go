package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/agents"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/api/router"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/callsession"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/comms"
	appconfig "github.com/wheelhouse-ai/dealership-ai-platform/internal/config"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/crm"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/dealerbooking"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/http/handlers"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/inventory"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/observability/metrics"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/sheets"
	"github.com/wheelhouse-ai/dealership-ai-platform/internal/toolcall"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting dealership-ai-platform API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	// Stores: Postgres when configured, in-memory otherwise.
	var (
		profiles   crm.Repository
		commsStore comms.Store
		bookings   dealerbooking.Store
		lot        inventory.Repository
	)
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to connect postgres", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		profiles = crm.NewPostgresRepository(pool)
		commsStore = comms.NewPostgresStore(pool)
		bookings = dealerbooking.NewPostgresStore(pool)
		lot = inventory.NewPostgresRepository(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory stores")
		profiles = crm.NewInMemoryRepository()
		commsStore = comms.NewMemoryStore()
		bookings = dealerbooking.NewMemoryStore()
		lot = inventory.NewInMemoryRepository(nil)
	}

	// Call sessions: Redis when configured, in-memory otherwise.
	var sessions callsession.Store
	if cfg.RedisAddr != "" {
		opts := &redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword}
		if cfg.RedisTLS {
			opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		sessions = callsession.NewRedisStore(redis.NewClient(opts), logger)
	} else {
		logger.Warn("REDIS_ADDR not set, call sessions are process-local")
		sessions = callsession.NewMemoryStore(logger)
	}

	// Salesperson roster and assignment policy.
	roster, err := agents.ParseRoster(cfg.SalesRosterJSON)
	if err != nil {
		logger.Error("invalid sales roster", "error", err)
		os.Exit(1)
	}
	var assignment agents.AssignmentPolicy
	if cfg.AssignmentPolicy == "expertise" {
		assignment = agents.NewExpertiseMatchPolicy(roster)
	} else {
		assignment = agents.NewRoundRobinPolicy(roster)
	}

	// Lead sink: Google Sheets when configured.
	var leadSink sheets.LeadSink = sheets.NewNoopSink(logger)
	if cfg.SheetsSpreadsheetID != "" && cfg.SheetsCredentialsJSON != "" {
		sink, err := sheets.New(ctx, cfg.SheetsSpreadsheetID, cfg.SheetsCredentialsJSON, logger)
		if err != nil {
			logger.Error("failed to init sheets lead sink", "error", err)
			os.Exit(1)
		}
		leadSink = sink
	}

	links := inventory.NewMemoryLinkStore(cfg.PublicBaseURL, cfg.ShareLinkTTL)

	planner := comms.NewPlanner(commsStore, logger).WithSummaryDelay(cfg.SummaryEmailDelay)

	toolMetrics := metrics.NewToolCallMetrics(nil)

	dispatcher := toolcall.NewDispatcher(toolcall.Config{
		Agents:          agents.NewDirectory(),
		Assignment:      assignment,
		Profiles:        profiles,
		Sessions:        sessions,
		Inventory:       lot,
		Links:           links,
		Bookings:        bookings,
		Planner:         planner,
		Leads:           leadSink,
		Metrics:         toolMetrics,
		DealershipPhone: cfg.DealershipPhone,
		Logger:          logger,
	})

	// Setup router
	routerCfg := &router.Config{
		Logger:         logger,
		VoiceTools:     handlers.NewVoiceToolsHandler(dispatcher, logger),
		InventoryLinks: handlers.NewInventoryLinkHandler(links, lot, logger),
		Admin: handlers.NewAdminHandler(handlers.AdminHandlerConfig{
			Sessions: sessions,
			Profiles: profiles,
			Comms:    commsStore,
			Bookings: bookings,
			Logger:   logger,
		}),
		VoiceWebhookSecret:   cfg.VoiceWebhookSecret,
		AdminAuthSecret:      cfg.AdminJWTSecret,
		MetricsHandler:       promhttp.Handler(),
		WebhookRatePerSecond: 20,
		WebhookBurst:         40,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
