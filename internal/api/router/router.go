package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/wheelhouse-ai/dealership-ai-platform/internal/http/handlers"
	httpmiddleware "github.com/wheelhouse-ai/dealership-ai-platform/internal/http/middleware"
	"github.com/wheelhouse-ai/dealership-ai-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	VoiceTools     *handlers.VoiceToolsHandler
	InventoryLinks *handlers.InventoryLinkHandler
	Admin          *handlers.AdminHandler

	// VoiceWebhookSecret guards the tool-call webhook. Empty disables the
	// check (development only).
	VoiceWebhookSecret string
	AdminAuthSecret    string

	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// WebhookRatePerSecond limits tool-call webhook traffic per caller IP.
	// Zero disables rate limiting.
	WebhookRatePerSecond float64
	WebhookBurst         int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	// Public endpoints (webhooks, health checks)
	r.Group(func(public chi.Router) {
		public.Get("/health", handleHealth)

		if cfg.VoiceTools != nil {
			public.Route("/webhooks/voice", func(r chi.Router) {
				if cfg.WebhookRatePerSecond > 0 {
					r.Use(httpmiddleware.RateLimit(cfg.WebhookRatePerSecond, cfg.WebhookBurst))
				}
				r.Use(requireVoiceSecret(cfg.VoiceWebhookSecret))
				r.Post("/tools", cfg.VoiceTools.HandleTools)
			})
		}

		if cfg.InventoryLinks != nil {
			public.Get("/inventory/view/{token}", cfg.InventoryLinks.HandleView)
		}

		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin routes (protected by HMAC-signed JWT)
	if cfg.Admin != nil && cfg.AdminAuthSecret != "" {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminAuthSecret))
			admin.Get("/sessions/{callID}", cfg.Admin.GetSession)
			admin.Get("/customers/{phone}", cfg.Admin.GetCustomer)
			admin.Get("/communications", cfg.Admin.ListCommunications)
			admin.Get("/bookings", cfg.Admin.ListBookings)
		})
	}

	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
