package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/smeflowhq/leadbot-platform/internal/broadcast"
	"github.com/smeflowhq/leadbot-platform/internal/chat"
	httpmiddleware "github.com/smeflowhq/leadbot-platform/internal/http/middleware"
	"github.com/smeflowhq/leadbot-platform/internal/leads"
	"github.com/smeflowhq/leadbot-platform/internal/strategy"
	"github.com/smeflowhq/leadbot-platform/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger             *logging.Logger
	ChatHandler        *chat.Handler
	LeadsHandler       *leads.Handler
	StrategyHandler    *strategy.Handler
	Hub                *broadcast.Hub
	MetricsHandler     http.Handler
	AdminJWTSecret     string
	CORSAllowedOrigins []string
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

	// Public endpoints (chat widget, audit form, dashboards)
	r.Group(func(public chi.Router) {
		public.Get("/health", healthCheck)

		if cfg.ChatHandler != nil {
			public.Route("/chat", func(r chi.Router) {
				r.Post("/messages", cfg.ChatHandler.SendMessage)
				r.Get("/sessions/{phone}", cfg.ChatHandler.GetSession)
			})
		}
		if cfg.LeadsHandler != nil {
			public.Post("/leads", cfg.LeadsHandler.CreateAuditLead)
		}
		if cfg.StrategyHandler != nil {
			public.Post("/reports/strategy", cfg.StrategyHandler.GenerateBrief)
		}
		if cfg.Hub != nil {
			public.Handle("/ws/leads", cfg.Hub)
		}
		if cfg.MetricsHandler != nil {
			public.Handle("/metrics", cfg.MetricsHandler)
		}
	})

	// Admin endpoints, JWT-guarded
	if cfg.LeadsHandler != nil {
		r.Route("/admin", func(admin chi.Router) {
			admin.Use(httpmiddleware.AdminJWT(cfg.AdminJWTSecret))
			admin.Get("/leads", cfg.LeadsHandler.ListLeads)
			admin.Get("/leads/{id}", cfg.LeadsHandler.GetLead)
			admin.Patch("/leads/{id}/status", cfg.LeadsHandler.UpdateLeadStatus)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
