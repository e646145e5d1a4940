package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/vasool/vasool/internal/api/handlers"
	"github.com/vasool/vasool/internal/api/middleware"
	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/metrics"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Chat        *handlers.ChatHandler
	Dashboard   *handlers.DashboardHandler
	Integration *handlers.IntegrationHandler
	Lead        *handlers.LeadHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks and metrics
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())

		// Auth
		r.Post("/api/auth/signup", h.Auth.Signup)
		r.Post("/api/auth/login", h.Auth.Login)
		r.Post("/api/auth/logout", h.Auth.Logout)

		// Public lead capture
		r.Post("/api/demo/schedule", h.Lead.ScheduleDemo)
		r.Post("/api/contact/sales", h.Lead.ContactSales)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Get("/api/auth/me", h.Auth.Me)

		// Chat assistant
		r.Route("/api/chat", func(r chi.Router) {
			r.Post("/message", h.Chat.Message)
			r.Get("/history", h.Chat.History)
			r.Get("/sessions", h.Chat.Sessions)
		})

		// Dashboard analytics
		r.Route("/api/dashboard", func(r chi.Router) {
			r.Get("/overview", h.Dashboard.Overview)
			r.Get("/collections", h.Dashboard.Collections)
			r.Get("/analytics", h.Dashboard.Analytics)
			r.Get("/reconciliation", h.Dashboard.Reconciliation)
		})

		// Captured leads
		r.Get("/api/leads", h.Lead.List)

		// Accounting integrations
		r.Route("/api/integrations", func(r chi.Router) {
			r.Get("/status", h.Integration.Status)
			r.Route("/zoho", func(r chi.Router) {
				r.Post("/connect", h.Integration.ConnectDemo)
				r.Post("/user-oauth-setup", h.Integration.BeginOAuth)
				r.Post("/callback", h.Integration.Callback)
				r.Delete("/disconnect", h.Integration.Disconnect)
			})
		})
	})

	return r
}
