package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/vasool/vasool/internal/ai"
	"github.com/vasool/vasool/internal/api/handlers"
	"github.com/vasool/vasool/internal/api/router"
	"github.com/vasool/vasool/internal/config"
	"github.com/vasool/vasool/internal/pkg/logger"
	"github.com/vasool/vasool/internal/pkg/validator"
	"github.com/vasool/vasool/internal/repository/postgres"
	"github.com/vasool/vasool/internal/services"
	"github.com/vasool/vasool/internal/zoho"
	"github.com/vasool/vasool/migrations"
)

// @title Vasool API
// @version 1.0
// @description Credit collections platform with accounting integrations and an AI assistant.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS(cfg.Database.Driver)); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Info("Database migrations applied")

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	integrationRepo := postgres.NewIntegrationRepository(db)
	chatRepo := postgres.NewChatRepository(db)
	leadRepo := postgres.NewLeadRepository(db)

	// External clients
	zohoClient := zoho.NewClient(zoho.Config{
		AccountsURL: cfg.Zoho.AccountsURL,
		BooksURL:    cfg.Zoho.BooksURL,
		Timeout:     cfg.Zoho.Timeout,
	})

	var assistant ai.Assistant
	if cfg.OpenAI.APIKey != "" {
		assistant = ai.NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	} else {
		log.Warn("OPENAI_API_KEY not set, chat assistant will serve deterministic replies")
	}

	// Services
	userService := services.NewUserService(userRepo, cfg.Auth.BCryptCost, log)
	integrationService := services.NewIntegrationService(integrationRepo, zohoClient, cfg.Zoho, log)
	booksService := services.NewBooksService(integrationRepo, integrationService, zohoClient, log)
	dashboardService := services.NewDashboardService(booksService, integrationService, log)
	chatService := services.NewChatService(chatRepo, booksService, integrationService, assistant, log)
	leadService := services.NewLeadService(leadRepo, log)

	// Handlers
	val := validator.New()
	h := &router.Handlers{
		Health:      handlers.NewHealthHandler(db, log),
		Auth:        handlers.NewAuthHandler(userService, cfg, log, val),
		Chat:        handlers.NewChatHandler(chatService, log, val),
		Dashboard:   handlers.NewDashboardHandler(dashboardService, log),
		Integration: handlers.NewIntegrationHandler(integrationService, log, val),
		Lead:        handlers.NewLeadHandler(leadService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Infof("Vasool API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Graceful shutdown failed: %v", err)
	}
	log.Info("Server stopped")
}
