package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "cro-sprint-backend/internal/api/http"
	"cro-sprint-backend/internal/config"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository/postgres"
	"cro-sprint-backend/internal/scheduler"
	"cro-sprint-backend/internal/security"
	"cro-sprint-backend/internal/service"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env-file", ".env", "Optional dotenv file loaded before the configuration")
	flag.Parse()

	// A missing .env is normal outside local development
	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting CRO Sprint backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Landing configuration", "calendly_url", cfg.Landing.CalendlyURL, "analytics_id_set", cfg.Landing.ClarityID != "")

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	if err := postgres.CreateSchema(db); err != nil {
		logger.Error("Failed to create schema", "error", err)
		log.Fatalf("Failed to create schema: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Services
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	emailSvc := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, emailSvc, service.AuthOptions{
		RequireEmailConfirmation: cfg.Auth.RequireEmailConfirmation,
		ConfirmURLBase:           cfg.Auth.ConfirmURLBase,
		MinPasswordLength:        cfg.Auth.MinPasswordLength,
	})
	recordStore := service.NewRecordStore(store.ProjectRepository)

	// Initialize HTTP handlers
	dashboard := httpapi.NewDashboardHandler(authSvc, recordStore)
	landing := httpapi.NewLandingHandler(httpapi.LandingConfig{
		CalendlyURL:     cfg.Landing.CalendlyURL,
		WidgetScriptURL: cfg.Landing.WidgetScriptURL,
		ClarityID:       cfg.Landing.ClarityID,
		DataLayer:       cfg.Landing.DataLayer,
		StoreEvents:     cfg.Landing.StoreEvents,
	}, store.AnalyticsEventRepository)
	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc),
		Dashboard: dashboard,
		Landing:   landing,
	})

	// Sweep idle in-memory sessions
	idle := time.Duration(cfg.Sessions.IdleTimeoutMinutes) * time.Minute
	sweeper := scheduler.New()
	if err := sweeper.Add("SweepIdleSessions", cfg.Sessions.SweepSchedule, func() {
		visitors := dashboard.SweepIdle(idle)
		pages := landing.SweepIdle(idle)
		if visitors+pages > 0 {
			logger.Info("Swept idle sessions", "visitors", visitors, "pages", pages)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule session sweep: %v", err)
	}
	sweeper.Start()
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}
