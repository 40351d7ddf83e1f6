package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"studiofin-backend/internal/action"
	httpapi "studiofin-backend/internal/api/http"
	"studiofin-backend/internal/config"
	"studiofin-backend/internal/domain"
	"studiofin-backend/internal/jobs"
	"studiofin-backend/internal/logger"
	"studiofin-backend/internal/remote"
	"studiofin-backend/internal/repository"
	"studiofin-backend/internal/repository/postgres"
	"studiofin-backend/internal/scheduler"
	"studiofin-backend/internal/security"
	"studiofin-backend/internal/service"
	"studiofin-backend/internal/viewcache"
)

// auditRecorder adapts the audit repository to the action pipeline.
type auditRecorder struct {
	repo repository.AuditRepository
}

func (a auditRecorder) Record(ctx context.Context, entry domain.AuditEntry) error {
	return a.repo.Record(ctx, &entry)
}

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting StudioFin Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Remote API configuration", "base_url", cfg.RemoteAPI.BaseURL, "timeout_seconds", cfg.RemoteAPI.TimeoutSeconds)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	verifier := security.NewSessionVerifier(cfg.Session.Secret)

	// Initialize Remote API client and view cache
	api := remote.NewClient(cfg.RemoteAPI.BaseURL, cfg.GetRemoteAPITimeout())
	cache := viewcache.New(cfg.GetCacheTTL())

	// Initialize Services
	billSvc := service.NewBillService(api, cache)
	studentSvc := service.NewStudentService(api, cache)
	categorySvc := service.NewCategoryService(api, cache)
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromName, cfg.Email.FromAddress)

	// Initialize Action Pipeline
	pipeline := action.NewPipeline(security.ContextResolver{}, auditRecorder{repo: store})

	// Initialize HTTP API
	router := httpapi.NewRouter(verifier, httpapi.Handlers{
		Bills:      httpapi.NewBillHandler(pipeline, billSvc),
		Students:   httpapi.NewStudentHandler(pipeline, studentSvc),
		Categories: httpapi.NewCategoryHandler(pipeline, categorySvc),
		Audit:      httpapi.NewAuditHandler(store),
	})

	// Initialize Scheduler
	jobRunner := jobs.NewJobRunner(api, cache, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("Shutdown complete")
}
