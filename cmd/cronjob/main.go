package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"studiofin-backend/internal/config"
	"studiofin-backend/internal/jobs"
	"studiofin-backend/internal/logger"
	"studiofin-backend/internal/remote"
	"studiofin-backend/internal/scheduler"
	"studiofin-backend/internal/service"
	"studiofin-backend/internal/viewcache"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit ('sweep-view-cache', 'notify-overdue-bills')")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting StudioFin Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize dependencies
	api := remote.NewClient(cfg.RemoteAPI.BaseURL, cfg.GetRemoteAPITimeout())
	cache := viewcache.New(cfg.GetCacheTTL())
	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromName, cfg.Email.FromAddress)
	jobRunner := jobs.NewJobRunner(api, cache, emailSvc, cfg)

	// Run a single job and exit when requested
	if *runOnce != "" {
		switch *runOnce {
		case "sweep-view-cache":
			jobRunner.SweepViewCache()
		case "notify-overdue-bills":
			jobRunner.NotifyOverdueBills()
		default:
			log.Fatalf("Unknown job: %s", *runOnce)
		}
		return
	}

	// Otherwise run the scheduler until interrupted
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Cronjob runner shutting down")
}
