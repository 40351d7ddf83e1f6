package jobs

import (
	"context"
	"time"

	"studiofin-backend/internal/config"
	"studiofin-backend/internal/logger"
	"studiofin-backend/internal/service"
	"studiofin-backend/internal/viewcache"
)

const jobTimeout = 2 * time.Minute

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	api    service.FinanceAPI
	cache  *viewcache.Cache
	email  service.EmailService
	config *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(api service.FinanceAPI, cache *viewcache.Cache, email service.EmailService, cfg *config.Config) *JobRunner {
	return &JobRunner{
		api:    api,
		cache:  cache,
		email:  email,
		config: cfg,
	}
}

// Config exposes the runner's configuration to the scheduler.
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func(ctx context.Context)) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	logger.Info("Starting job", "job", jobName)
	jobFunc(ctx)
	logger.Info("Job completed", "job", jobName)
}
