package jobs

import (
	"time"

	"cro-sprint-backend/internal/config"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"
)

// JobRunner coordinates all scheduled maintenance jobs
type JobRunner struct {
	users  repository.UserRepository
	events repository.AnalyticsEventRepository
	config *config.Config
	now    func() time.Time
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(users repository.UserRepository, events repository.AnalyticsEventRepository, cfg *config.Config) *JobRunner {
	return &JobRunner{
		users:  users,
		events: events,
		config: cfg,
		now:    time.Now,
	}
}

// Config returns the configuration the runner was built with
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}

// RunAllMaintenanceJobs runs every job once (for manual execution)
func (jr *JobRunner) RunAllMaintenanceJobs() {
	jr.PurgeUnconfirmedUsers()
	jr.PurgeAnalyticsEvents()
}
