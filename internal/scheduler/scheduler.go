package scheduler

import (
	"fmt"
	"time"

	"cro-sprint-backend/internal/jobs"
	"cro-sprint-backend/internal/logger"

	"github.com/robfig/cron/v3"
)

// Scheduler manages cron job scheduling
type Scheduler struct {
	cron *cron.Cron
}

// New creates a scheduler in UTC with seconds precision
func New() *Scheduler {
	c := cron.New(
		cron.WithLocation(time.UTC),
		cron.WithSeconds(),
	)
	return &Scheduler{cron: c}
}

// NewScheduler creates a scheduler with the maintenance jobs of jobRunner registered
func NewScheduler(jobRunner *jobs.JobRunner) (*Scheduler, error) {
	s := New()
	if err := s.RegisterJobs(jobRunner); err != nil {
		return nil, err
	}
	return s, nil
}

// Add registers fn under a name for logging
func (s *Scheduler) Add(name, spec string, fn func()) error {
	if _, err := s.cron.AddFunc(spec, fn); err != nil {
		logger.Error("Failed to register job", "job", name, "schedule", spec, "error", err)
		return fmt.Errorf("failed to register %s job: %w", name, err)
	}
	logger.Debug("Registered job", "job", name, "schedule", spec)
	return nil
}

// RegisterJobs registers all maintenance jobs with the cron scheduler
func (s *Scheduler) RegisterJobs(jobRunner *jobs.JobRunner) error {
	cfg := jobRunner.Config().Scheduler

	if err := s.Add("PurgeUnconfirmedUsers", cfg.PurgeUnconfirmedUsers, jobRunner.PurgeUnconfirmedUsers); err != nil {
		return err
	}
	if err := s.Add("PurgeAnalyticsEvents", cfg.PurgeAnalyticsEvents, jobRunner.PurgeAnalyticsEvents); err != nil {
		return err
	}

	logger.Info("All cron jobs registered successfully")
	return nil
}

// Start begins the cron scheduler
func (s *Scheduler) Start() {
	logger.Info("Starting cron scheduler...")
	s.cron.Start()
	logger.Info("Cron scheduler started successfully")
}

// Stop gracefully stops the cron scheduler, waiting for running jobs
func (s *Scheduler) Stop() {
	logger.Info("Stopping cron scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info("Cron scheduler stopped")
}

// Entries returns the number of registered jobs
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
