package jobs

import (
	"context"
	"time"

	"cro-sprint-backend/internal/logger"
)

const jobTimeout = 5 * time.Minute

// PurgeUnconfirmedUsers deletes signups that never confirmed their email
// within the configured window
func (jr *JobRunner) PurgeUnconfirmedUsers() {
	jr.runWithRecovery("PurgeUnconfirmedUsers", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		ttl := time.Duration(jr.config.Auth.UnconfirmedTTLHours) * time.Hour
		cutoff := jr.now().UTC().Add(-ttl)

		count, err := jr.users.DeleteUnconfirmedBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge unconfirmed users", "error", err)
			return
		}
		logger.Info("Purged unconfirmed users", "count", count, "cutoff", cutoff)
	})
}

// PurgeAnalyticsEvents deletes stored analytics events past retention
func (jr *JobRunner) PurgeAnalyticsEvents() {
	jr.runWithRecovery("PurgeAnalyticsEvents", func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		retention := time.Duration(jr.config.Scheduler.AnalyticsRetentionDays) * 24 * time.Hour
		cutoff := jr.now().UTC().Add(-retention)

		count, err := jr.events.DeleteBefore(ctx, cutoff)
		if err != nil {
			logger.Error("Failed to purge analytics events", "error", err)
			return
		}
		logger.Info("Purged analytics events", "count", count, "cutoff", cutoff)
	})
}
