package analytics

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"
)

const defaultReportTimeout = 5 * time.Second

// StoreReporter persists reported events for one page. Delivery is best
// effort: failures are logged and dropped.
type StoreReporter struct {
	repo        repository.AnalyticsEventRepository
	pageID      string
	analyticsID string
	timeout     time.Duration
	log         *slog.Logger
}

func NewStoreReporter(repo repository.AnalyticsEventRepository, pageID, analyticsID string) *StoreReporter {
	return &StoreReporter{
		repo:        repo,
		pageID:      pageID,
		analyticsID: analyticsID,
		timeout:     defaultReportTimeout,
		log:         logger.WithPage(pageID),
	}
}

// Report stores args[0] as the event name. Calls without a name are ignored.
func (r *StoreReporter) Report(category string, args ...any) {
	if len(args) == 0 {
		r.log.Debug("Ignoring report without event name", "category", category)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	event := &domain.AnalyticsEvent{
		PageID:      r.pageID,
		Category:    category,
		Name:        fmt.Sprint(args[0]),
		AnalyticsID: r.analyticsID,
	}
	if err := r.repo.Create(ctx, event); err != nil {
		r.log.Warn("Failed to store analytics event", "event", event.Name, "error", err)
	}
}
