package postgres

import (
	"context"
	"database/sql"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"
)

type analyticsEventRepository struct {
	db *sql.DB
}

func NewAnalyticsEventRepository(db *sql.DB) repository.AnalyticsEventRepository {
	return &analyticsEventRepository{db: db}
}

func (r *analyticsEventRepository) Create(ctx context.Context, e *domain.AnalyticsEvent) error {
	query := `INSERT INTO analytics_events (page_id, category, name, analytics_id)
	          VALUES ($1, $2, $3, $4) RETURNING id, created_at`
	logger.DatabaseCall("create_analytics_event", query, "name", e.Name)
	err := r.db.QueryRowContext(ctx, query, e.PageID, e.Category, e.Name, nullString(e.AnalyticsID)).Scan(&e.ID, &e.CreatedAt)
	logger.DatabaseResult("create_analytics_event", 1, err)
	return err
}

func (r *analyticsEventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM analytics_events WHERE created_at < $1`
	logger.DatabaseCall("purge_analytics_events", query, "cutoff", cutoff)
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.DatabaseResult("purge_analytics_events", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("purge_analytics_events", n, err)
	return n, err
}
