package postgres

import (
	"context"
	"database/sql"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"

	"github.com/google/uuid"
)

type projectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) repository.ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, p *domain.Project) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `INSERT INTO projects (id, offer_name, promise, audience, calendly_url, owner_id)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	logger.DatabaseCall("create_project", query, "project_id", p.ID)
	err := r.db.QueryRowContext(ctx, query, p.ID, p.OfferName, p.Promise, p.Audience, p.CalendlyURL, p.OwnerID).Scan(&p.CreatedAt)
	err = translateError(err)
	logger.DatabaseResult("create_project", 1, err)
	return err
}
