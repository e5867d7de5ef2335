package service

import (
	"context"
	"fmt"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/repository"
)

type recordStore struct {
	projectRepo repository.ProjectRepository
}

func NewRecordStore(projectRepo repository.ProjectRepository) RecordStore {
	return &recordStore{projectRepo: projectRepo}
}

var projectColumns = map[string]bool{
	domain.ColumnOfferName:   true,
	domain.ColumnPromise:     true,
	domain.ColumnAudience:    true,
	domain.ColumnCalendlyURL: true,
	domain.ColumnOwnerID:     true,
}

func (s *recordStore) Insert(ctx context.Context, table string, row domain.Row) error {
	switch table {
	case domain.ProjectsTable:
		p, err := projectFromRow(row)
		if err != nil {
			return err
		}
		if err := s.projectRepo.Create(ctx, p); err != nil {
			return unexpected(err)
		}
		return nil
	default:
		return withMessage(ErrUndefinedTable, fmt.Sprintf("relation %q does not exist", "public."+table))
	}
}

func projectFromRow(row domain.Row) (*domain.Project, error) {
	p := &domain.Project{}
	for col, v := range row {
		if !projectColumns[col] {
			return nil, withMessage(ErrInvalidRow, fmt.Sprintf("Could not find the %q column of %q", col, domain.ProjectsTable))
		}
		val, err := nullableString(col, v)
		if err != nil {
			return nil, err
		}
		switch col {
		case domain.ColumnOfferName:
			p.OfferName = val
		case domain.ColumnPromise:
			p.Promise = val
		case domain.ColumnAudience:
			p.Audience = val
		case domain.ColumnCalendlyURL:
			p.CalendlyURL = val
		case domain.ColumnOwnerID:
			p.OwnerID = val
		}
	}
	return p, nil
}

func nullableString(col string, v any) (*string, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	case *string:
		return t, nil
	default:
		return nil, withMessage(ErrInvalidRow, fmt.Sprintf("invalid input for column %q: expected text", col))
	}
}
