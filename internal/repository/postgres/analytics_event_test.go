package postgres_test

import (
	"context"
	"testing"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/repository/postgres"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyticsEventRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := postgres.NewAnalyticsEventRepository(db)
	ctx := context.Background()

	t.Run("Create", func(t *testing.T) {
		e := &domain.AnalyticsEvent{PageID: "p-1", Category: "event", Name: domain.EventBookingConfirmed}

		mock.ExpectQuery("INSERT INTO analytics_events").
			WithArgs("p-1", "event", "booking_confirmed", nil).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(7, time.Now()))

		require.NoError(t, repo.Create(ctx, e))
		assert.Equal(t, int64(7), e.ID)
	})

	t.Run("DeleteBefore", func(t *testing.T) {
		cutoff := time.Now()
		mock.ExpectExec("DELETE FROM analytics_events WHERE created_at < \\$1").
			WithArgs(cutoff).
			WillReturnResult(sqlmock.NewResult(0, 12))

		n, err := repo.DeleteBefore(ctx, cutoff)
		assert.NoError(t, err)
		assert.Equal(t, int64(12), n)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, postgres.CreateSchema(db))

	mock.ExpectExec("CREATE TABLE").WillReturnError(assert.AnError)
	assert.ErrorContains(t, postgres.CreateSchema(db), "failed to create schema")
}
