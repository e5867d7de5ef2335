package postgres

import (
	"context"
	"database/sql"
	"time"

	"cro-sprint-backend/internal/domain"
	"cro-sprint-backend/internal/logger"
	"cro-sprint-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, full_name, COALESCE(confirmation_token, ''), confirmed_at, created_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	query := `INSERT INTO users (id, email, password_hash, full_name, confirmation_token, confirmed_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	logger.DatabaseCall("create_user", query, "email", u.Email)
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.FullName, nullString(u.ConfirmationToken), u.ConfirmedAt).Scan(&u.CreatedAt)
	err = translateError(err)
	logger.DatabaseResult("create_user", 1, err)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// Confirm marks the user holding token as confirmed and clears the token
func (r *userRepository) Confirm(ctx context.Context, token string, at time.Time) (*domain.User, error) {
	query := `UPDATE users SET confirmed_at = $1, confirmation_token = NULL
	          WHERE confirmation_token = $2 AND confirmed_at IS NULL
	          RETURNING ` + userColumns
	logger.DatabaseCall("confirm_user", query)
	u, err := r.scanOne(r.db.QueryRowContext(ctx, query, at, token))
	logger.DatabaseResult("confirm_user", 1, err)
	return u, err
}

// SetConfirmationToken replaces the pending token of an unconfirmed user
func (r *userRepository) SetConfirmationToken(ctx context.Context, id, token string) error {
	query := `UPDATE users SET confirmation_token = $1 WHERE id = $2 AND confirmed_at IS NULL`
	logger.DatabaseCall("set_confirmation_token", query, "user_id", id)
	res, err := r.db.ExecContext(ctx, query, token, id)
	if err != nil {
		logger.DatabaseResult("set_confirmation_token", 0, err)
		return err
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		err = repository.ErrNotFound
	}
	logger.DatabaseResult("set_confirmation_token", n, err)
	return err
}

func (r *userRepository) DeleteUnconfirmedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM users WHERE confirmed_at IS NULL AND created_at < $1`
	logger.DatabaseCall("purge_unconfirmed_users", query, "cutoff", cutoff)
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		logger.DatabaseResult("purge_unconfirmed_users", 0, err)
		return 0, err
	}
	n, err := res.RowsAffected()
	logger.DatabaseResult("purge_unconfirmed_users", n, err)
	return n, err
}

func (r *userRepository) scanOne(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	var confirmedAt sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.ConfirmationToken, &confirmedAt, &u.CreatedAt)
	if err != nil {
		return nil, translateError(err)
	}
	if confirmedAt.Valid {
		t := confirmedAt.Time
		u.ConfirmedAt = &t
	}
	return u, nil
}
