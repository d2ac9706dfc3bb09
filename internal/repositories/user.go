package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// UserReadRepository handles user read operations.
type UserReadRepository struct {
	db *sqlx.DB
}

func NewUserReadRepository(db *sqlx.DB) *UserReadRepository {
	return &UserReadRepository{db: db}
}

// Get returns the user with the given username, or nil if no such row exists.
func (r *UserReadRepository) Get(ctx context.Context, username string) (*models.UserDB, error) {
	const query = `
		SELECT username, email, password_hash
		FROM users
		WHERE username = ?
		LIMIT 1
	`

	var user models.UserDB
	err := r.db.GetContext(ctx, &user, query, username)

	logger.Log.Infow("user get",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetAll returns every user row, order unspecified.
func (r *UserReadRepository) GetAll(ctx context.Context) ([]models.UserDB, error) {
	const query = `SELECT username, email, password_hash FROM users`

	var users []models.UserDB
	err := r.db.SelectContext(ctx, &users, query)

	logger.Log.Infow("user get all",
		"query", query,
		"count", len(users),
		"error", err,
	)

	return users, err
}

// UserWriteRepository handles user write operations.
type UserWriteRepository struct {
	db *sqlx.DB
}

func NewUserWriteRepository(db *sqlx.DB) *UserWriteRepository {
	return &UserWriteRepository{db: db}
}

// Save inserts the user, replacing any existing row with the same
// username. Last write wins; no uniqueness error is surfaced.
func (r *UserWriteRepository) Save(ctx context.Context, user models.UserDB) error {
	const query = `
		INSERT INTO users (username, email, password_hash)
		VALUES (?, ?, ?)
		ON CONFLICT (username) DO UPDATE
		SET email = excluded.email,
		    password_hash = excluded.password_hash
	`
	args := []any{user.Username, user.Email, user.PasswordHash}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("user save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{user.Username, user.Email},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
