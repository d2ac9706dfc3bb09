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

// PreferenceReadRepository handles preference read operations.
type PreferenceReadRepository struct {
	db *sqlx.DB
}

func NewPreferenceReadRepository(db *sqlx.DB) *PreferenceReadRepository {
	return &PreferenceReadRepository{db: db}
}

// Get returns the preferences for username, or nil if none have been saved.
func (r *PreferenceReadRepository) Get(ctx context.Context, username string) (*models.PreferenceDB, error) {
	const query = `
		SELECT username, reminder_hour, reminder_minute, currency
		FROM preferences
		WHERE username = ?
		LIMIT 1
	`

	var pref models.PreferenceDB
	err := r.db.GetContext(ctx, &pref, query, username)

	logger.Log.Infow("preference get",
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
	return &pref, nil
}

// GetAll returns every preference row. Used at startup to restore
// scheduled reminders.
func (r *PreferenceReadRepository) GetAll(ctx context.Context) ([]models.PreferenceDB, error) {
	const query = `SELECT username, reminder_hour, reminder_minute, currency FROM preferences`

	var prefs []models.PreferenceDB
	err := r.db.SelectContext(ctx, &prefs, query)

	logger.Log.Infow("preference get all",
		"query", query,
		"count", len(prefs),
		"error", err,
	)

	return prefs, err
}

// PreferenceWriteRepository handles preference write operations.
type PreferenceWriteRepository struct {
	db *sqlx.DB
}

func NewPreferenceWriteRepository(db *sqlx.DB) *PreferenceWriteRepository {
	return &PreferenceWriteRepository{db: db}
}

// Save performs an UPSERT keyed by username.
func (r *PreferenceWriteRepository) Save(ctx context.Context, pref models.PreferenceDB) error {
	const query = `
		INSERT INTO preferences (username, reminder_hour, reminder_minute, currency)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (username) DO UPDATE
		SET reminder_hour = excluded.reminder_hour,
		    reminder_minute = excluded.reminder_minute,
		    currency = excluded.currency
	`
	args := []any{pref.Username, pref.ReminderHour, pref.ReminderMinute, pref.Currency}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("preference save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Update replaces every settings column of the row matching the
// preference's username. A no-op when no such row exists.
func (r *PreferenceWriteRepository) Update(ctx context.Context, pref models.PreferenceDB) error {
	const query = `
		UPDATE preferences
		SET reminder_hour = ?, reminder_minute = ?, currency = ?
		WHERE username = ?
	`
	args := []any{pref.ReminderHour, pref.ReminderMinute, pref.Currency, pref.Username}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("preference update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// DeleteByUser removes the preference row for username, if any.
func (r *PreferenceWriteRepository) DeleteByUser(ctx context.Context, username string) error {
	const query = `DELETE FROM preferences WHERE username = ?`

	res, err := r.db.ExecContext(ctx, query, username)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("preference delete by user",
		"query", query,
		"args", []any{username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
