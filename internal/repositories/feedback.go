package repositories

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// FeedbackReadRepository handles feedback read operations.
type FeedbackReadRepository struct {
	db *sqlx.DB
}

func NewFeedbackReadRepository(db *sqlx.DB) *FeedbackReadRepository {
	return &FeedbackReadRepository{db: db}
}

// GetAll returns every feedback entry, order unspecified.
func (r *FeedbackReadRepository) GetAll(ctx context.Context) ([]models.FeedbackDB, error) {
	const query = `SELECT id, username, comment FROM feedback`

	var entries []models.FeedbackDB
	err := r.db.SelectContext(ctx, &entries, query)

	logger.Log.Infow("feedback get all",
		"query", query,
		"count", len(entries),
		"error", err,
	)

	return entries, err
}

// FeedbackWriteRepository handles feedback write operations. Writes are
// insert-only; the trail cannot be edited or pruned.
type FeedbackWriteRepository struct {
	db *sqlx.DB
}

func NewFeedbackWriteRepository(db *sqlx.DB) *FeedbackWriteRepository {
	return &FeedbackWriteRepository{db: db}
}

// Save inserts a feedback entry, replacing on the unlikely id collision.
func (r *FeedbackWriteRepository) Save(ctx context.Context, entry models.FeedbackDB) error {
	const query = `
		INSERT OR REPLACE INTO feedback (id, username, comment)
		VALUES (?, ?, ?)
	`
	args := []any{entry.ID, entry.Username, entry.Comment}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("feedback save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{entry.ID, entry.Username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
