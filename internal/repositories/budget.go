package repositories

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// BudgetReadRepository handles budget read operations.
type BudgetReadRepository struct {
	db *sqlx.DB
}

func NewBudgetReadRepository(db *sqlx.DB) *BudgetReadRepository {
	return &BudgetReadRepository{db: db}
}

// Get returns the budget for username, or nil if none has been saved.
func (r *BudgetReadRepository) Get(ctx context.Context, username string) (*models.BudgetDB, error) {
	const query = `
		SELECT username, amount
		FROM budgets
		WHERE username = ?
		LIMIT 1
	`

	var budget models.BudgetDB
	err := r.db.GetContext(ctx, &budget, query, username)

	logger.Log.Infow("budget get",
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
	return &budget, nil
}

// BudgetWriteRepository handles budget write operations.
type BudgetWriteRepository struct {
	db *sqlx.DB
}

func NewBudgetWriteRepository(db *sqlx.DB) *BudgetWriteRepository {
	return &BudgetWriteRepository{db: db}
}

// Save performs an UPSERT keyed by username.
func (r *BudgetWriteRepository) Save(ctx context.Context, budget models.BudgetDB) error {
	const query = `
		INSERT INTO budgets (username, amount)
		VALUES (?, ?)
		ON CONFLICT (username) DO UPDATE
		SET amount = excluded.amount
	`
	args := []any{budget.Username, budget.Amount}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("budget save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Update replaces the amount of the row matching the budget's username.
// A no-op when no such row exists.
func (r *BudgetWriteRepository) Update(ctx context.Context, username string, amount decimal.Decimal) error {
	const query = `UPDATE budgets SET amount = ? WHERE username = ?`

	res, err := r.db.ExecContext(ctx, query, amount, username)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("budget update",
		"query", query,
		"args", []any{amount, username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// DeleteByUser removes the budget row for username, if any.
func (r *BudgetWriteRepository) DeleteByUser(ctx context.Context, username string) error {
	const query = `DELETE FROM budgets WHERE username = ?`

	res, err := r.db.ExecContext(ctx, query, username)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("budget delete by user",
		"query", query,
		"args", []any{username},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
