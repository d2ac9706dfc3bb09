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

// TransactionReadRepository handles transaction read operations.
type TransactionReadRepository struct {
	db *sqlx.DB
}

func NewTransactionReadRepository(db *sqlx.DB) *TransactionReadRepository {
	return &TransactionReadRepository{db: db}
}

// Get returns the transaction with the given id, or nil if absent.
func (r *TransactionReadRepository) Get(ctx context.Context, id int64) (*models.TransactionDB, error) {
	const query = `
		SELECT id, title, amount, category, date, user
		FROM transactions
		WHERE id = ?
	`

	var txn models.TransactionDB
	err := r.db.GetContext(ctx, &txn, query, id)

	logger.Log.Infow("transaction get",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &txn, nil
}

// GetAll returns every transaction row, order unspecified.
func (r *TransactionReadRepository) GetAll(ctx context.Context) ([]models.TransactionDB, error) {
	const query = `SELECT id, title, amount, category, date, user FROM transactions`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query)

	logger.Log.Infow("transaction get all",
		"query", query,
		"count", len(txns),
		"error", err,
	)

	return txns, err
}

// ListByUser returns the transactions owned by username. Ownership is
// matched on the stored value after trimming and lower-casing, so
// case/whitespace variants of one account observe one ledger; the caller
// passes the username already normalized.
func (r *TransactionReadRepository) ListByUser(ctx context.Context, username string) ([]models.TransactionDB, error) {
	const query = `
		SELECT id, title, amount, category, date, user
		FROM transactions
		WHERE LOWER(TRIM(user)) = ?
	`

	var txns []models.TransactionDB
	err := r.db.SelectContext(ctx, &txns, query, username)

	logger.Log.Infow("transaction list by user",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{username},
		"count", len(txns),
		"error", err,
	)

	return txns, err
}

// TransactionWriteRepository handles transaction write operations.
type TransactionWriteRepository struct {
	db *sqlx.DB
}

func NewTransactionWriteRepository(db *sqlx.DB) *TransactionWriteRepository {
	return &TransactionWriteRepository{db: db}
}

// Save inserts the transaction and returns its id. A zero id is
// auto-assigned; a nonzero id replaces any existing row with that id.
func (r *TransactionWriteRepository) Save(ctx context.Context, txn models.TransactionDB) (int64, error) {
	var (
		query string
		args  []any
	)
	if txn.ID == 0 {
		query = `
			INSERT INTO transactions (title, amount, category, date, user)
			VALUES (?, ?, ?, ?, ?)
		`
		args = []any{txn.Title, txn.Amount, txn.Category, txn.Date, txn.User}
	} else {
		query = `
			INSERT OR REPLACE INTO transactions (id, title, amount, category, date, user)
			VALUES (?, ?, ?, ?, ?, ?)
		`
		args = []any{txn.ID, txn.Title, txn.Amount, txn.Category, txn.Date, txn.User}
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	id := txn.ID
	if err == nil && txn.ID == 0 {
		id, err = res.LastInsertId()
	}

	logger.Log.Infow("transaction save",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", id,
		"error", err,
	)

	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update replaces every field of the row matching the transaction's id.
// A no-op when the id is absent.
func (r *TransactionWriteRepository) Update(ctx context.Context, txn models.TransactionDB) error {
	const query = `
		UPDATE transactions
		SET title = ?, amount = ?, category = ?, date = ?, user = ?
		WHERE id = ?
	`
	args := []any{txn.Title, txn.Amount, txn.Category, txn.Date, txn.User, txn.ID}

	res, err := r.db.ExecContext(ctx, query, args...)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("transaction update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", args,
		"result", rowsAffected,
		"error", err,
	)

	return err
}

// Delete removes the row with the given id. A no-op when the id is absent.
func (r *TransactionWriteRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM transactions WHERE id = ?`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("transaction delete",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
