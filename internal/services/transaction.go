package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

var (
	ErrTitleRequired       = errors.New("title is required")
	ErrAmountNotPositive   = errors.New("amount must be positive")
	ErrUnknownCategory     = errors.New("unknown category")
	ErrInvalidDate         = errors.New("date must be YYYY-MM-DD")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrNotOwner            = errors.New("transaction belongs to another user")
)

const dateLayout = "2006-01-02"

// TransactionReader defines read operations for transactions.
type TransactionReader interface {
	Get(ctx context.Context, id int64) (*models.TransactionDB, error)
	ListByUser(ctx context.Context, username string) ([]models.TransactionDB, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	Save(ctx context.Context, txn models.TransactionDB) (int64, error)
	Update(ctx context.Context, txn models.TransactionDB) error
	Delete(ctx context.Context, id int64) error
}

// ListInvalidator drops a memoized per-user transaction list. May be nil
// when no cache is wired.
type ListInvalidator interface {
	Invalidate(username string)
}

// BudgetChecker recomputes a user's budget position after a write and
// raises an alert when a threshold is crossed. May be nil.
type BudgetChecker interface {
	CheckAndPublish(ctx context.Context, username string) error
}

// TransactionService validates and records income/expense transactions.
type TransactionService struct {
	reader TransactionReader
	writer TransactionWriter
	cache  ListInvalidator
	alerts BudgetChecker
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(reader TransactionReader, writer TransactionWriter, cache ListInvalidator, alerts BudgetChecker) *TransactionService {
	return &TransactionService{
		reader: reader,
		writer: writer,
		cache:  cache,
		alerts: alerts,
	}
}

func validateTransaction(title string, amount decimal.Decimal, category, date string) error {
	switch {
	case title == "":
		return ErrTitleRequired
	case !amount.IsPositive():
		return ErrAmountNotPositive
	case !models.ValidCategory(category):
		return ErrUnknownCategory
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// Add validates and stores a new transaction for username, returning the
// stored record with its assigned id.
func (svc *TransactionService) Add(ctx context.Context, username, title string, amount decimal.Decimal, category, date string) (models.TransactionDB, error) {
	if err := validateTransaction(title, amount, category, date); err != nil {
		return models.TransactionDB{}, err
	}

	txn := models.TransactionDB{
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
		User:     normalizeUsername(username),
	}
	id, err := svc.writer.Save(ctx, txn)
	if err != nil {
		logger.Log.Errorw("failed to save transaction", "err", err)
		return models.TransactionDB{}, err
	}
	txn.ID = id

	svc.afterWrite(ctx, txn.User)
	return txn, nil
}

// Update replaces every field of an existing transaction owned by username.
func (svc *TransactionService) Update(ctx context.Context, username string, id int64, title string, amount decimal.Decimal, category, date string) (models.TransactionDB, error) {
	if err := validateTransaction(title, amount, category, date); err != nil {
		return models.TransactionDB{}, err
	}

	username = normalizeUsername(username)
	existing, err := svc.reader.Get(ctx, id)
	if err != nil {
		return models.TransactionDB{}, err
	}
	if existing == nil {
		return models.TransactionDB{}, ErrTransactionNotFound
	}
	if normalizeUsername(existing.User) != username {
		return models.TransactionDB{}, ErrNotOwner
	}

	txn := models.TransactionDB{
		ID:       id,
		Title:    title,
		Amount:   amount,
		Category: category,
		Date:     date,
		User:     username,
	}
	if err := svc.writer.Update(ctx, txn); err != nil {
		logger.Log.Errorw("failed to update transaction", "err", err, "id", id)
		return models.TransactionDB{}, err
	}

	svc.afterWrite(ctx, username)
	return txn, nil
}

// Delete removes the transaction with the given id if it belongs to username.
func (svc *TransactionService) Delete(ctx context.Context, username string, id int64) error {
	username = normalizeUsername(username)
	existing, err := svc.reader.Get(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrTransactionNotFound
	}
	if normalizeUsername(existing.User) != username {
		return ErrNotOwner
	}

	if err := svc.writer.Delete(ctx, id); err != nil {
		logger.Log.Errorw("failed to delete transaction", "err", err, "id", id)
		return err
	}

	svc.afterWrite(ctx, username)
	return nil
}

// Get returns the transaction with the given id if it belongs to username.
func (svc *TransactionService) Get(ctx context.Context, username string, id int64) (models.TransactionDB, error) {
	txn, err := svc.reader.Get(ctx, id)
	if err != nil {
		return models.TransactionDB{}, err
	}
	if txn == nil {
		return models.TransactionDB{}, ErrTransactionNotFound
	}
	if normalizeUsername(txn.User) != normalizeUsername(username) {
		return models.TransactionDB{}, ErrNotOwner
	}
	return *txn, nil
}

// List returns every transaction owned by username.
func (svc *TransactionService) List(ctx context.Context, username string) ([]models.TransactionDB, error) {
	return svc.reader.ListByUser(ctx, normalizeUsername(username))
}

// afterWrite drops the user's cached list and re-checks the budget
// position. Alert failures are logged, never surfaced: the write itself
// already succeeded.
func (svc *TransactionService) afterWrite(ctx context.Context, username string) {
	if svc.cache != nil {
		svc.cache.Invalidate(username)
	}
	if svc.alerts != nil {
		if err := svc.alerts.CheckAndPublish(ctx, username); err != nil {
			logger.Log.Warnw("budget alert check failed", "err", err, "username", username)
		}
	}
}
