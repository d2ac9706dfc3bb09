package services_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/repositories"
	"github.com/fintrack/fintrackd/internal/storage"
)

// env wires real repositories over a throwaway database file. The store
// is cheap enough that the service tests run against the real thing.
type env struct {
	userRead   *repositories.UserReadRepository
	userWrite  *repositories.UserWriteRepository
	txnRead    *repositories.TransactionReadRepository
	txnWrite   *repositories.TransactionWriteRepository
	budgetRead *repositories.BudgetReadRepository
	budgetWr   *repositories.BudgetWriteRepository
	prefRead   *repositories.PreferenceReadRepository
	prefWrite  *repositories.PreferenceWriteRepository
	fbRead     *repositories.FeedbackReadRepository
	fbWrite    *repositories.FeedbackWriteRepository
}

func newEnv(t *testing.T) *env {
	t.Helper()

	db, err := storage.Open(context.Background(), filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return &env{
		userRead:   repositories.NewUserReadRepository(db),
		userWrite:  repositories.NewUserWriteRepository(db),
		txnRead:    repositories.NewTransactionReadRepository(db),
		txnWrite:   repositories.NewTransactionWriteRepository(db),
		budgetRead: repositories.NewBudgetReadRepository(db),
		budgetWr:   repositories.NewBudgetWriteRepository(db),
		prefRead:   repositories.NewPreferenceReadRepository(db),
		prefWrite:  repositories.NewPreferenceWriteRepository(db),
		fbRead:     repositories.NewFeedbackReadRepository(db),
		fbWrite:    repositories.NewFeedbackWriteRepository(db),
	}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedTransaction(t *testing.T, e *env, user, amount string) models.TransactionDB {
	t.Helper()

	txn := models.TransactionDB{
		Title:    "seed",
		Amount:   dec(t, amount),
		Category: models.CategoryOther,
		Date:     "2026-08-01",
		User:     user,
	}
	id, err := e.txnWrite.Save(context.Background(), txn)
	require.NoError(t, err)
	txn.ID = id
	return txn
}
