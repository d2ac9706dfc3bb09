package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/repositories"
	"github.com/fintrack/fintrackd/internal/services"
)

func seedCategorized(t *testing.T, e *env, user, amount, category string) {
	t.Helper()
	_, err := e.txnWrite.Save(context.Background(), models.TransactionDB{
		Title:    "seed",
		Amount:   dec(t, amount),
		Category: category,
		Date:     "2026-08-01",
		User:     user,
	})
	require.NoError(t, err)
}

func TestReportService_CategoryTotals(t *testing.T) {
	e := newEnv(t)
	svc := services.NewReportService(e.txnRead)
	ctx := context.Background()

	seedCategorized(t, e, "alice", "10.00", models.CategoryFood)
	seedCategorized(t, e, "alice", "5.50", models.CategoryFood)
	seedCategorized(t, e, "alice", "20.00", models.CategoryBills)
	seedCategorized(t, e, "bob", "99.00", models.CategoryShopping)

	totals, err := svc.CategoryTotals(ctx, "Alice")
	require.NoError(t, err)
	require.Len(t, totals, 2)

	// Fixed category display order: Food before Bills.
	assert.Equal(t, models.CategoryFood, totals[0].Category)
	assert.True(t, totals[0].Total.Equal(dec(t, "15.50")))
	assert.Equal(t, models.CategoryBills, totals[1].Category)
	assert.True(t, totals[1].Total.Equal(dec(t, "20.00")))
}

func TestReportService_CategoryTotals_Empty(t *testing.T) {
	e := newEnv(t)
	svc := services.NewReportService(e.txnRead)

	totals, err := svc.CategoryTotals(context.Background(), "alice")
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestReportService_WorksThroughListCache(t *testing.T) {
	e := newEnv(t)
	cache, err := repositories.NewListCache()
	require.NoError(t, err)
	// The report service sees the same data through the caching reader.
	svc := services.NewReportService(repositories.NewCachedTransactionReadRepository(e.txnRead, cache))

	seedCategorized(t, e, "alice", "12.00", models.CategoryTransport)

	totals, err := svc.CategoryTotals(context.Background(), "alice")
	require.NoError(t, err)
	require.Len(t, totals, 1)
	assert.Equal(t, models.CategoryTransport, totals[0].Category)
}
