package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/services"
)

func TestTransactionService_AddAndGet(t *testing.T) {
	e := newEnv(t)
	svc := services.NewTransactionService(e.txnRead, e.txnWrite, nil, nil)
	ctx := context.Background()

	txn, err := svc.Add(ctx, " Alice", "Groceries", dec(t, "42.50"), models.CategoryFood, "2026-08-01")
	require.NoError(t, err)
	assert.Positive(t, txn.ID)
	assert.Equal(t, "alice", txn.User)

	// Insert-then-fetch-by-id returns an equal record.
	got, err := svc.Get(ctx, "alice", txn.ID)
	require.NoError(t, err)
	assert.Equal(t, txn.Title, got.Title)
	assert.True(t, got.Amount.Equal(txn.Amount))
	assert.Equal(t, txn.Category, got.Category)
	assert.Equal(t, txn.Date, got.Date)
	assert.Equal(t, txn.User, got.User)
}

func TestTransactionService_Add_Validation(t *testing.T) {
	e := newEnv(t)
	svc := services.NewTransactionService(e.txnRead, e.txnWrite, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name     string
		title    string
		amount   string
		category string
		date     string
		wantErr  error
	}{
		{name: "empty title", title: "", amount: "1.00", category: models.CategoryFood, date: "2026-08-01", wantErr: services.ErrTitleRequired},
		{name: "zero amount", title: "t", amount: "0", category: models.CategoryFood, date: "2026-08-01", wantErr: services.ErrAmountNotPositive},
		{name: "negative amount", title: "t", amount: "-5", category: models.CategoryFood, date: "2026-08-01", wantErr: services.ErrAmountNotPositive},
		{name: "unknown category", title: "t", amount: "1.00", category: "Gadgets", date: "2026-08-01", wantErr: services.ErrUnknownCategory},
		{name: "bad date", title: "t", amount: "1.00", category: models.CategoryFood, date: "01/08/2026", wantErr: services.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, "alice", tt.title, dec(t, tt.amount), tt.category, tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// Nothing was written by any of the rejected inputs.
	txns, err := svc.List(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, txns)
}

func TestTransactionService_Update(t *testing.T) {
	e := newEnv(t)
	svc := services.NewTransactionService(e.txnRead, e.txnWrite, nil, nil)
	ctx := context.Background()

	seeded := seedTransaction(t, e, "alice", "10.00")

	updated, err := svc.Update(ctx, "alice", seeded.ID, "Dinner", dec(t, "25.00"), models.CategoryFood, "2026-08-02")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, updated.ID)

	got, err := svc.Get(ctx, "alice", seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dinner", got.Title)
	assert.True(t, got.Amount.Equal(dec(t, "25.00")))

	_, err = svc.Update(ctx, "alice", 999, "x", dec(t, "1"), models.CategoryFood, "2026-08-02")
	assert.ErrorIs(t, err, services.ErrTransactionNotFound)

	_, err = svc.Update(ctx, "bob", seeded.ID, "x", dec(t, "1"), models.CategoryFood, "2026-08-02")
	assert.ErrorIs(t, err, services.ErrNotOwner)
}

func TestTransactionService_Delete(t *testing.T) {
	e := newEnv(t)
	svc := services.NewTransactionService(e.txnRead, e.txnWrite, nil, nil)
	ctx := context.Background()

	seeded := seedTransaction(t, e, "alice", "10.00")

	assert.ErrorIs(t, svc.Delete(ctx, "bob", seeded.ID), services.ErrNotOwner)
	require.NoError(t, svc.Delete(ctx, "alice", seeded.ID))
	assert.ErrorIs(t, svc.Delete(ctx, "alice", seeded.ID), services.ErrTransactionNotFound)
}

func TestTransactionService_List_NormalizesOwner(t *testing.T) {
	e := newEnv(t)
	svc := services.NewTransactionService(e.txnRead, e.txnWrite, nil, nil)
	ctx := context.Background()

	seedTransaction(t, e, "alice", "1.00")
	seedTransaction(t, e, " Alice ", "2.00")
	seedTransaction(t, e, "bob", "3.00")

	txns, err := svc.List(ctx, "ALICE")
	require.NoError(t, err)
	assert.Len(t, txns, 2)
}
