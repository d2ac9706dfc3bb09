package repositories

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
)

func TestPreferenceRepository_SaveGet(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	writeRepo := NewPreferenceWriteRepository(db)
	readRepo := NewPreferenceReadRepository(db)

	pref, err := readRepo.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, pref)

	require.NoError(t, writeRepo.Save(ctx, models.PreferenceDB{
		Username:       "alice",
		ReminderHour:   9,
		ReminderMinute: 0,
		Currency:       "€",
	}))

	pref, err = readRepo.Get(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 9, pref.ReminderHour)
	assert.Equal(t, 0, pref.ReminderMinute)
	assert.Equal(t, "€", pref.Currency)
	assert.True(t, pref.ReminderSet())
}

func TestPreferenceRepository_UpsertAndGetAll(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	writeRepo := NewPreferenceWriteRepository(db)
	readRepo := NewPreferenceReadRepository(db)

	require.NoError(t, writeRepo.Save(ctx, models.PreferenceDB{
		Username: "bob", ReminderHour: 8, ReminderMinute: 30, Currency: models.DefaultCurrency,
	}))
	require.NoError(t, writeRepo.Save(ctx, models.PreferenceDB{
		Username: "bob", ReminderHour: models.ReminderUnset, ReminderMinute: models.ReminderUnset, Currency: models.DefaultCurrency,
	}))

	prefs, err := readRepo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.False(t, prefs[0].ReminderSet())
}

func TestPreferenceRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	writeRepo := NewPreferenceWriteRepository(db)
	readRepo := NewPreferenceReadRepository(db)

	// Update without a matching row is a no-op.
	require.NoError(t, writeRepo.Update(ctx, models.PreferenceDB{
		Username: "dave", ReminderHour: 9, ReminderMinute: 0, Currency: "€",
	}))
	pref, err := readRepo.Get(ctx, "dave")
	require.NoError(t, err)
	assert.Nil(t, pref)

	require.NoError(t, writeRepo.Save(ctx, models.PreferenceDB{
		Username: "dave", ReminderHour: 8, ReminderMinute: 30, Currency: models.DefaultCurrency,
	}))
	require.NoError(t, writeRepo.Update(ctx, models.PreferenceDB{
		Username: "dave", ReminderHour: 21, ReminderMinute: 45, Currency: "€",
	}))

	pref, err = readRepo.Get(ctx, "dave")
	require.NoError(t, err)
	require.NotNil(t, pref)
	assert.Equal(t, 21, pref.ReminderHour)
	assert.Equal(t, 45, pref.ReminderMinute)
	assert.Equal(t, "€", pref.Currency)
}

func TestPreferenceRepository_DeleteByUser(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	writeRepo := NewPreferenceWriteRepository(db)
	readRepo := NewPreferenceReadRepository(db)

	require.NoError(t, writeRepo.Save(ctx, models.PreferenceDB{
		Username: "carol", ReminderHour: 7, ReminderMinute: 15, Currency: models.DefaultCurrency,
	}))
	require.NoError(t, writeRepo.DeleteByUser(ctx, "carol"))

	pref, err := readRepo.Get(ctx, "carol")
	require.NoError(t, err)
	assert.Nil(t, pref)
}
