package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/services"
)

type fakeScheduler struct {
	scheduled []int
	cancelled []string
}

func (f *fakeScheduler) Schedule(username string, hour, minute int) {
	f.scheduled = append(f.scheduled, hour*60+minute)
}

func (f *fakeScheduler) Cancel(username string) {
	f.cancelled = append(f.cancelled, username)
}

func TestPreferenceService_Get_Defaults(t *testing.T) {
	e := newEnv(t)
	svc := services.NewPreferenceService(e.prefRead, e.prefWrite, nil)

	pref, err := svc.Get(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", pref.Username)
	assert.Equal(t, models.ReminderUnset, pref.ReminderHour)
	assert.Equal(t, models.ReminderUnset, pref.ReminderMinute)
	assert.Equal(t, models.DefaultCurrency, pref.Currency)
}

func TestPreferenceService_SetReminder(t *testing.T) {
	e := newEnv(t)
	sched := &fakeScheduler{}
	svc := services.NewPreferenceService(e.prefRead, e.prefWrite, sched)
	ctx := context.Background()

	require.NoError(t, svc.SetReminder(ctx, "alice", 9, 0))
	assert.Equal(t, []int{540}, sched.scheduled)
	assert.Empty(t, sched.cancelled)

	// Moving the reminder re-schedules; the scheduler replaces the
	// user's timer itself, no separate cancel.
	require.NoError(t, svc.SetReminder(ctx, "alice", 18, 30))
	assert.Empty(t, sched.cancelled)
	assert.Equal(t, []int{540, 1110}, sched.scheduled)

	pref, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 18, pref.ReminderHour)
	assert.Equal(t, 30, pref.ReminderMinute)
}

func TestPreferenceService_SetReminder_Clear(t *testing.T) {
	e := newEnv(t)
	sched := &fakeScheduler{}
	svc := services.NewPreferenceService(e.prefRead, e.prefWrite, sched)
	ctx := context.Background()

	require.NoError(t, svc.SetReminder(ctx, "alice", 9, 0))
	require.NoError(t, svc.SetReminder(ctx, "alice", models.ReminderUnset, models.ReminderUnset))

	assert.Equal(t, []string{"alice"}, sched.cancelled)
	assert.Equal(t, []int{540}, sched.scheduled, "clearing must not schedule")

	pref, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, pref.ReminderSet())
}

func TestPreferenceService_SetReminder_Invalid(t *testing.T) {
	e := newEnv(t)
	svc := services.NewPreferenceService(e.prefRead, e.prefWrite, nil)
	ctx := context.Background()

	for _, tc := range [][2]int{{24, 0}, {-2, 0}, {9, 60}, {9, -1}, {-1, 30}} {
		assert.ErrorIs(t, svc.SetReminder(ctx, "alice", tc[0], tc[1]), services.ErrInvalidReminderTime)
	}
}

func TestPreferenceService_SetCurrency(t *testing.T) {
	e := newEnv(t)
	svc := services.NewPreferenceService(e.prefRead, e.prefWrite, nil)
	ctx := context.Background()

	assert.ErrorIs(t, svc.SetCurrency(ctx, "alice", ""), services.ErrCurrencyRequired)

	require.NoError(t, svc.SetReminder(ctx, "alice", 9, 0))
	require.NoError(t, svc.SetCurrency(ctx, "alice", "€"))

	// Changing the currency leaves the reminder time untouched.
	pref, err := svc.Get(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "€", pref.Currency)
	assert.Equal(t, 9, pref.ReminderHour)
}
