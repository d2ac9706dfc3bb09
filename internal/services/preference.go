package services

import (
	"context"
	"errors"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

var (
	ErrInvalidReminderTime = errors.New("reminder time must be a valid hour and minute")
	ErrCurrencyRequired    = errors.New("currency symbol is required")
)

// PreferenceReader defines read operations for preferences.
type PreferenceReader interface {
	Get(ctx context.Context, username string) (*models.PreferenceDB, error)
}

// PreferenceWriter defines write operations for preferences.
type PreferenceWriter interface {
	Save(ctx context.Context, pref models.PreferenceDB) error
}

// ReminderScheduler registers and cancels the per-user daily reminder
// timer. Schedule is idempotent: it replaces the user's existing timer,
// never another user's. May be nil when reminders are disabled.
type ReminderScheduler interface {
	Schedule(username string, hour, minute int)
	Cancel(username string)
}

// PreferenceService stores per-user settings and keeps the reminder
// scheduler in sync with the stored reminder time.
type PreferenceService struct {
	reader    PreferenceReader
	writer    PreferenceWriter
	scheduler ReminderScheduler
}

// NewPreferenceService creates a new PreferenceService.
func NewPreferenceService(reader PreferenceReader, writer PreferenceWriter, scheduler ReminderScheduler) *PreferenceService {
	return &PreferenceService{
		reader:    reader,
		writer:    writer,
		scheduler: scheduler,
	}
}

// Get returns the user's preferences, falling back to defaults when none
// have been saved yet.
func (svc *PreferenceService) Get(ctx context.Context, username string) (models.PreferenceDB, error) {
	username = normalizeUsername(username)
	pref, err := svc.reader.Get(ctx, username)
	if err != nil {
		return models.PreferenceDB{}, err
	}
	if pref == nil {
		return models.PreferenceDB{
			Username:       username,
			ReminderHour:   models.ReminderUnset,
			ReminderMinute: models.ReminderUnset,
			Currency:       models.DefaultCurrency,
		}, nil
	}
	return *pref, nil
}

// SetReminder stores the daily reminder time and re-registers the timer.
// Passing -1 for both hour and minute clears the reminder.
func (svc *PreferenceService) SetReminder(ctx context.Context, username string, hour, minute int) error {
	unset := hour == models.ReminderUnset && minute == models.ReminderUnset
	if !unset && (hour < 0 || hour > 23 || minute < 0 || minute > 59) {
		return ErrInvalidReminderTime
	}

	username = normalizeUsername(username)
	pref, err := svc.Get(ctx, username)
	if err != nil {
		return err
	}

	pref.ReminderHour = hour
	pref.ReminderMinute = minute
	if err := svc.writer.Save(ctx, pref); err != nil {
		logger.Log.Errorw("failed to save preference", "err", err, "username", username)
		return err
	}

	if svc.scheduler != nil {
		if unset {
			svc.scheduler.Cancel(username)
		} else {
			svc.scheduler.Schedule(username, hour, minute)
		}
	}
	return nil
}

// SetCurrency stores the display currency symbol.
func (svc *PreferenceService) SetCurrency(ctx context.Context, username, currency string) error {
	if currency == "" {
		return ErrCurrencyRequired
	}

	username = normalizeUsername(username)
	pref, err := svc.Get(ctx, username)
	if err != nil {
		return err
	}
	pref.Currency = currency
	return svc.writer.Save(ctx, pref)
}
