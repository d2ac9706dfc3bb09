// Package reminder runs the daily reminder timers. It replaces the OS
// alarm service of the mobile app: one timer per user, re-armed after
// every firing. The request code hour*60+minute survives only as the
// notification id carried in logs.
package reminder

import (
	"sync"
	"time"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// DefaultMessage is the notification text for a daily reminder.
const DefaultMessage = "Don't forget to record today's expenses!"

// Notifier delivers a reminder to the user. Implementations must be safe
// for concurrent use; firings happen on timer goroutines.
type Notifier interface {
	Notify(username, message string)
}

// RequestCode derives the notification id for a reminder time-of-day.
func RequestCode(hour, minute int) int {
	return hour*60 + minute
}

// NextFireTime returns the next occurrence of hour:minute after now:
// today if that wall-clock time is still ahead, otherwise the same time
// the next calendar day.
func NextFireTime(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

type entry struct {
	code  int
	timer *time.Timer
}

// Scheduler owns the reminder timers for the process lifetime. Each user
// has at most one timer; users sharing a reminder time each keep their
// own.
type Scheduler struct {
	notifier Notifier
	now      func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
	stopped bool
}

// New creates a Scheduler delivering reminders through notifier.
func New(notifier Notifier) *Scheduler {
	return &Scheduler{
		notifier: notifier,
		now:      time.Now,
		entries:  make(map[string]*entry),
	}
}

// Schedule registers the daily reminder for username at hour:minute.
// Idempotent: the user's existing timer is cancelled first, so
// re-registering never stacks firings and never touches other users.
func (s *Scheduler) Schedule(username string, hour, minute int) {
	code := RequestCode(hour, minute)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}

	if existing, ok := s.entries[username]; ok {
		existing.timer.Stop()
	}
	s.arm(username, code, hour, minute)

	logger.Log.Infow("reminder scheduled",
		"username", username,
		"hour", hour,
		"minute", minute,
		"request_code", code,
	)
}

// Cancel removes the reminder registered for username, if any.
func (s *Scheduler) Cancel(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.entries[username]; ok {
		existing.timer.Stop()
		delete(s.entries, username)
		logger.Log.Infow("reminder cancelled", "username", username, "request_code", existing.code)
	}
}

// Restore re-registers the reminders carried by stored preferences,
// skipping entries with no reminder set. Called once at startup.
func (s *Scheduler) Restore(prefs []models.PreferenceDB) {
	for _, pref := range prefs {
		if pref.ReminderSet() {
			s.Schedule(pref.Username, pref.ReminderHour, pref.ReminderMinute)
		}
	}
}

// Stop cancels every timer. The scheduler accepts no further Schedule
// calls afterwards.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for username, e := range s.entries {
		e.timer.Stop()
		delete(s.entries, username)
	}
}

// arm sets the timer for the next firing. Caller holds s.mu.
func (s *Scheduler) arm(username string, code int, hour, minute int) {
	now := s.now()
	d := NextFireTime(now, hour, minute).Sub(now)
	s.entries[username] = &entry{
		code: code,
		timer: time.AfterFunc(d, func() {
			s.fire(username, code, hour, minute)
		}),
	}
}

// fire delivers the reminder and re-arms the timer for the next day.
func (s *Scheduler) fire(username string, code int, hour, minute int) {
	s.notifier.Notify(username, DefaultMessage)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	current, ok := s.entries[username]
	if !ok || current.code != code {
		return // cancelled or rescheduled between firing and re-arm
	}
	s.arm(username, code, hour, minute)
}
