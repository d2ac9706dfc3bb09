package models

// Preference defaults.
const (
	ReminderUnset   = -1  // Hour/minute value meaning no reminder configured
	DefaultCurrency = "$" // Currency symbol used until the user picks another
)

// PreferenceDB represents per-user settings in the database.
type PreferenceDB struct {
	Username       string `json:"username" db:"username"`               // Primary key
	ReminderHour   int    `json:"reminder_hour" db:"reminder_hour"`     // 0-23, or ReminderUnset
	ReminderMinute int    `json:"reminder_minute" db:"reminder_minute"` // 0-59, or ReminderUnset
	Currency       string `json:"currency" db:"currency"`               // Currency symbol for display
}

// ReminderSet reports whether the preference carries a configured reminder time.
func (p PreferenceDB) ReminderSet() bool {
	return p.ReminderHour != ReminderUnset && p.ReminderMinute != ReminderUnset
}
