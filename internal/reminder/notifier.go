package reminder

import "github.com/fintrack/fintrackd/internal/logger"

// LogNotifier writes reminders to the application log. Stands in for a
// push-notification delivery channel.
type LogNotifier struct{}

func (LogNotifier) Notify(username, message string) {
	logger.Log.Infow("reminder fired", "username", username, "message", message)
}
