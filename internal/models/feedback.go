package models

// FeedbackDB represents one submitted feedback entry. The trail is
// append-only: there is no update or delete path.
type FeedbackDB struct {
	ID       string `json:"id" db:"id"`             // Primary key, generated UUID
	Username string `json:"username" db:"username"` // Submitting user
	Comment  string `json:"comment" db:"comment"`   // Free-text comment
}
