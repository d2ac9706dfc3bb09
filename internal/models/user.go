package models

// UserDB represents a user account row in the database.
type UserDB struct {
	Username     string `json:"username" db:"username"` // Primary key, stored normalized (trimmed, lower-cased)
	Email        string `json:"email" db:"email"`       // User email
	PasswordHash string `json:"-" db:"password_hash"`   // Bcrypt hash, never serialized
}
