package models

import "github.com/shopspring/decimal"

// Transaction categories selectable in the app.
const (
	CategoryFood      = "Food"
	CategoryTransport = "Transport"
	CategoryBills     = "Bills"
	CategoryShopping  = "Shopping"
	CategoryOther     = "Other"
)

// Categories lists every valid transaction category in display order.
var Categories = []string{
	CategoryFood,
	CategoryTransport,
	CategoryBills,
	CategoryShopping,
	CategoryOther,
}

// ValidCategory reports whether c is one of the fixed transaction categories.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// TransactionDB represents a transaction row in the database.
// The JSON field set doubles as the backup-file record format.
type TransactionDB struct {
	ID       int64           `json:"id" db:"id"`             // Primary key, auto-assigned on insert
	Title    string          `json:"title" db:"title"`       // Short description entered by the user
	Amount   decimal.Decimal `json:"amount" db:"amount"`     // Monetary value, always positive
	Category string          `json:"category" db:"category"` // One of Categories
	Date     string          `json:"date" db:"date"`         // Calendar date, YYYY-MM-DD
	User     string          `json:"user" db:"user"`         // Owning username
}
