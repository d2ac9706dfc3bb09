package models

import "github.com/shopspring/decimal"

// Budget status values reported by the budget summary.
const (
	BudgetStatusNone     = "none"     // No budget set (amount == 0)
	BudgetStatusOK       = "ok"       // Spending within budget
	BudgetStatusWarning  = "warning"  // Spending above 80% of budget
	BudgetStatusExceeded = "exceeded" // Spending above 100% of budget
)

// BudgetDB represents a monthly budget row in the database.
// An amount of zero means "no budget set"; the app does not distinguish
// an explicit zero budget from an absent one.
type BudgetDB struct {
	Username string          `json:"username" db:"username"` // Primary key
	Amount   decimal.Decimal `json:"amount" db:"amount"`     // Monthly budget, 0 = unset
}

// BudgetSummary is the computed spending position for one user.
type BudgetSummary struct {
	Budget      decimal.Decimal `json:"budget"`
	TotalSpent  decimal.Decimal `json:"total_spent"`
	PercentUsed float64         `json:"percent_used"` // Unclamped; drives the warning thresholds
	Progress    int             `json:"progress"`     // Clamped to [0,100] for progress-bar display
	Status      string          `json:"status"`       // One of the BudgetStatus* values
	Message     string          `json:"message"`      // User-facing warning text
}
