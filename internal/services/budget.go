package services

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

var (
	ErrAmountNegative = errors.New("budget amount cannot be negative")
)

// Warning messages shown to the user. A budget of zero means "no budget
// set"; it never produces a division.
const (
	msgNoBudget = "No budget set"
	msgWithin   = "You're within budget."
	msgWarning  = "You're close to exceeding your budget!"
	msgExceeded = "You have exceeded your budget!"
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	Get(ctx context.Context, username string) (*models.BudgetDB, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	Save(ctx context.Context, budget models.BudgetDB) error
}

// BudgetService stores monthly budgets and computes spending summaries.
type BudgetService struct {
	reader BudgetReader
	writer BudgetWriter
	txns   TransactionReader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(reader BudgetReader, writer BudgetWriter, txns TransactionReader) *BudgetService {
	return &BudgetService{
		reader: reader,
		writer: writer,
		txns:   txns,
	}
}

// Set saves the monthly budget for username. Setting zero clears it.
func (svc *BudgetService) Set(ctx context.Context, username string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrAmountNegative
	}
	return svc.writer.Save(ctx, models.BudgetDB{
		Username: normalizeUsername(username),
		Amount:   amount,
	})
}

// Get returns the stored budget for username, zero when none is set.
func (svc *BudgetService) Get(ctx context.Context, username string) (models.BudgetDB, error) {
	username = normalizeUsername(username)
	budget, err := svc.reader.Get(ctx, username)
	if err != nil {
		return models.BudgetDB{}, err
	}
	if budget == nil {
		return models.BudgetDB{Username: username, Amount: decimal.Zero}, nil
	}
	return *budget, nil
}

// Summary computes the user's spending position against their budget.
// The budget read and the transaction sum are two separate reads; a
// concurrent insert between them can yield a stale percentage, which the
// app accepts.
func (svc *BudgetService) Summary(ctx context.Context, username string) (models.BudgetSummary, error) {
	username = normalizeUsername(username)

	budget, err := svc.Get(ctx, username)
	if err != nil {
		return models.BudgetSummary{}, err
	}

	txns, err := svc.txns.ListByUser(ctx, username)
	if err != nil {
		return models.BudgetSummary{}, err
	}

	totalSpent := decimal.Zero
	for _, txn := range txns {
		totalSpent = totalSpent.Add(txn.Amount)
	}

	summary := models.BudgetSummary{
		Budget:     budget.Amount,
		TotalSpent: totalSpent,
	}

	if budget.Amount.IsZero() {
		summary.Status = models.BudgetStatusNone
		summary.Message = msgNoBudget
		return summary, nil
	}

	// The unclamped percentage drives the thresholds, the clamped value
	// drives the progress bar.
	pct, _ := totalSpent.Div(budget.Amount).Mul(decimal.NewFromInt(100)).Float64()
	summary.PercentUsed = pct
	summary.Progress = clampProgress(int(pct))

	switch {
	case pct > 100:
		summary.Status = models.BudgetStatusExceeded
		summary.Message = msgExceeded
	case pct > 80:
		summary.Status = models.BudgetStatusWarning
		summary.Message = msgWarning
	default:
		summary.Status = models.BudgetStatusOK
		summary.Message = msgWithin
	}

	logger.Log.Debugw("budget summary",
		"username", username,
		"budget", budget.Amount,
		"total_spent", totalSpent,
		"percent_used", pct,
		"status", summary.Status,
	)
	return summary, nil
}

func clampProgress(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
