package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/models"
)

// CategoryTotal is one slice of the category spending chart.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

// ReportService aggregates spending for the chart screen.
type ReportService struct {
	txns TransactionReader
}

// NewReportService creates a new ReportService.
func NewReportService(txns TransactionReader) *ReportService {
	return &ReportService{txns: txns}
}

// CategoryTotals sums the user's transactions per category, in the fixed
// category display order. Categories with no spending are omitted.
func (svc *ReportService) CategoryTotals(ctx context.Context, username string) ([]CategoryTotal, error) {
	txns, err := svc.txns.ListByUser(ctx, normalizeUsername(username))
	if err != nil {
		return nil, err
	}

	sums := make(map[string]decimal.Decimal, len(models.Categories))
	for _, txn := range txns {
		sums[txn.Category] = sums[txn.Category].Add(txn.Amount)
	}

	totals := make([]CategoryTotal, 0, len(sums))
	for _, category := range models.Categories {
		total, ok := sums[category]
		if !ok || total.IsZero() {
			continue
		}
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	return totals, nil
}
