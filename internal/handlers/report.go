package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/services"
)

// Reporter defines the interface that the report service must implement.
type Reporter interface {
	CategoryTotals(ctx context.Context, username string) ([]services.CategoryTotal, error)
}

// NewCategoryReportHandler returns an HTTP handler producing the data for
// the category spending chart.
// @Summary Category spending report
// @Description Sums the authenticated user's transactions per category
// @Tags reports
// @Produce json
// @Success 200 {array} services.CategoryTotal "Per-category totals"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /reports/categories [get]
// @Security BearerAuth
func NewCategoryReportHandler(svc Reporter, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		totals, err := svc.CategoryTotals(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}
		if totals == nil {
			totals = []services.CategoryTotal{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(totals)
	}
}
