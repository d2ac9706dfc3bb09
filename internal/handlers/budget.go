package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/services"
)

// BudgetManager defines the interface that the budget service must implement.
type BudgetManager interface {
	Set(ctx context.Context, username string, amount decimal.Decimal) error
	Summary(ctx context.Context, username string) (models.BudgetSummary, error)
}

// BudgetRequest represents the JSON body for setting a budget
// swagger:model BudgetRequest
type BudgetRequest struct {
	// Monthly budget, zero clears it
	// required: true
	Amount decimal.Decimal `json:"amount"`
}

// NewSetBudgetHandler returns an HTTP handler that saves the monthly budget.
// @Summary Set monthly budget
// @Description Saves the authenticated user's monthly budget. Zero clears it.
// @Tags budget
// @Accept json
// @Produce json
// @Param budgetRequest body handlers.BudgetRequest true "Budget"
// @Success 200 {object} models.BudgetSummary "Resulting spending position"
// @Failure 400 {object} handlers.ErrorResponse "Negative amount"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /budget [put]
// @Security BearerAuth
func NewSetBudgetHandler(svc BudgetManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req BudgetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := svc.Set(r.Context(), username, req.Amount); err != nil {
			if errors.Is(err, services.ErrAmountNegative) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		summary, err := svc.Summary(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	}
}

// NewBudgetSummaryHandler returns an HTTP handler reporting the user's
// spending position against their budget.
// @Summary Budget summary
// @Description Returns total spent, percentage used and the warning status
// @Tags budget
// @Produce json
// @Success 200 {object} models.BudgetSummary "Spending position"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /budget [get]
// @Security BearerAuth
func NewBudgetSummaryHandler(svc BudgetManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		summary, err := svc.Summary(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(summary)
	}
}
