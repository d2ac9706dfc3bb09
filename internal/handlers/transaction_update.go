package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/fintrack/fintrackd/internal/models"
)

// TransactionUpdater defines the interface that the service must implement.
type TransactionUpdater interface {
	Update(ctx context.Context, username string, id int64, title string, amount decimal.Decimal, category, date string) (models.TransactionDB, error)
}

// NewUpdateTransactionHandler returns an HTTP handler that replaces every
// field of an existing transaction.
// @Summary Update a transaction
// @Description Replaces the fields of a transaction owned by the authenticated user
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction id"
// @Param transactionRequest body handlers.TransactionRequest true "Transaction"
// @Success 200 {object} models.TransactionDB "Updated transaction"
// @Failure 400 {object} handlers.ErrorResponse "Validation failure"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [put]
// @Security BearerAuth
func NewUpdateTransactionHandler(svc TransactionUpdater, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid transaction id"})
			return
		}

		var req TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		txn, err := svc.Update(r.Context(), username, id, req.Title, req.Amount, req.Category, req.Date)
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
