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

// TransactionAdder defines the interface that the service must implement.
type TransactionAdder interface {
	Add(ctx context.Context, username, title string, amount decimal.Decimal, category, date string) (models.TransactionDB, error)
}

// TransactionRequest represents the JSON body for creating or updating a
// transaction.
// swagger:model TransactionRequest
type TransactionRequest struct {
	// Short description
	// required: true
	Title string `json:"title"`

	// Positive amount
	// required: true
	Amount decimal.Decimal `json:"amount"`

	// One of Food, Transport, Bills, Shopping, Other
	// required: true
	Category string `json:"category"`

	// Calendar date, YYYY-MM-DD
	// required: true
	Date string `json:"date"`
}

// writeTransactionError maps service errors onto HTTP statuses shared by
// the transaction handlers.
func writeTransactionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrTitleRequired),
		errors.Is(err, services.ErrAmountNotPositive),
		errors.Is(err, services.ErrUnknownCategory),
		errors.Is(err, services.ErrInvalidDate):
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrTransactionNotFound):
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Transaction not found"})
	case errors.Is(err, services.ErrNotOwner):
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Transaction belongs to another user"})
	default:
		logger.Log.Errorw("internal server error", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
	}
}

// NewCreateTransactionHandler returns an HTTP handler that records a new
// transaction for the authenticated user.
// @Summary Add a transaction
// @Description Validates and stores an income/expense record
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionRequest body handlers.TransactionRequest true "Transaction"
// @Success 201 {object} models.TransactionDB "Stored transaction"
// @Failure 400 {object} handlers.ErrorResponse "Validation failure"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /transactions [post]
// @Security BearerAuth
func NewCreateTransactionHandler(svc TransactionAdder, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		txn, err := svc.Add(r.Context(), username, req.Title, req.Amount, req.Category, req.Date)
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(txn)
	}
}
