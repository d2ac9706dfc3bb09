package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// TransactionLister defines the interface that the service must implement.
type TransactionLister interface {
	List(ctx context.Context, username string) ([]models.TransactionDB, error)
	Get(ctx context.Context, username string, id int64) (models.TransactionDB, error)
}

// NewListTransactionsHandler returns an HTTP handler listing the
// authenticated user's transactions.
// @Summary List transactions
// @Description Returns every transaction owned by the authenticated user
// @Tags transactions
// @Produce json
// @Success 200 {array} models.TransactionDB "Transactions"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /transactions [get]
// @Security BearerAuth
func NewListTransactionsHandler(svc TransactionLister, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		txns, err := svc.List(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}
		if txns == nil {
			txns = []models.TransactionDB{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txns)
	}
}

// NewGetTransactionHandler returns an HTTP handler fetching one
// transaction by id.
// @Summary Get a transaction
// @Description Returns one transaction owned by the authenticated user
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 200 {object} models.TransactionDB "Transaction"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [get]
// @Security BearerAuth
func NewGetTransactionHandler(svc TransactionLister, tokener Tokener) http.HandlerFunc {
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

		txn, err := svc.Get(r.Context(), username, id)
		if err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(txn)
	}
}
