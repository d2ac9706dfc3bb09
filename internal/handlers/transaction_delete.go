package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// TransactionDeleter defines the interface that the service must implement.
type TransactionDeleter interface {
	Delete(ctx context.Context, username string, id int64) error
}

// NewDeleteTransactionHandler returns an HTTP handler that removes a
// transaction by its id.
// @Summary Delete a transaction
// @Description Removes a transaction owned by the authenticated user
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction id"
// @Success 204 "Deleted"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Failure 404 {object} handlers.ErrorResponse "Transaction not found"
// @Router /transactions/{id} [delete]
// @Security BearerAuth
func NewDeleteTransactionHandler(svc TransactionDeleter, tokener Tokener) http.HandlerFunc {
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

		if err := svc.Delete(r.Context(), username, id); err != nil {
			writeTransactionError(w, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
