package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/services"
)

// FeedbackManager defines the interface that the feedback service must
// implement.
type FeedbackManager interface {
	Submit(ctx context.Context, username, comment string) (models.FeedbackDB, error)
	List(ctx context.Context) ([]models.FeedbackDB, error)
}

// FeedbackRequest represents the JSON body for submitting feedback
// swagger:model FeedbackRequest
type FeedbackRequest struct {
	// Free-text comment
	// required: true
	Comment string `json:"comment"`
}

// NewCreateFeedbackHandler returns an HTTP handler that appends a
// feedback entry.
// @Summary Submit feedback
// @Description Appends a comment to the feedback trail
// @Tags feedback
// @Accept json
// @Produce json
// @Param feedbackRequest body handlers.FeedbackRequest true "Feedback"
// @Success 201 {object} models.FeedbackDB "Stored feedback"
// @Failure 400 {object} handlers.ErrorResponse "Empty comment"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /feedback [post]
// @Security BearerAuth
func NewCreateFeedbackHandler(svc FeedbackManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req FeedbackRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		entry, err := svc.Submit(r.Context(), username, req.Comment)
		if err != nil {
			if errors.Is(err, services.ErrCommentRequired) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(entry)
	}
}

// NewListFeedbackHandler returns an HTTP handler listing every feedback
// entry.
// @Summary List feedback
// @Description Returns the full append-only feedback trail
// @Tags feedback
// @Produce json
// @Success 200 {array} models.FeedbackDB "Feedback entries"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /feedback [get]
// @Security BearerAuth
func NewListFeedbackHandler(svc FeedbackManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := usernameFromRequest(r, tokener); err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		entries, err := svc.List(r.Context())
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}
		if entries == nil {
			entries = []models.FeedbackDB{}
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(entries)
	}
}
