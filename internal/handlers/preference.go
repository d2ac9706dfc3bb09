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

// PreferenceManager defines the interface that the preference service
// must implement.
type PreferenceManager interface {
	Get(ctx context.Context, username string) (models.PreferenceDB, error)
	SetReminder(ctx context.Context, username string, hour, minute int) error
	SetCurrency(ctx context.Context, username, currency string) error
}

// ReminderRequest represents the JSON body for setting the reminder time
// swagger:model ReminderRequest
type ReminderRequest struct {
	// Hour of day, 0-23; -1 together with minute -1 clears the reminder
	Hour int `json:"hour"`

	// Minute, 0-59
	Minute int `json:"minute"`
}

// CurrencyRequest represents the JSON body for setting the currency symbol
// swagger:model CurrencyRequest
type CurrencyRequest struct {
	// Display symbol, e.g. "$"
	// required: true
	Currency string `json:"currency"`
}

// NewGetPreferencesHandler returns an HTTP handler for reading the
// authenticated user's settings.
// @Summary Get preferences
// @Description Returns reminder time and currency symbol, with defaults when unset
// @Tags preferences
// @Produce json
// @Success 200 {object} models.PreferenceDB "Preferences"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /preferences [get]
// @Security BearerAuth
func NewGetPreferencesHandler(svc PreferenceManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		pref, err := svc.Get(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(pref)
	}
}

// NewSetReminderHandler returns an HTTP handler that stores the daily
// reminder time and re-registers its timer.
// @Summary Set reminder time
// @Description Stores the daily reminder time; -1/-1 clears it
// @Tags preferences
// @Accept json
// @Produce json
// @Param reminderRequest body handlers.ReminderRequest true "Reminder time"
// @Success 200 {object} models.PreferenceDB "Updated preferences"
// @Failure 400 {object} handlers.ErrorResponse "Invalid time"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /preferences/reminder [put]
// @Security BearerAuth
func NewSetReminderHandler(svc PreferenceManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req ReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := svc.SetReminder(r.Context(), username, req.Hour, req.Minute); err != nil {
			if errors.Is(err, services.ErrInvalidReminderTime) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		pref, err := svc.Get(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(pref)
	}
}

// NewSetCurrencyHandler returns an HTTP handler that stores the display
// currency symbol.
// @Summary Set currency symbol
// @Description Stores the symbol used when rendering amounts
// @Tags preferences
// @Accept json
// @Produce json
// @Param currencyRequest body handlers.CurrencyRequest true "Currency symbol"
// @Success 200 {object} models.PreferenceDB "Updated preferences"
// @Failure 400 {object} handlers.ErrorResponse "Missing symbol"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /preferences/currency [put]
// @Security BearerAuth
func NewSetCurrencyHandler(svc PreferenceManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		var req CurrencyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Invalid request body"})
			return
		}

		if err := svc.SetCurrency(r.Context(), username, req.Currency); err != nil {
			if errors.Is(err, services.ErrCurrencyRequired) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: err.Error()})
				return
			}
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		pref, err := svc.Get(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("internal server error", "err", err)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(pref)
	}
}
