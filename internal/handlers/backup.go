package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/services"
)

// BackupManager defines the interface that the backup service must
// implement.
type BackupManager interface {
	Export(ctx context.Context, username string) (string, error)
	Import(ctx context.Context, username string, r io.Reader) (int, error)
}

// ExportResponse reports where the backup file was written
// swagger:model ExportResponse
type ExportResponse struct {
	// Written file path
	Path string `json:"path"`
}

// ImportResponse reports how many records were stored
// swagger:model ImportResponse
type ImportResponse struct {
	// Number of imported transactions
	Imported int `json:"imported"`
}

// NewExportHandler returns an HTTP handler that writes the user's
// transactions to a backup file.
// @Summary Export transactions
// @Description Writes the authenticated user's transactions to transactions_<username>_backup.json
// @Tags backup
// @Produce json
// @Success 200 {object} handlers.ExportResponse "Backup written"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /transactions/export [post]
// @Security BearerAuth
func NewExportHandler(svc BackupManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		path, err := svc.Export(r.Context(), username)
		if err != nil {
			logger.Log.Errorw("export failed", "err", err, "username", username)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ExportResponse{Path: path})
	}
}

// NewImportHandler returns an HTTP handler that restores transactions
// from an uploaded backup file. Every record is stored under the
// authenticated user, regardless of the owner recorded in the file.
// @Summary Import transactions
// @Description Reads a JSON transaction array; ownership is rewritten to the authenticated user
// @Tags backup
// @Accept json
// @Produce json
// @Success 200 {object} handlers.ImportResponse "Records imported"
// @Failure 400 {object} handlers.ErrorResponse "Malformed backup file"
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /transactions/import [post]
// @Security BearerAuth
func NewImportHandler(svc BackupManager, tokener Tokener) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := usernameFromRequest(r, tokener)
		if err != nil {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Unauthorized"})
			return
		}

		imported, err := svc.Import(r.Context(), username, r.Body)
		if err != nil {
			if errors.Is(err, services.ErrMalformedBackup) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(ErrorResponse{Error: "Malformed backup file"})
				return
			}
			logger.Log.Errorw("import failed", "err", err, "username", username, "imported", imported)
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(ErrorResponse{Error: "Internal server error"})
			return
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(ImportResponse{Imported: imported})
	}
}
