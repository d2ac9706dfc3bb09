package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

var (
	// ErrMalformedBackup marks an import file that could not be parsed.
	// Nothing is stored when it is returned.
	ErrMalformedBackup = errors.New("malformed backup file")
)

// BackupService exports a user's transactions to a JSON file and imports
// them back.
type BackupService struct {
	reader TransactionReader
	writer TransactionWriter
	cache  ListInvalidator
	dir    string
}

// NewBackupService creates a new BackupService writing into dir.
func NewBackupService(reader TransactionReader, writer TransactionWriter, cache ListInvalidator, dir string) *BackupService {
	return &BackupService{
		reader: reader,
		writer: writer,
		cache:  cache,
		dir:    dir,
	}
}

// BackupFilename returns the export filename for username.
func BackupFilename(username string) string {
	return fmt.Sprintf("transactions_%s_backup.json", normalizeUsername(username))
}

// Export writes the user's transactions as a JSON array to the backup
// directory and returns the written path.
func (svc *BackupService) Export(ctx context.Context, username string) (string, error) {
	username = normalizeUsername(username)

	txns, err := svc.reader.ListByUser(ctx, username)
	if err != nil {
		return "", err
	}
	if txns == nil {
		txns = []models.TransactionDB{}
	}

	data, err := json.MarshalIndent(txns, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode backup: %w", err)
	}

	if err := os.MkdirAll(svc.dir, 0o755); err != nil {
		return "", fmt.Errorf("create backup directory: %w", err)
	}
	path := filepath.Join(svc.dir, BackupFilename(username))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write backup: %w", err)
	}

	logger.Log.Infow("transactions exported", "username", username, "path", path, "count", len(txns))
	return path, nil
}

// Import reads a JSON transaction array and stores every record under
// username, regardless of the owner recorded in the file. Ids are
// reassigned so an import appends rather than clobbering existing rows.
// Malformed JSON aborts before any insert; a failing insert aborts with
// the records stored so far kept (no all-or-nothing guarantee). Returns
// the number of records stored.
func (svc *BackupService) Import(ctx context.Context, username string, r io.Reader) (int, error) {
	username = normalizeUsername(username)

	var txns []models.TransactionDB
	if err := json.NewDecoder(r).Decode(&txns); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedBackup, err)
	}

	imported := 0
	for _, txn := range txns {
		txn.ID = 0
		txn.User = username
		if _, err := svc.writer.Save(ctx, txn); err != nil {
			logger.Log.Errorw("import aborted", "err", err, "username", username, "imported", imported)
			if svc.cache != nil {
				svc.cache.Invalidate(username)
			}
			return imported, err
		}
		imported++
	}

	if svc.cache != nil {
		svc.cache.Invalidate(username)
	}
	logger.Log.Infow("transactions imported", "username", username, "count", imported)
	return imported, nil
}
