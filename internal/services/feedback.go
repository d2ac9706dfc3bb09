package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

var (
	ErrCommentRequired = errors.New("comment is required")
)

// FeedbackReader defines read operations for feedback.
type FeedbackReader interface {
	GetAll(ctx context.Context) ([]models.FeedbackDB, error)
}

// FeedbackWriter defines write operations for feedback.
type FeedbackWriter interface {
	Save(ctx context.Context, entry models.FeedbackDB) error
}

// FeedbackService records user feedback. The trail is append-only.
type FeedbackService struct {
	reader FeedbackReader
	writer FeedbackWriter
}

// NewFeedbackService creates a new FeedbackService.
func NewFeedbackService(reader FeedbackReader, writer FeedbackWriter) *FeedbackService {
	return &FeedbackService{reader: reader, writer: writer}
}

// Submit stores a feedback comment under a generated id.
func (svc *FeedbackService) Submit(ctx context.Context, username, comment string) (models.FeedbackDB, error) {
	comment = strings.TrimSpace(comment)
	if comment == "" {
		return models.FeedbackDB{}, ErrCommentRequired
	}

	entry := models.FeedbackDB{
		ID:       uuid.NewString(),
		Username: normalizeUsername(username),
		Comment:  comment,
	}
	if err := svc.writer.Save(ctx, entry); err != nil {
		logger.Log.Errorw("failed to save feedback", "err", err)
		return models.FeedbackDB{}, err
	}
	return entry, nil
}

// List returns every feedback entry ever submitted.
func (svc *FeedbackService) List(ctx context.Context) ([]models.FeedbackDB, error) {
	return svc.reader.GetAll(ctx)
}
