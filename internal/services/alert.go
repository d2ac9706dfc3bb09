package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fintrack/fintrackd/internal/logger"
	"github.com/fintrack/fintrackd/internal/models"
)

// BudgetAlert is the message published on the budget-alerts channel when
// a user's spending crosses a warning threshold.
type BudgetAlert struct {
	Username    string  `json:"username"`
	Status      string  `json:"status"` // warning or exceeded
	PercentUsed float64 `json:"percent_used"`
	Message     string  `json:"message"`
	Timestamp   int64   `json:"timestamp"` // Unix seconds
}

// BudgetSummarizer computes a user's spending position.
type BudgetSummarizer interface {
	Summary(ctx context.Context, username string) (models.BudgetSummary, error)
}

// KafkaWriter defines a Kafka writer abstraction.
type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error // Writes messages to Kafka
	Close() error                                                   // Closes the Kafka writer
}

// AlertService publishes budget alerts after transaction writes.
type AlertService struct {
	budgets     BudgetSummarizer
	kafkaWriter KafkaWriter
}

// NewAlertService creates a new AlertService.
func NewAlertService(budgets BudgetSummarizer, kafkaWriter KafkaWriter) *AlertService {
	return &AlertService{
		budgets:     budgets,
		kafkaWriter: kafkaWriter,
	}
}

// CheckAndPublish recomputes the user's budget position and publishes at
// most one alert: nothing is sent while spending stays at or below 80%
// of the budget, or when no budget is set.
func (s *AlertService) CheckAndPublish(ctx context.Context, username string) error {
	username = normalizeUsername(username)

	summary, err := s.budgets.Summary(ctx, username)
	if err != nil {
		return err
	}
	if summary.Status != models.BudgetStatusWarning && summary.Status != models.BudgetStatusExceeded {
		return nil
	}

	alert := BudgetAlert{
		Username:    username,
		Status:      summary.Status,
		PercentUsed: summary.PercentUsed,
		Message:     summary.Message,
		Timestamp:   time.Now().Unix(),
	}
	return s.publish(ctx, alert)
}

// publish sends the alert to Kafka.
func (s *AlertService) publish(ctx context.Context, alert BudgetAlert) error {
	if s.kafkaWriter == nil {
		logger.Log.Warnw("Kafka writer not configured, skipping budget alert", "username", alert.Username)
		return nil
	}

	value, err := json.Marshal(alert)
	if err != nil {
		logger.Log.Errorw("failed to marshal budget alert", "err", err)
		return err
	}

	msg := kafka.Message{
		Key:   []byte(alert.Username),
		Value: value,
	}
	if err := s.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		logger.Log.Errorw("failed to publish budget alert", "err", err, "username", alert.Username)
		return err
	}

	logger.Log.Infow("budget alert published", "username", alert.Username, "status", alert.Status)
	return nil
}
