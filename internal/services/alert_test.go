package services_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrackd/internal/models"
	"github.com/fintrack/fintrackd/internal/services"
)

type fakeKafkaWriter struct {
	messages []kafka.Message
	err      error
}

func (w *fakeKafkaWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeKafkaWriter) Close() error { return nil }

func newAlertEnv(t *testing.T) (*env, *services.BudgetService, *fakeKafkaWriter, *services.AlertService) {
	t.Helper()

	e := newEnv(t)
	budgets := services.NewBudgetService(e.budgetRead, e.budgetWr, e.txnRead)
	writer := &fakeKafkaWriter{}
	return e, budgets, writer, services.NewAlertService(budgets, writer)
}

func TestAlertService_PublishesOnWarning(t *testing.T) {
	e, budgets, writer, alerts := newAlertEnv(t)
	ctx := context.Background()

	require.NoError(t, budgets.Set(ctx, "alice", dec(t, "100")))
	seedTransaction(t, e, "alice", "90.00")

	require.NoError(t, alerts.CheckAndPublish(ctx, " Alice"))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "alice", string(msg.Key))

	var alert services.BudgetAlert
	require.NoError(t, json.Unmarshal(msg.Value, &alert))
	assert.Equal(t, "alice", alert.Username)
	assert.Equal(t, models.BudgetStatusWarning, alert.Status)
	assert.InDelta(t, 90.0, alert.PercentUsed, 0.001)
	assert.NotEmpty(t, alert.Message)
	assert.NotZero(t, alert.Timestamp)
}

func TestAlertService_PublishesOnExceeded(t *testing.T) {
	e, budgets, writer, alerts := newAlertEnv(t)
	ctx := context.Background()

	require.NoError(t, budgets.Set(ctx, "alice", dec(t, "100")))
	seedTransaction(t, e, "alice", "110.00")

	require.NoError(t, alerts.CheckAndPublish(ctx, "alice"))
	require.Len(t, writer.messages, 1)

	var alert services.BudgetAlert
	require.NoError(t, json.Unmarshal(writer.messages[0].Value, &alert))
	assert.Equal(t, models.BudgetStatusExceeded, alert.Status)
	assert.InDelta(t, 110.0, alert.PercentUsed, 0.001)
}

func TestAlertService_SilentBelowThreshold(t *testing.T) {
	e, budgets, writer, alerts := newAlertEnv(t)
	ctx := context.Background()

	require.NoError(t, budgets.Set(ctx, "alice", dec(t, "100")))
	seedTransaction(t, e, "alice", "80.00")

	require.NoError(t, alerts.CheckAndPublish(ctx, "alice"))
	assert.Empty(t, writer.messages, "80% usage is still within budget")
}

func TestAlertService_SilentWithoutBudget(t *testing.T) {
	e, _, writer, alerts := newAlertEnv(t)
	ctx := context.Background()

	seedTransaction(t, e, "alice", "500.00")

	require.NoError(t, alerts.CheckAndPublish(ctx, "alice"))
	assert.Empty(t, writer.messages)
}

func TestAlertService_NilWriterSkips(t *testing.T) {
	e := newEnv(t)
	budgets := services.NewBudgetService(e.budgetRead, e.budgetWr, e.txnRead)
	alerts := services.NewAlertService(budgets, nil)
	ctx := context.Background()

	require.NoError(t, budgets.Set(ctx, "alice", dec(t, "100")))
	seedTransaction(t, e, "alice", "150.00")

	assert.NoError(t, alerts.CheckAndPublish(ctx, "alice"))
}
