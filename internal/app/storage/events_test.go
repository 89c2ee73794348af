package storage

import (
	"context"
	"testing"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPaymentsSummary(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewEventStore(cache)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	events := []*models.PaymentEvent{
		{ID: "a", Outcome: models.OutcomePaid, Component: "mod_quiz", Amount: decimal.RequireFromString("75.00"), OccurredAt: base},
		{ID: "b", Outcome: models.OutcomePaid, Component: "mod_quiz", Amount: decimal.RequireFromString("10.50"), OccurredAt: base.Add(time.Hour)},
		{ID: "c", Outcome: models.OutcomeInsufficientBalance, Component: "mod_quiz", Amount: decimal.RequireFromString("75.00"), OccurredAt: base.Add(2 * time.Hour)},
		{ID: "d", Outcome: models.OutcomePaid, Component: "enrol_fee", Amount: decimal.RequireFromString("20"), OccurredAt: base.Add(-time.Hour)},
	}
	for _, event := range events {
		require.NoError(t, store.SaveEvent(ctx, event))
	}

	summary, err := store.GetPaymentsSummary(ctx, nil, nil)
	require.NoError(t, err)
	require.Contains(t, summary, "mod_quiz")
	assert.Equal(t, 2, summary["mod_quiz"].Paid)
	assert.Equal(t, 1, summary["mod_quiz"].Declined)
	assert.Equal(t, "85.5", summary["mod_quiz"].TotalAmount.String())
	assert.Equal(t, "75", summary["mod_quiz"].TotalDeclined.String())
	assert.Equal(t, 1, summary["enrol_fee"].Paid)

	from := base
	to := base.Add(90 * time.Minute)
	summary, err = store.GetPaymentsSummary(ctx, &from, &to)
	require.NoError(t, err)
	assert.NotContains(t, summary, "enrol_fee")
	assert.Equal(t, 2, summary["mod_quiz"].Paid)
	assert.Equal(t, 0, summary["mod_quiz"].Declined)

	require.NoError(t, store.PurgeEvents(ctx))
	summary, err = store.GetPaymentsSummary(ctx, nil, nil)
	require.NoError(t, err)
	assert.Empty(t, summary)
}
