package storage

import (
	"bytes"
	"context"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

var eventsKey = key("events")

type EventStore struct {
	cache *redis.Client
}

func NewEventStore(cache *redis.Client) *EventStore {
	return &EventStore{
		cache: cache,
	}
}

func (s *EventStore) SaveEvent(ctx context.Context, event *models.PaymentEvent) error {
	payload, err := marshal(event)
	if err != nil {
		return err
	}

	return s.cache.HSet(ctx, eventsKey, event.ID, payload).Err()
}

func (s *EventStore) GetPaymentsSummary(ctx context.Context, from, to *time.Time) (models.PaymentsSummary, error) {
	summary := make(models.PaymentsSummary)

	eventsMap, err := s.cache.HGetAll(ctx, eventsKey).Result()
	if err != nil {
		return nil, err
	}

	for _, data := range eventsMap {
		var event models.PaymentEvent

		decoder := sonic.ConfigFastest.NewDecoder(bytes.NewReader([]byte(data)))
		if err := decoder.Decode(&event); err != nil {
			return nil, err
		}

		if !eventWithinTime(event.OccurredAt, from, to) {
			continue
		}

		componentSummary, ok := summary[event.Component]
		if !ok {
			componentSummary = &models.Summary{
				TotalAmount:   decimal.Zero,
				TotalDeclined: decimal.Zero,
			}
			summary[event.Component] = componentSummary
		}

		switch event.Outcome {
		case models.OutcomePaid:
			componentSummary.Paid++
			componentSummary.TotalAmount = componentSummary.TotalAmount.Add(event.Amount)
		case models.OutcomeInsufficientBalance:
			componentSummary.Declined++
			componentSummary.TotalDeclined = componentSummary.TotalDeclined.Add(event.Amount)
		}
	}

	return summary, nil
}

func (s *EventStore) PurgeEvents(ctx context.Context) error {
	return s.cache.Del(ctx, eventsKey).Err()
}

func eventWithinTime(occurredAt time.Time, from, to *time.Time) bool {
	if from != nil && occurredAt.Before(*from) {
		return false
	}

	if to != nil && occurredAt.After(*to) {
		return false
	}

	return true
}
