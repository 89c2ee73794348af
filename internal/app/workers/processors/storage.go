package processors

import (
	"context"
	"fmt"

	"francoggm/paygw-wallet/internal/models"
)

type EventSaver interface {
	SaveEvent(ctx context.Context, event *models.PaymentEvent) error
}

// StorageProcessor persists payment events for the payments summary.
type StorageProcessor struct {
	store EventSaver
}

func NewStorageProcessor(store EventSaver) *StorageProcessor {
	return &StorageProcessor{
		store: store,
	}
}

func (p *StorageProcessor) ProcessEvent(ctx context.Context, event any) error {
	paymentEvent, ok := event.(*models.PaymentEvent)
	if !ok {
		return fmt.Errorf("unexpected event type %T", event)
	}
	return p.store.SaveEvent(ctx, paymentEvent)
}
