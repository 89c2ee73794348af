package workers

import (
	"francoggm/paygw-wallet/internal/models"

	"go.uber.org/zap"
)

// Queue hands payment events to the worker pool without blocking the
// request that produced them.
type Queue struct {
	logger   *zap.Logger
	eventsCh chan any
}

func NewQueue(logger *zap.Logger, eventsCh chan any) *Queue {
	return &Queue{
		logger:   logger,
		eventsCh: eventsCh,
	}
}

func (q *Queue) Publish(event *models.PaymentEvent) {
	select {
	case q.eventsCh <- event:
	default:
		q.logger.Warn("Payment event dropped, queue is full",
			zap.String("event_id", event.ID),
			zap.String("outcome", string(event.Outcome)),
		)
	}
}
