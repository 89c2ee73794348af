package workers

import (
	"context"

	"francoggm/paygw-wallet/internal/app/workers/processors"

	"go.uber.org/zap"
)

type worker struct {
	id              int
	reenqueue       bool
	logger          *zap.Logger
	eventsCh        chan any
	eventsProcessor processors.Processor
}

func newWorker(id int, reenqueue bool, logger *zap.Logger, eventsCh chan any, eventsProcessor processors.Processor) *worker {
	return &worker{
		id:              id,
		reenqueue:       reenqueue,
		logger:          logger.With(zap.Int("worker_id", id)),
		eventsCh:        eventsCh,
		eventsProcessor: eventsProcessor,
	}
}

func (w *worker) start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.eventsCh:
			if !ok {
				return
			}

			if err := w.eventsProcessor.ProcessEvent(ctx, event); err != nil {
				w.logger.Error("Failed to process event", zap.Error(err))

				if w.reenqueue {
					w.retry(event)
				}
			}
		}
	}
}

// retry puts the event back on the channel unless it is full.
func (w *worker) retry(event any) {
	select {
	case w.eventsCh <- event:
	default:
		w.logger.Warn("Dropping event, queue is full")
	}
}
