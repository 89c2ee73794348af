package workers

import (
	"context"
	"sync"

	"francoggm/paygw-wallet/internal/app/workers/processors"

	"go.uber.org/zap"
)

type WorkerPool struct {
	workers         []*worker
	eventsCh        chan any
	eventsProcessor processors.Processor
	wg              sync.WaitGroup
}

func NewWorkerPool(workersCount int, reenqueue bool, logger *zap.Logger, eventsCh chan any, eventsProcessor processors.Processor) *WorkerPool {
	var workers []*worker
	for id := range workersCount {
		worker := newWorker(id, reenqueue, logger, eventsCh, eventsProcessor)
		workers = append(workers, worker)
	}

	return &WorkerPool{
		workers:         workers,
		eventsCh:        eventsCh,
		eventsProcessor: eventsProcessor,
	}
}

func (w *WorkerPool) StartWorkers(ctx context.Context) {
	for _, worker := range w.workers {
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			worker.start(ctx)
		}()
	}
}

// Wait blocks until every worker has returned.
func (w *WorkerPool) Wait() {
	w.wg.Wait()
}
