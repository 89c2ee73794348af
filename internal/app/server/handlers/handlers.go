package handlers

import (
	"context"
	"net/http"
	"time"

	"francoggm/paygw-wallet/internal/app/external"
	"francoggm/paygw-wallet/internal/models"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type EventStore interface {
	GetPaymentsSummary(ctx context.Context, from, to *time.Time) (models.PaymentsSummary, error)
	PurgeEvents(ctx context.Context) error
}

type Handlers struct {
	logger   *zap.Logger
	cache    *redis.Client
	events   EventStore
	services *external.Registry
}

func NewHandlers(logger *zap.Logger, cache *redis.Client, events EventStore, services *external.Registry) *Handlers {
	return &Handlers{
		logger:   logger,
		cache:    cache,
		events:   events,
		services: services,
	}
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		h.logger.Error("Failed to encode response", zap.Error(err))
		http.Error(w, "failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
