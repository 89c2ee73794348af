package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	paymentsKey         = key("payments")
	paymentsSequenceKey = key("payments", "seq")
)

type PaymentStore struct {
	cache *redis.Client
}

func NewPaymentStore(cache *redis.Client) *PaymentStore {
	return &PaymentStore{
		cache: cache,
	}
}

// SavePayment assigns the next payment id and stores the record. Records are
// never updated afterwards.
func (s *PaymentStore) SavePayment(ctx context.Context, payment *models.Payment) (int64, error) {
	id, err := s.cache.Incr(ctx, paymentsSequenceKey).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate payment id: %w", err)
	}

	payment.ID = id
	if payment.CreatedAt.IsZero() {
		payment.CreatedAt = time.Now().UTC()
	}

	payload, err := marshal(payment)
	if err != nil {
		return 0, err
	}

	if err := s.cache.HSet(ctx, paymentsKey, strconv.FormatInt(id, 10), payload).Err(); err != nil {
		return 0, err
	}
	return id, nil
}

func (s *PaymentStore) GetPayment(ctx context.Context, id int64) (*models.Payment, error) {
	data, err := s.cache.HGet(ctx, paymentsKey, strconv.FormatInt(id, 10)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var payment models.Payment
	if err := unmarshal(data, &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListPayments returns every payment of the user ordered by id.
func (s *PaymentStore) ListPayments(ctx context.Context, userID int64) ([]*models.Payment, error) {
	paymentsMap, err := s.cache.HGetAll(ctx, paymentsKey).Result()
	if err != nil {
		return nil, err
	}

	var payments []*models.Payment
	for _, data := range paymentsMap {
		var payment models.Payment
		if err := unmarshal(data, &payment); err != nil {
			return nil, err
		}
		if payment.UserID == userID {
			payments = append(payments, &payment)
		}
	}

	sort.Slice(payments, func(i, j int) bool { return payments[i].ID < payments[j].ID })
	return payments, nil
}
