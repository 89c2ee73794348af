package storage

import (
	"context"
	"errors"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	payablesKey     = key("payables")
	entitlementsKey = key("entitlements")
)

func itemField(component, paymentArea string, itemID int64) string {
	return component + ":" + paymentArea + ":" + itemIDString(itemID)
}

// PayableStore holds prices for components whose payables live in this
// service instead of behind a webhook.
type PayableStore struct {
	cache *redis.Client
}

func NewPayableStore(cache *redis.Client) *PayableStore {
	return &PayableStore{
		cache: cache,
	}
}

func (s *PayableStore) SavePayable(ctx context.Context, payable *models.Payable) error {
	payload, err := marshal(payable)
	if err != nil {
		return err
	}

	field := itemField(payable.Component, payable.PaymentArea, payable.ItemID)
	return s.cache.HSet(ctx, payablesKey, field, payload).Err()
}

func (s *PayableStore) GetPayable(ctx context.Context, component, paymentArea string, itemID int64) (*models.Payable, error) {
	data, err := s.cache.HGet(ctx, payablesKey, itemField(component, paymentArea, itemID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var payable models.Payable
	if err := unmarshal(data, &payable); err != nil {
		return nil, err
	}
	return &payable, nil
}

func (s *PayableStore) DeletePayable(ctx context.Context, component, paymentArea string, itemID int64) error {
	return s.cache.HDel(ctx, payablesKey, itemField(component, paymentArea, itemID)).Err()
}

// EntitlementStore records what has been delivered to whom. One entry per
// (item, user); a repeated delivery overwrites it with the latest payment.
type EntitlementStore struct {
	cache *redis.Client
}

func NewEntitlementStore(cache *redis.Client) *EntitlementStore {
	return &EntitlementStore{
		cache: cache,
	}
}

func (s *EntitlementStore) Grant(ctx context.Context, entitlement *models.Entitlement) error {
	if entitlement.DeliveredAt.IsZero() {
		entitlement.DeliveredAt = time.Now().UTC()
	}

	payload, err := marshal(entitlement)
	if err != nil {
		return err
	}

	return s.cache.HSet(ctx, entitlementsKey, entitlementField(entitlement.Component, entitlement.PaymentArea, entitlement.ItemID, entitlement.UserID), payload).Err()
}

func (s *EntitlementStore) Get(ctx context.Context, component, paymentArea string, itemID, userID int64) (*models.Entitlement, error) {
	data, err := s.cache.HGet(ctx, entitlementsKey, entitlementField(component, paymentArea, itemID, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var entitlement models.Entitlement
	if err := unmarshal(data, &entitlement); err != nil {
		return nil, err
	}
	return &entitlement, nil
}

func entitlementField(component, paymentArea string, itemID, userID int64) string {
	return itemField(component, paymentArea, itemID) + ":" + itemIDString(userID)
}
