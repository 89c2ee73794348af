package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"francoggm/paygw-wallet/internal/models"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const maxBalanceRetries = 10

// BalanceStore is the wallet ledger. Every mutation runs as an optimistic
// WATCH/MULTI transaction on the user's balance key and appends to the
// user's transaction history.
type BalanceStore struct {
	cache *redis.Client
}

func NewBalanceStore(cache *redis.Client) *BalanceStore {
	return &BalanceStore{
		cache: cache,
	}
}

func (s *BalanceStore) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return readBalance(ctx, s.cache, balanceKey(userID))
}

func (s *BalanceStore) Credit(ctx context.Context, userID int64, amount decimal.Decimal, category models.TransactionCategory, reference int64, description string) (*models.Transaction, error) {
	return s.apply(ctx, userID, models.TransactionCredit, amount, category, reference, description)
}

// Debit fails with ErrInsufficientBalance instead of letting the balance go
// negative.
func (s *BalanceStore) Debit(ctx context.Context, userID int64, amount decimal.Decimal, category models.TransactionCategory, reference int64, description string) (*models.Transaction, error) {
	return s.apply(ctx, userID, models.TransactionDebit, amount, category, reference, description)
}

// Transactions returns up to limit of the most recent ledger entries, oldest
// first.
func (s *BalanceStore) Transactions(ctx context.Context, userID int64, limit int64) ([]*models.Transaction, error) {
	entries, err := s.cache.LRange(ctx, transactionsKey(userID), -limit, -1).Result()
	if err != nil {
		return nil, err
	}

	transactions := make([]*models.Transaction, 0, len(entries))
	for _, entry := range entries {
		var txn models.Transaction
		if err := unmarshal(entry, &txn); err != nil {
			return nil, fmt.Errorf("failed to decode transaction: %w", err)
		}
		transactions = append(transactions, &txn)
	}

	return transactions, nil
}

func (s *BalanceStore) apply(ctx context.Context, userID int64, txType models.TransactionType, amount decimal.Decimal, category models.TransactionCategory, reference int64, description string) (*models.Transaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	balanceKey := balanceKey(userID)
	historyKey := transactionsKey(userID)

	var txn *models.Transaction
	op := func(tx *redis.Tx) error {
		before, err := readBalance(ctx, tx, balanceKey)
		if err != nil {
			return err
		}

		after := before.Add(amount)
		if txType == models.TransactionDebit {
			after = before.Sub(amount)
		}
		if after.IsNegative() {
			return ErrInsufficientBalance
		}

		txn = &models.Transaction{
			ID:            uuid.NewString(),
			UserID:        userID,
			Type:          txType,
			Category:      category,
			Amount:        amount,
			BalanceBefore: before,
			BalanceAfter:  after,
			Reference:     reference,
			Description:   description,
			CreatedAt:     time.Now().UTC(),
		}
		payload, err := marshal(txn)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, balanceKey, after.String(), 0)
			pipe.RPush(ctx, historyKey, payload)
			return nil
		})
		return err
	}

	for range maxBalanceRetries {
		err := s.cache.Watch(ctx, op, balanceKey)
		if err == nil {
			return txn, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}

	return nil, ErrConcurrentUpdate
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readBalance(ctx context.Context, cmd stringGetter, key string) (decimal.Decimal, error) {
	raw, err := cmd.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return decimal.Zero, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("corrupt balance at %s: %w", key, err)
	}
	return balance, nil
}

func balanceKey(userID int64) string {
	return key("balance", userID)
}

func transactionsKey(userID int64) string {
	return key("transactions", userID)
}
