package storage

import (
	"context"
	"sync"
	"testing"

	"francoggm/paygw-wallet/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBalanceStartsAtZero(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewBalanceStore(cache)

	balance, err := store.Balance(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}

func TestCreditThenDebit(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewBalanceStore(cache)
	ctx := context.Background()

	_, err := store.Credit(ctx, 7, decimal.RequireFromString("100.00"), models.CategoryTopUp, 0, "top up")
	require.NoError(t, err)

	txn, err := store.Debit(ctx, 7, decimal.RequireFromString("75.00"), models.CategoryOther, 0, "Quiz entry fee")
	require.NoError(t, err)
	assert.Equal(t, models.TransactionDebit, txn.Type)
	assert.True(t, txn.BalanceBefore.Equal(decimal.RequireFromString("100")))
	assert.True(t, txn.BalanceAfter.Equal(decimal.RequireFromString("25")))

	balance, err := store.Balance(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "25", balance.String())

	history, err := store.Transactions(ctx, 7, 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.TransactionCredit, history[0].Type)
	assert.Equal(t, "Quiz entry fee", history[1].Description)
	assert.Equal(t, models.CategoryOther, history[1].Category)
}

func TestDebitRefusesNegativeBalance(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewBalanceStore(cache)
	ctx := context.Background()

	_, err := store.Credit(ctx, 7, decimal.RequireFromString("50.00"), models.CategoryTopUp, 0, "")
	require.NoError(t, err)

	_, err = store.Debit(ctx, 7, decimal.RequireFromString("50.01"), models.CategoryOther, 0, "")
	require.ErrorIs(t, err, ErrInsufficientBalance)

	balance, err := store.Balance(ctx, 7)
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.RequireFromString("50")))

	history, err := store.Transactions(ctx, 7, 10)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestDebitRejectsNonPositiveAmounts(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewBalanceStore(cache)

	_, err := store.Debit(context.Background(), 7, decimal.Zero, models.CategoryOther, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = store.Credit(context.Background(), 7, decimal.NewFromInt(-1), models.CategoryTopUp, 0, "")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCorruptBalance(t *testing.T) {
	mr, cache := newTestCache(t)
	store := NewBalanceStore(cache)

	require.NoError(t, mr.Set(balanceKey(7), "not-a-number"))

	_, err := store.Balance(context.Background(), 7)
	assert.Error(t, err)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	_, cache := newTestCache(t)
	store := NewBalanceStore(cache)
	ctx := context.Background()

	_, err := store.Credit(ctx, 7, decimal.NewFromInt(50), models.CategoryTopUp, 0, "")
	require.NoError(t, err)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Debit(ctx, 7, decimal.NewFromInt(10), models.CategoryOther, 0, ""); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	balance, err := store.Balance(ctx, 7)
	require.NoError(t, err)
	assert.LessOrEqual(t, successes, 5)
	assert.False(t, balance.IsNegative())
	assert.True(t, balance.Equal(decimal.NewFromInt(int64(50-10*successes))))
}
