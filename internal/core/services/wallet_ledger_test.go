package services_test

import (
	"context"
	"sync"
	"testing"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/services"
	"github.com/SscSPs/trading_wallet_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWalletLedger_CreditDebit(t *testing.T) {
	ctx := context.Background()
	ledger := services.NewWalletLedger(memory.NewWalletRepository())

	zero, err := ledger.GetBalance(ctx, "u1", "usd")
	require.NoError(t, err)
	assert.True(t, zero.IsZero())

	b, err := ledger.Credit(ctx, "u1", "usd", dec("10.50"))
	require.NoError(t, err)
	assert.Equal(t, "USD", b.Currency)
	assert.Equal(t, "10.50", money(b.Balance))

	_, err = ledger.Debit(ctx, "u1", "USD", dec("10.51"))
	assert.ErrorIs(t, err, apperrors.ErrInsufficientFunds)

	b, err = ledger.Debit(ctx, "u1", "USD", dec("10.50"))
	require.NoError(t, err)
	assert.Equal(t, "0.00", money(b.Balance))

	_, err = ledger.Credit(ctx, "u1", "USD", dec("0.001"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	_, err = ledger.Credit(ctx, "u1", "US", dec("1"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	balances, err := ledger.ListBalances(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, balances, 1)

	none, err := ledger.ListBalances(ctx, "nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
}

func TestWalletLedger_ConcurrentDebitsSerialise(t *testing.T) {
	ctx := context.Background()
	ledger := services.NewWalletLedger(memory.NewWalletRepository())
	_, err := ledger.Credit(ctx, "u1", "USD", dec("10"))
	require.NoError(t, err)

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := ledger.Debit(ctx, "u1", "USD", dec("1")); err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	b, err := ledger.GetBalance(ctx, "u1", "USD")
	require.NoError(t, err)
	assert.True(t, b.IsZero())
}
