package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/SscSPs/trading_wallet_app/internal/core/services"
	"github.com/SscSPs/trading_wallet_app/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionJournal_PagesNewestFirst(t *testing.T) {
	ctx := context.Background()
	journal := services.NewTransactionJournal(memory.NewTransactionRepository())

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		txnType := domain.TransactionDeposit
		if i%2 == 1 {
			txnType = domain.TransactionWithdrawal
		}
		_, err := journal.Append(ctx, domain.Transaction{
			TransactionID: fmt.Sprintf("t%d", i),
			UserID:        "u1",
			Type:          txnType,
			Currency:      "USD",
			Amount:        dec("10"),
			CreatedAt:     base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}
	_, err := journal.Append(ctx, domain.Transaction{UserID: "u2", Type: domain.TransactionDeposit, Currency: "USD", Amount: dec("1")})
	require.NoError(t, err)

	first, err := journal.Query(ctx, "u1", domain.TransactionFilter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first.Transactions, 2)
	assert.Equal(t, "t4", first.Transactions[0].TransactionID)
	assert.Equal(t, "t3", first.Transactions[1].TransactionID)
	require.NotNil(t, first.NextToken)

	second, err := journal.Query(ctx, "u1", domain.TransactionFilter{Limit: 2, NextToken: first.NextToken})
	require.NoError(t, err)
	require.Len(t, second.Transactions, 2)
	assert.Equal(t, "t2", second.Transactions[0].TransactionID)

	last, err := journal.Query(ctx, "u1", domain.TransactionFilter{Limit: 2, NextToken: second.NextToken})
	require.NoError(t, err)
	require.Len(t, last.Transactions, 1)
	assert.Equal(t, "t0", last.Transactions[0].TransactionID)
	assert.Nil(t, last.NextToken)

	withdrawals := domain.TransactionWithdrawal
	filtered, err := journal.Query(ctx, "u1", domain.TransactionFilter{Type: &withdrawals})
	require.NoError(t, err)
	assert.Len(t, filtered.Transactions, 2)
}

func TestTransactionJournal_Validation(t *testing.T) {
	ctx := context.Background()
	journal := services.NewTransactionJournal(memory.NewTransactionRepository())

	_, err := journal.Append(ctx, domain.Transaction{UserID: "u1", Type: "REFUND", Amount: dec("1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = journal.Append(ctx, domain.Transaction{UserID: "u1", Type: domain.TransactionDeposit, Amount: dec("1"), Fees: dec("-1")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bogus := domain.TransactionType("REFUND")
	_, err = journal.Query(ctx, "u1", domain.TransactionFilter{Type: &bogus})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	bad := "%%%"
	_, err = journal.Query(ctx, "u1", domain.TransactionFilter{NextToken: &bad})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	empty, err := journal.Query(ctx, "nobody", domain.TransactionFilter{})
	require.NoError(t, err)
	assert.NotNil(t, empty.Transactions)
	assert.Empty(t, empty.Transactions)
}

func TestTransactionJournal_DuplicateIDIsStorageFailure(t *testing.T) {
	ctx := context.Background()
	journal := services.NewTransactionJournal(memory.NewTransactionRepository())

	txn := domain.Transaction{TransactionID: "dup", UserID: "u1", Type: domain.TransactionDeposit, Currency: "USD", Amount: dec("1")}
	id, err := journal.Append(ctx, txn)
	require.NoError(t, err)
	assert.Equal(t, "dup", id)

	_, err = journal.Append(ctx, txn)
	assert.ErrorIs(t, err, apperrors.ErrStorageUnavailable)
}
