package mapping

import (
	"testing"
	"time"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTradeNullableColumns(t *testing.T) {
	pending := domain.Trade{TradeID: "t1", Status: domain.TradePending, Quantity: decimal.RequireFromString("4.95")}
	m := ToModelTrade(pending)
	assert.Nil(t, m.FailureReason)
	assert.Nil(t, m.CompletedAt)
	assert.Equal(t, pending, ToDomainTrade(m))

	failed := pending
	failed.Status = domain.TradeFailed
	failed.FailureReason = "insufficient balance"
	m = ToModelTrade(failed)
	require.NotNil(t, m.FailureReason)
	assert.Equal(t, "insufficient balance", ToDomainTrade(m).FailureReason)
}

func TestTransactionMetadataJSON(t *testing.T) {
	tradeID := "t1"
	d := domain.Transaction{
		TransactionID:   "x1",
		Type:            domain.TransactionBuy,
		RelatedEntityID: &tradeID,
		Metadata:        map[string]any{"symbol": "AAPL", "quantity": "4.95"},
		CreatedAt:       time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	m, err := ToModelTransaction(d)
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"AAPL","quantity":"4.95"}`, string(m.Metadata))

	back, err := ToDomainTransaction(m)
	require.NoError(t, err)
	assert.Equal(t, "AAPL", back.Metadata["symbol"])
	assert.Equal(t, &tradeID, back.RelatedEntityID)

	m.Metadata = nil
	back, err = ToDomainTransaction(m)
	require.NoError(t, err)
	assert.Nil(t, back.Metadata)
}

func TestOperationErrorColumns(t *testing.T) {
	op := domain.Operation{OperationID: "op1", State: domain.StateFailed, ErrorCode: "INSUFFICIENT_FUNDS", ErrorMessage: "insufficient balance"}
	m := ToModelOperation(op)
	require.NotNil(t, m.ErrorCode)
	assert.Equal(t, op, ToDomainOperation(m))

	running := domain.Operation{OperationID: "op2", State: domain.StateReceived}
	assert.Nil(t, ToModelOperation(running).ErrorCode)
}
