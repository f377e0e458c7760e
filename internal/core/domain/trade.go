package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TradeType string

const (
	TradeBuy  TradeType = "BUY"
	TradeSell TradeType = "SELL"
)

type OrderType string

const (
	OrderByAmount   OrderType = "BY_AMOUNT"
	OrderByQuantity OrderType = "BY_QUANTITY"
)

// IsValid reports whether o is a known order type.
func (o OrderType) IsValid() bool { return o == OrderByAmount || o == OrderByQuantity }

type TradeStatus string

const (
	TradePending   TradeStatus = "PENDING"
	TradeCompleted TradeStatus = "COMPLETED"
	TradeFailed    TradeStatus = "FAILED"
)

// Trade is created PENDING and moves exactly once to COMPLETED or FAILED.
type Trade struct {
	TradeID       string          `json:"tradeID"`
	UserID        string          `json:"userID"`
	Symbol        string          `json:"symbol"`
	TradeType     TradeType       `json:"tradeType"`
	OrderType     OrderType       `json:"orderType"`
	Quantity      decimal.Decimal `json:"quantity"`
	PricePerUnit  decimal.Decimal `json:"pricePerUnit"`
	Currency      string          `json:"currency"`
	TotalAmount   decimal.Decimal `json:"totalAmount"` // debited for BUY, credited for SELL
	Fees          decimal.Decimal `json:"fees"`
	Status        TradeStatus     `json:"status"`
	FailureReason string          `json:"failureReason,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	CompletedAt   *time.Time      `json:"completedAt,omitempty"`
}

// ErrTradeFinalized is returned when a terminal trade is asked to change status.
type ErrTradeFinalized struct {
	TradeID string
	Status  TradeStatus
}

func (e ErrTradeFinalized) Error() string {
	return fmt.Sprintf("trade %s already %s", e.TradeID, e.Status)
}

// Complete moves a pending trade to COMPLETED.
func (t *Trade) Complete(at time.Time) error {
	if t.Status != TradePending {
		return ErrTradeFinalized{TradeID: t.TradeID, Status: t.Status}
	}
	t.Status = TradeCompleted
	t.CompletedAt = &at
	return nil
}

// Fail moves a pending trade to FAILED with a reason.
func (t *Trade) Fail(reason string) error {
	if t.Status != TradePending {
		return ErrTradeFinalized{TradeID: t.TradeID, Status: t.Status}
	}
	t.Status = TradeFailed
	t.FailureReason = reason
	return nil
}
