package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a row of trades.
type Trade struct {
	TradeID       string          `db:"trade_id"`
	UserID        string          `db:"user_id"`
	Symbol        string          `db:"symbol"`
	TradeType     string          `db:"trade_type"`
	OrderType     string          `db:"order_type"`
	Quantity      decimal.Decimal `db:"quantity"`
	PricePerUnit  decimal.Decimal `db:"price_per_unit"`
	Currency      string          `db:"currency"`
	TotalAmount   decimal.Decimal `db:"total_amount"`
	Fees          decimal.Decimal `db:"fees"`
	Status        string          `db:"status"`
	FailureReason *string         `db:"failure_reason"` // Nullable
	CreatedAt     time.Time       `db:"created_at"`
	CompletedAt   *time.Time      `db:"completed_at"` // Nullable
}
