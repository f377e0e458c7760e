package models

import "github.com/shopspring/decimal"

// WalletBalance is a row of wallet_balances, keyed by (user_id, currency).
type WalletBalance struct {
	UserID   string          `db:"user_id"`
	Currency string          `db:"currency"`
	Balance  decimal.Decimal `db:"balance"`
	AuditFields
}

// Holding is a row of holdings, keyed by (user_id, symbol).
type Holding struct {
	UserID       string          `db:"user_id"`
	Symbol       string          `db:"symbol"`
	Quantity     decimal.Decimal `db:"quantity"`
	AveragePrice decimal.Decimal `db:"average_price"`
	Currency     string          `db:"currency"`
	AuditFields
}
