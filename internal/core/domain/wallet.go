package domain

import (
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// WalletBalance is a user's balance in one currency. One row per (UserID, Currency),
// created lazily on first credit.
type WalletBalance struct {
	UserID   string          `json:"userID"`
	Currency string          `json:"currency"`
	Balance  decimal.Decimal `json:"balance"` // never negative
	AuditFields
}

// DebitBalance returns current - amount, or ErrInsufficientFunds.
func DebitBalance(current, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return current, fmt.Errorf("%w: debit amount must be positive", apperrors.ErrInvalidAmount)
	}
	if current.LessThan(amount) {
		return current, fmt.Errorf("%w: balance %s, required %s", apperrors.ErrInsufficientFunds, FormatMoney(current), FormatMoney(amount))
	}
	return current.Sub(amount), nil
}

// CreditBalance returns current + amount.
func CreditBalance(current, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return current, fmt.Errorf("%w: credit amount must be positive", apperrors.ErrInvalidAmount)
	}
	return current.Add(amount), nil
}
