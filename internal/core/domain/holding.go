package domain

import (
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// Holding is a user's position in one security, valued with weighted-average cost.
// A holding whose quantity reaches zero is removed rather than kept at zero.
type Holding struct {
	UserID       string          `json:"userID"`
	Symbol       string          `json:"symbol"`
	Quantity     decimal.Decimal `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Currency     string          `json:"currency"`
	AuditFields
}

// IsEmpty reports whether the holding carries no shares.
func (h Holding) IsEmpty() bool { return h.Quantity.IsZero() }

// Value is the holding valued at its average purchase price.
func (h Holding) Value() decimal.Decimal {
	return RoundDebit(h.Quantity.Mul(h.AveragePrice))
}

// ApplyBuy folds a purchase into h:
//
//	avg' = (qty*avg + q*p) / (qty+q)
//	qty' = qty + q
//
// It never touches storage and is safe to call on the zero Holding.
func ApplyBuy(h Holding, quantity, price decimal.Decimal) (Holding, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return h, fmt.Errorf("%w: buy quantity must be positive", apperrors.ErrInvalidAmount)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return h, fmt.Errorf("%w: price must be positive", apperrors.ErrInvalidAmount)
	}
	newQty := h.Quantity.Add(quantity)
	totalCost := h.Quantity.Mul(h.AveragePrice).Add(quantity.Mul(price))
	h.AveragePrice = totalCost.DivRound(newQty, PriceScale)
	h.Quantity = newQty
	return h, nil
}

// ApplySell removes quantity from h. The average price is unchanged unless the
// position is closed, in which case it is cleared.
func ApplySell(h Holding, quantity decimal.Decimal) (Holding, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return h, fmt.Errorf("%w: sell quantity must be positive", apperrors.ErrInvalidAmount)
	}
	if quantity.GreaterThan(h.Quantity) {
		return h, fmt.Errorf("%w: holding %s of %s, requested %s",
			apperrors.ErrInsufficientHoldings, h.Quantity.String(), h.Symbol, quantity.String())
	}
	h.Quantity = h.Quantity.Sub(quantity)
	if h.Quantity.IsZero() {
		h.AveragePrice = decimal.Zero
	}
	return h, nil
}

// ReverseBuy undoes an ApplyBuy of quantity at price, recovering the previous
// average even if other purchases were folded in since:
//
//	qty' = qty - q
//	avg' = (qty*avg - q*p) / qty'
func ReverseBuy(h Holding, quantity, price decimal.Decimal) (Holding, error) {
	if quantity.LessThanOrEqual(decimal.Zero) {
		return h, fmt.Errorf("%w: quantity must be positive", apperrors.ErrInvalidAmount)
	}
	if quantity.GreaterThan(h.Quantity) {
		return h, fmt.Errorf("%w: holding %s of %s, reversing %s",
			apperrors.ErrInsufficientHoldings, h.Quantity.String(), h.Symbol, quantity.String())
	}
	remaining := h.Quantity.Sub(quantity)
	if remaining.IsZero() {
		h.Quantity, h.AveragePrice = decimal.Zero, decimal.Zero
		return h, nil
	}
	remainingCost := h.Quantity.Mul(h.AveragePrice).Sub(quantity.Mul(price))
	if remainingCost.IsNegative() {
		remainingCost = decimal.Zero
	}
	h.AveragePrice = remainingCost.DivRound(remaining, PriceScale)
	h.Quantity = remaining
	return h, nil
}
