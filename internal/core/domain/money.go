package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MoneyScale is the persisted scale of currency amounts and share quantities.
	MoneyScale int32 = 2
	// RateScale is the scale exchange rates are rounded to.
	RateScale int32 = 6
	// PriceScale is the scale of a holding's weighted average price.
	PriceScale int32 = 6
)

// Rounding helpers. Every rounding decision in the engine goes through one of
// these so the customer-favourable policy is applied in one place.

// RoundFee rounds a fee down to the currency's display precision.
func RoundFee(d decimal.Decimal) decimal.Decimal { return d.RoundFloor(MoneyScale) }

// RoundCredit rounds an amount credited to the customer up.
func RoundCredit(d decimal.Decimal) decimal.Decimal { return d.RoundCeil(MoneyScale) }

// RoundDebit rounds an amount debited from the customer down.
func RoundDebit(d decimal.Decimal) decimal.Decimal { return d.RoundFloor(MoneyScale) }

// RoundQuantity rounds a share quantity down to two decimals.
func RoundQuantity(d decimal.Decimal) decimal.Decimal { return d.RoundFloor(MoneyScale) }

// RoundRate rounds an exchange rate to RateScale.
func RoundRate(d decimal.Decimal) decimal.Decimal { return d.Round(RateScale) }

// FormatMoney renders an amount with exactly two decimals, e.g. "100.00".
func FormatMoney(d decimal.Decimal) string { return d.StringFixed(MoneyScale) }

// ValidatePositiveScaled checks that d is > 0 and carries no more than two
// decimals. Used for request amounts and quantities.
func ValidatePositiveScaled(d decimal.Decimal, what string) error {
	if d.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%s must be positive, got %s", what, d.String())
	}
	if !d.Equal(d.Truncate(MoneyScale)) {
		return fmt.Errorf("%s must have at most %d decimal places, got %s", what, MoneyScale, d.String())
	}
	return nil
}

// NormalizeCurrency upper-cases and validates an ISO-4217 style code.
func NormalizeCurrency(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("currency code must be 3 letters, got %q", code)
	}
	for _, r := range c {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("currency code must be 3 letters, got %q", code)
		}
	}
	return c, nil
}

// NormalizeSymbol upper-cases and trims a security symbol.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if s == "" || len(s) > 12 {
		return "", fmt.Errorf("invalid symbol %q", symbol)
	}
	return s, nil
}
