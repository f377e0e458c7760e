package domain

import "github.com/shopspring/decimal"

// FeeRule is a percentage fee with a floor and a cap. A zero Maximum means no cap.
type FeeRule struct {
	Percentage decimal.Decimal `json:"percentage"` // 0.01 == 1%
	Minimum    decimal.Decimal `json:"minimum"`
	Maximum    decimal.Decimal `json:"maximum"`
}

// Apply computes the fee on amount: clamp(amount*Percentage, Minimum, Maximum),
// rounded down, and never more than amount itself.
func (r FeeRule) Apply(amount decimal.Decimal) decimal.Decimal {
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	fee := amount.Mul(r.Percentage)
	if fee.LessThan(r.Minimum) {
		fee = r.Minimum
	}
	if r.Maximum.GreaterThan(decimal.Zero) && fee.GreaterThan(r.Maximum) {
		fee = r.Maximum
	}
	if fee.GreaterThan(amount) {
		fee = amount
	}
	fee = RoundFee(fee)
	if fee.IsNegative() {
		return decimal.Zero
	}
	return fee
}

// FeeSchedule holds one rule per operation kind.
type FeeSchedule map[OperationKind]FeeRule

// DefaultFeeSchedule is used when no overrides are configured.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{
		OperationDeposit: {},
		OperationWithdrawal: {
			Percentage: decimal.RequireFromString("0.005"),
			Maximum:    decimal.RequireFromString("25.00"),
		},
		OperationBuy: {
			Percentage: decimal.RequireFromString("0.01"),
			Maximum:    decimal.RequireFromString("50.00"),
		},
		OperationSell: {
			Percentage: decimal.RequireFromString("0.01"),
			Maximum:    decimal.RequireFromString("50.00"),
		},
		OperationExchange: {
			Percentage: decimal.RequireFromString("0.005"),
			Maximum:    decimal.RequireFromString("25.00"),
		},
	}
}
