package services

import (
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type feeCalculator struct {
	schedule domain.FeeSchedule
}

// NewFeeCalculator returns a calculator over schedule. Operation kinds missing
// from schedule fall back to the defaults.
func NewFeeCalculator(schedule domain.FeeSchedule) portssvc.FeeCalculatorSvc {
	merged := domain.DefaultFeeSchedule()
	for kind, rule := range schedule {
		merged[kind] = rule
	}
	return &feeCalculator{schedule: merged}
}

var _ portssvc.FeeCalculatorSvc = (*feeCalculator)(nil)

// ComputeFee returns the fee for amount. The currency does not change the rule;
// the fee is denominated in it.
func (f *feeCalculator) ComputeFee(kind domain.OperationKind, amount decimal.Decimal, currency string) (decimal.Decimal, error) {
	rule, ok := f.schedule[kind]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no fee rule for %s", apperrors.ErrValidation, kind)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, fmt.Errorf("%w: fee base must be positive, got %s %s", apperrors.ErrInvalidAmount, amount.String(), currency)
	}
	return rule.Apply(amount), nil
}

func (f *feeCalculator) Rule(kind domain.OperationKind) domain.FeeRule {
	return f.schedule[kind]
}
