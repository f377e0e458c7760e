package services

import (
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// FeeCalculatorSvc is pure: same inputs, same fee.
type FeeCalculatorSvc interface {
	ComputeFee(kind domain.OperationKind, amount decimal.Decimal, currency string) (decimal.Decimal, error)
	Rule(kind domain.OperationKind) domain.FeeRule
}
