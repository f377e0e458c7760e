package repositories

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceMutator computes a new balance from the current one. It runs while the
// (userID, currency) wallet is locked; returning an error leaves the wallet unchanged.
type BalanceMutator func(current decimal.Decimal) (decimal.Decimal, error)

// WalletReader defines read operations for wallet balances
type WalletReader interface {
	// FindBalance returns apperrors.ErrNotFound when the user never held the currency.
	FindBalance(ctx context.Context, userID, currency string) (*domain.WalletBalance, error)

	// ListBalances returns every balance of the user ordered by currency.
	ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error)
}

// WalletWriter defines write operations for wallet balances
type WalletWriter interface {
	// UpdateBalance applies fn to the (userID, currency) balance under an exclusive
	// lock, creating the row at zero if needed. The new balance is durable on return.
	UpdateBalance(ctx context.Context, userID, currency string, fn BalanceMutator) (*domain.WalletBalance, error)
}

// WalletRepositoryFacade combines all wallet-related repository interfaces
type WalletRepositoryFacade interface {
	WalletReader
	WalletWriter
}
