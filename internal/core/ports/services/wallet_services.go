package services

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// WalletReaderSvc defines read operations for wallets
type WalletReaderSvc interface {
	// GetBalance returns zero for a currency the user never held.
	GetBalance(ctx context.Context, userID, currency string) (decimal.Decimal, error)
	ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error)
}

// WalletWriterSvc defines balance mutations. Mutations on the same
// (userID, currency) are serialised.
type WalletWriterSvc interface {
	Debit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error)
	Credit(ctx context.Context, userID, currency string, amount decimal.Decimal) (*domain.WalletBalance, error)
}

// WalletLedgerSvc combines all wallet service interfaces
type WalletLedgerSvc interface {
	WalletReaderSvc
	WalletWriterSvc
}
