package services

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// OrchestratorSvc turns one user intent into a consistent set of ledger,
// portfolio and journal mutations. Every command carries an OperationID;
// resubmitting it returns the recorded outcome.
type OrchestratorSvc interface {
	Deposit(ctx context.Context, cmd domain.DepositCommand) (*domain.WalletBalance, error)
	Withdraw(ctx context.Context, cmd domain.WithdrawCommand) (*domain.WalletBalance, error)
	Buy(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error)
	Sell(ctx context.Context, cmd domain.TradeCommand) (*domain.Trade, error)
	Exchange(ctx context.Context, cmd domain.ExchangeCommand) (*domain.ExchangeResult, error)
	GetTrade(ctx context.Context, userID, tradeID string) (*domain.Trade, error)
}
