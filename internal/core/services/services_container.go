package services

import (
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/trading_wallet_app/internal/core/ports/services"
	"github.com/SscSPs/trading_wallet_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, quotes portssvc.QuoteProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{Quotes: quotes}

	container.Fees = NewFeeCalculator(cfg.Fees)
	container.Wallet = NewWalletLedger(repos.WalletRepo)
	container.Portfolio = NewPortfolioService(repos.HoldingRepo)
	container.Journal = NewTransactionJournal(repos.TransactionRepo)

	container.Orchestrator = NewOrchestrator(OrchestratorDeps{
		Quotes:     quotes,
		Fees:       container.Fees,
		Wallet:     container.Wallet,
		Portfolio:  container.Portfolio,
		Journal:    container.Journal,
		Trades:     repos.TradeRepo,
		Operations: repos.OperationRepo,
	},
		WithQuoteTimeout(cfg.QuoteTimeout),
		WithStalenessThreshold(cfg.QuoteStalenessThreshold),
		WithWithdrawalFeeOnTop(cfg.WithdrawalFeeOnTop),
	)

	return container
}
