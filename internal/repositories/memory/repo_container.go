// Package memory holds process-local repositories. They are used when no
// database is configured and by the service tests.
package memory

import (
	"time"

	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
)

func NewRepositoryProvider() portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      NewWalletRepository(),
		HoldingRepo:     NewHoldingRepository(),
		TradeRepo:       NewTradeRepository(),
		TransactionRepo: NewTransactionRepository(),
		OperationRepo:   NewOperationRepository(),
	}
}

var now = func() time.Time { return time.Now().UTC() }
