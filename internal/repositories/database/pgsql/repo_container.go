package pgsql

import (
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		WalletRepo:      newPgxWalletRepository(dbPool),
		HoldingRepo:     newPgxHoldingRepository(dbPool),
		TradeRepo:       newPgxTradeRepository(dbPool),
		TransactionRepo: newPgxTransactionRepository(dbPool),
		OperationRepo:   newPgxOperationRepository(dbPool),
	}
}
