package services

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// TransactionJournalSvc is the append-only history of money movements.
type TransactionJournalSvc interface {
	// Append stores txn and returns its id.
	Append(ctx context.Context, txn domain.Transaction) (string, error)
	Query(ctx context.Context, userID string, filter domain.TransactionFilter) (*domain.TransactionPage, error)
}
