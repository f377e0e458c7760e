package repositories

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// TransactionReader defines read operations for the journal
type TransactionReader interface {
	// ListTransactions returns a page of the user's entries, newest first, and the
	// token for the next page (nil on the last page).
	ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error)
}

// TransactionWriter defines write operations for the journal. Entries are
// append-only.
type TransactionWriter interface {
	AppendTransaction(ctx context.Context, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines all journal repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
