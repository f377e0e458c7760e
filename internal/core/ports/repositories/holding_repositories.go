package repositories

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// HoldingMutator computes the new state of a holding. exists is false when the
// user holds none of the symbol yet. A result with zero quantity deletes the holding.
type HoldingMutator func(current domain.Holding, exists bool) (domain.Holding, error)

// HoldingReader defines read operations for holdings
type HoldingReader interface {
	FindHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error)
	ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error)
}

// HoldingWriter defines write operations for holdings
type HoldingWriter interface {
	// UpdateHolding applies fn under an exclusive (userID, symbol) lock.
	UpdateHolding(ctx context.Context, userID, symbol string, fn HoldingMutator) (*domain.Holding, error)
}

// HoldingRepositoryFacade combines all holding-related repository interfaces
type HoldingRepositoryFacade interface {
	HoldingReader
	HoldingWriter
}
