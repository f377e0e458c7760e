package repositories

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// TradeReader defines read operations for trades
type TradeReader interface {
	FindTradeByID(ctx context.Context, userID, tradeID string) (*domain.Trade, error)
}

// TradeWriter defines write operations for trades
type TradeWriter interface {
	// SaveTrade persists a new PENDING trade.
	SaveTrade(ctx context.Context, trade domain.Trade) error

	// FinalizeTrade stores the terminal status of a trade. It fails with
	// domain.ErrTradeFinalized if the stored trade is no longer PENDING.
	FinalizeTrade(ctx context.Context, trade domain.Trade) error
}

// TradeRepositoryFacade combines all trade-related repository interfaces
type TradeRepositoryFacade interface {
	TradeReader
	TradeWriter
}
