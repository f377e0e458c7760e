package memory

import (
	"context"
	"sync"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
)

type TradeRepository struct {
	mu     sync.RWMutex
	trades map[string]domain.Trade
}

func NewTradeRepository() *TradeRepository {
	return &TradeRepository{trades: make(map[string]domain.Trade)}
}

var _ portsrepo.TradeRepositoryFacade = (*TradeRepository)(nil)

func (r *TradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.trades[trade.TradeID]; ok {
		return apperrors.ErrDuplicate
	}
	r.trades[trade.TradeID] = trade
	return nil
}

func (r *TradeRepository) FinalizeTrade(ctx context.Context, trade domain.Trade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.trades[trade.TradeID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.Status != domain.TradePending {
		return domain.ErrTradeFinalized{TradeID: stored.TradeID, Status: stored.Status}
	}
	r.trades[trade.TradeID] = trade
	return nil
}

func (r *TradeRepository) FindTradeByID(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trades[tradeID]
	if !ok || t.UserID != userID {
		return nil, apperrors.ErrNotFound
	}
	return &t, nil
}
