package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/trading_wallet_app/internal/platform/keylock"
)

type HoldingRepository struct {
	locks    *keylock.Locker
	mu       sync.RWMutex
	holdings map[string]domain.Holding
}

func NewHoldingRepository() *HoldingRepository {
	return &HoldingRepository{
		locks:    keylock.New(),
		holdings: make(map[string]domain.Holding),
	}
}

var _ portsrepo.HoldingRepositoryFacade = (*HoldingRepository)(nil)

func (r *HoldingRepository) FindHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.holdings[keylock.Key(userID, symbol)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &h, nil
}

func (r *HoldingRepository) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.Holding{}
	for _, h := range r.holdings {
		if h.UserID == userID {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (r *HoldingRepository) UpdateHolding(ctx context.Context, userID, symbol string, fn portsrepo.HoldingMutator) (*domain.Holding, error) {
	key := keylock.Key(userID, symbol)
	unlock := r.locks.Lock(key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	current, exists := r.holdings[key]
	r.mu.RUnlock()
	if !exists {
		t := now()
		current = domain.Holding{UserID: userID, Symbol: symbol, AuditFields: domain.AuditFields{CreatedAt: t}}
	}

	next, err := fn(current, exists)
	if err != nil {
		return nil, err
	}
	if next.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity would become %s", apperrors.ErrInsufficientHoldings, next.Quantity.String())
	}
	next.UserID, next.Symbol = userID, symbol
	next.LastUpdatedAt = now()

	r.mu.Lock()
	if next.IsEmpty() {
		delete(r.holdings, key)
	} else {
		r.holdings[key] = next
	}
	r.mu.Unlock()
	return &next, nil
}
