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
	"github.com/shopspring/decimal"
)

type WalletRepository struct {
	locks    *keylock.Locker
	mu       sync.RWMutex
	balances map[string]domain.WalletBalance
}

func NewWalletRepository() *WalletRepository {
	return &WalletRepository{
		locks:    keylock.New(),
		balances: make(map[string]domain.WalletBalance),
	}
}

var _ portsrepo.WalletRepositoryFacade = (*WalletRepository)(nil)

func (r *WalletRepository) FindBalance(ctx context.Context, userID, currency string) (*domain.WalletBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.balances[keylock.Key(userID, currency)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &b, nil
}

func (r *WalletRepository) ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []domain.WalletBalance{}
	for _, b := range r.balances {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Currency < out[j].Currency })
	return out, nil
}

func (r *WalletRepository) UpdateBalance(ctx context.Context, userID, currency string, fn portsrepo.BalanceMutator) (*domain.WalletBalance, error) {
	key := keylock.Key(userID, currency)
	unlock := r.locks.Lock(key)
	defer unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	current, ok := r.balances[key]
	r.mu.RUnlock()
	if !ok {
		t := now()
		current = domain.WalletBalance{
			UserID:      userID,
			Currency:    currency,
			Balance:     decimal.Zero,
			AuditFields: domain.AuditFields{CreatedAt: t, LastUpdatedAt: t},
		}
	}

	next, err := fn(current.Balance)
	if err != nil {
		return nil, err
	}
	if next.IsNegative() {
		return nil, fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientFunds, next.String())
	}
	current.Balance = next
	current.LastUpdatedAt = now()

	r.mu.Lock()
	r.balances[key] = current
	r.mu.Unlock()
	return &current, nil
}
