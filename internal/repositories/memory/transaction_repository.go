package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/trading_wallet_app/internal/utils/pagination"
)

type TransactionRepository struct {
	mu     sync.RWMutex
	byUser map[string][]domain.Transaction
	ids    map[string]struct{}
}

func NewTransactionRepository() *TransactionRepository {
	return &TransactionRepository{
		byUser: make(map[string][]domain.Transaction),
		ids:    make(map[string]struct{}),
	}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func (r *TransactionRepository) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.ids[txn.TransactionID]; ok {
		return apperrors.ErrDuplicate
	}
	r.ids[txn.TransactionID] = struct{}{}
	r.byUser[txn.UserID] = append(r.byUser[txn.UserID], txn)
	return nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	r.mu.RLock()
	all := make([]domain.Transaction, 0, len(r.byUser[userID]))
	for _, t := range r.byUser[userID] {
		if filter.Type == nil || t.Type == *filter.Type {
			all = append(all, t)
		}
	}
	r.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].TransactionID > all[j].TransactionID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		start := len(all)
		for i, t := range all {
			if pagination.After(t.CreatedAt, t.TransactionID, cursorAt, cursorID) {
				start = i
				break
			}
		}
		all = all[start:]
	}

	var next *string
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
		last := all[len(all)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &token
	}
	return all, next, nil
}
