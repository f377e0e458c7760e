package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
)

type OperationRepository struct {
	mu  sync.Mutex
	ops map[string]domain.Operation
}

func NewOperationRepository() *OperationRepository {
	return &OperationRepository{ops: make(map[string]domain.Operation)}
}

var _ portsrepo.OperationRepositoryFacade = (*OperationRepository)(nil)

func (r *OperationRepository) BeginOperation(ctx context.Context, op domain.Operation) (*domain.Operation, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.ops[op.OperationID]; ok {
		return &stored, false, nil
	}
	r.ops[op.OperationID] = op
	return &op, true, nil
}

func (r *OperationRepository) UpdateOperationState(ctx context.Context, operationID string, state domain.OperationState) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	op, ok := r.ops[operationID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if !domain.CanTransition(op.State, state) {
		return fmt.Errorf("%w: operation %s cannot move from %s to %s", apperrors.ErrValidation, operationID, op.State, state)
	}
	op.State = state
	op.UpdatedAt = now()
	r.ops[operationID] = op
	return nil
}

func (r *OperationRepository) CompleteOperation(ctx context.Context, op domain.Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.ops[op.OperationID]
	if !ok {
		return apperrors.ErrNotFound
	}
	if stored.State.IsTerminal() {
		return fmt.Errorf("%w: operation %s already %s", apperrors.ErrValidation, op.OperationID, stored.State)
	}
	op.CreatedAt = stored.CreatedAt
	op.UpdatedAt = now()
	r.ops[op.OperationID] = op
	return nil
}

func (r *OperationRepository) ReleaseOperation(ctx context.Context, operationID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.ops, operationID)
	return nil
}
