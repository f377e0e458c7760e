package repositories

import (
	"context"

	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
)

// OperationRepositoryFacade stores idempotency records.
type OperationRepositoryFacade interface {
	// BeginOperation inserts op unless a record with the same id exists, in which
	// case the stored record is returned with created == false.
	BeginOperation(ctx context.Context, op domain.Operation) (stored *domain.Operation, created bool, err error)

	// UpdateOperationState advances a running operation.
	UpdateOperationState(ctx context.Context, operationID string, state domain.OperationState) error

	// CompleteOperation records the terminal state and outcome.
	CompleteOperation(ctx context.Context, op domain.Operation) error

	// ReleaseOperation removes a record so the key can be executed again.
	ReleaseOperation(ctx context.Context, operationID string) error
}
