package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/trading_wallet_app/internal/models"
	"github.com/SscSPs/trading_wallet_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOperationRepository struct {
	BaseRepository
}

func newPgxOperationRepository(pool *pgxpool.Pool) portsrepo.OperationRepositoryFacade {
	return &PgxOperationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.OperationRepositoryFacade = (*PgxOperationRepository)(nil)

const operationColumns = `operation_id, user_id, kind, state, result, error_code, error_message, created_at, updated_at`

func (r *PgxOperationRepository) BeginOperation(ctx context.Context, op domain.Operation) (*domain.Operation, bool, error) {
	m := mapping.ToModelOperation(op)
	insert := `
		INSERT INTO operations (` + operationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (operation_id) DO NOTHING;
	`
	tag, err := r.Pool.Exec(ctx, insert,
		m.OperationID, m.UserID, m.Kind, m.State, m.Result, m.ErrorCode, m.ErrorMessage, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return nil, false, dbError(fmt.Sprintf("failed to begin operation %s", op.OperationID), err)
	}
	if tag.RowsAffected() == 1 {
		return &op, true, nil
	}
	stored, err := r.find(ctx, r.Pool, op.OperationID, false)
	if err != nil {
		return nil, false, err
	}
	return stored, false, nil
}

func (r *PgxOperationRepository) UpdateOperationState(ctx context.Context, operationID string, state domain.OperationState) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	stored, err := r.find(ctx, tx, operationID, true)
	if err != nil {
		return err
	}
	if !domain.CanTransition(stored.State, state) {
		return fmt.Errorf("%w: operation %s cannot move from %s to %s", apperrors.ErrValidation, operationID, stored.State, state)
	}
	if _, err := tx.Exec(ctx, `UPDATE operations SET state = $2, updated_at = $3 WHERE operation_id = $1;`, operationID, string(state), now()); err != nil {
		return dbError(fmt.Sprintf("failed to advance operation %s", operationID), err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxOperationRepository) CompleteOperation(ctx context.Context, op domain.Operation) error {
	m := mapping.ToModelOperation(op)
	query := `
		UPDATE operations
		SET state = $2, result = $3, error_code = $4, error_message = $5, updated_at = $6
		WHERE operation_id = $1 AND state NOT IN ('COMPLETED', 'FAILED');
	`
	tag, err := r.Pool.Exec(ctx, query, m.OperationID, m.State, m.Result, m.ErrorCode, m.ErrorMessage, now())
	if err != nil {
		return dbError(fmt.Sprintf("failed to complete operation %s", op.OperationID), err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	stored, err := r.find(ctx, r.Pool, op.OperationID, false)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: operation %s already %s", apperrors.ErrValidation, op.OperationID, stored.State)
}

func (r *PgxOperationRepository) ReleaseOperation(ctx context.Context, operationID string) error {
	if _, err := r.Pool.Exec(ctx, `DELETE FROM operations WHERE operation_id = $1;`, operationID); err != nil {
		return dbError(fmt.Sprintf("failed to release operation %s", operationID), err)
	}
	return nil
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *PgxOperationRepository) find(ctx context.Context, q querier, operationID string, forUpdate bool) (*domain.Operation, error) {
	query := `SELECT ` + operationColumns + ` FROM operations WHERE operation_id = $1`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	rows, err := q.Query(ctx, query, operationID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to query operation %s", operationID), err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Operation])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to scan operation %s", operationID), err)
	}
	d := mapping.ToDomainOperation(m)
	return &d, nil
}
