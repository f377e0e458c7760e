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

type PgxHoldingRepository struct {
	BaseRepository
}

func newPgxHoldingRepository(pool *pgxpool.Pool) portsrepo.HoldingRepositoryFacade {
	return &PgxHoldingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.HoldingRepositoryFacade = (*PgxHoldingRepository)(nil)

const holdingColumns = `user_id, symbol, quantity, average_price, currency, created_at, last_updated_at`

func (r *PgxHoldingRepository) FindHolding(ctx context.Context, userID, symbol string) (*domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE user_id = $1 AND symbol = $2;`
	rows, err := r.Pool.Query(ctx, query, userID, symbol)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to query holding %s/%s", userID, symbol), err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Holding])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to scan holding %s/%s", userID, symbol), err)
	}
	d := mapping.ToDomainHolding(m)
	return &d, nil
}

func (r *PgxHoldingRepository) ListHoldings(ctx context.Context, userID string) ([]domain.Holding, error) {
	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE user_id = $1 ORDER BY symbol;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to list holdings of %s", userID), err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Holding])
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to scan holdings of %s", userID), err)
	}
	out := make([]domain.Holding, 0, len(ms))
	for _, m := range ms {
		out = append(out, mapping.ToDomainHolding(m))
	}
	return out, nil
}

// UpdateHolding locks the (user, symbol) row, or the advisory slot for a row
// that does not exist yet, and upserts or deletes the result of fn.
func (r *PgxHoldingRepository) UpdateHolding(ctx context.Context, userID, symbol string, fn portsrepo.HoldingMutator) (*domain.Holding, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Serialises first buys, which have no row to lock yet.
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1));`, "holding:"+userID+"/"+symbol); err != nil {
		return nil, dbError(fmt.Sprintf("failed to lock holding %s/%s", userID, symbol), err)
	}

	query := `SELECT ` + holdingColumns + ` FROM holdings WHERE user_id = $1 AND symbol = $2 FOR UPDATE;`
	rows, err := tx.Query(ctx, query, userID, symbol)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to read holding %s/%s", userID, symbol), err)
	}
	ts := now()
	var current domain.Holding
	exists := true
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Holding])
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		exists = false
		current = domain.Holding{UserID: userID, Symbol: symbol, AuditFields: domain.AuditFields{CreatedAt: ts}}
	case err != nil:
		return nil, dbError(fmt.Sprintf("failed to scan holding %s/%s", userID, symbol), err)
	default:
		current = mapping.ToDomainHolding(m)
	}

	next, err := fn(current, exists)
	if err != nil {
		return nil, err
	}
	if next.Quantity.IsNegative() {
		return nil, fmt.Errorf("%w: quantity would become %s", apperrors.ErrInsufficientHoldings, next.Quantity.String())
	}
	next.UserID, next.Symbol = userID, symbol
	next.LastUpdatedAt = ts
	if next.CreatedAt.IsZero() {
		next.CreatedAt = current.CreatedAt
	}

	if next.IsEmpty() {
		if _, err := tx.Exec(ctx, `DELETE FROM holdings WHERE user_id = $1 AND symbol = $2;`, userID, symbol); err != nil {
			return nil, dbError(fmt.Sprintf("failed to delete holding %s/%s", userID, symbol), err)
		}
	} else {
		row := mapping.ToModelHolding(next)
		upsert := `
			INSERT INTO holdings (user_id, symbol, quantity, average_price, currency, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			ON CONFLICT (user_id, symbol) DO UPDATE
			SET quantity = EXCLUDED.quantity,
			    average_price = EXCLUDED.average_price,
			    currency = EXCLUDED.currency,
			    last_updated_at = EXCLUDED.last_updated_at;
		`
		if _, err := tx.Exec(ctx, upsert, row.UserID, row.Symbol, row.Quantity, row.AveragePrice, row.Currency, row.CreatedAt, row.LastUpdatedAt); err != nil {
			return nil, dbError(fmt.Sprintf("failed to store holding %s/%s", userID, symbol), err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &next, nil
}
