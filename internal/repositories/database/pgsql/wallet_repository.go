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

type PgxWalletRepository struct {
	BaseRepository
}

func newPgxWalletRepository(pool *pgxpool.Pool) portsrepo.WalletRepositoryFacade {
	return &PgxWalletRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.WalletRepositoryFacade = (*PgxWalletRepository)(nil)

const walletColumns = `user_id, currency, balance, created_at, last_updated_at`

func (r *PgxWalletRepository) FindBalance(ctx context.Context, userID, currency string) (*domain.WalletBalance, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_balances WHERE user_id = $1 AND currency = $2;`
	rows, err := r.Pool.Query(ctx, query, userID, currency)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to query balance %s/%s", userID, currency), err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WalletBalance])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to scan balance %s/%s", userID, currency), err)
	}
	d := mapping.ToDomainWalletBalance(m)
	return &d, nil
}

func (r *PgxWalletRepository) ListBalances(ctx context.Context, userID string) ([]domain.WalletBalance, error) {
	query := `SELECT ` + walletColumns + ` FROM wallet_balances WHERE user_id = $1 ORDER BY currency;`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to list balances of %s", userID), err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.WalletBalance])
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to scan balances of %s", userID), err)
	}
	out := make([]domain.WalletBalance, 0, len(ms))
	for _, m := range ms {
		out = append(out, mapping.ToDomainWalletBalance(m))
	}
	return out, nil
}

// UpdateBalance creates the row if missing, then holds it FOR UPDATE while fn
// runs. A failing fn rolls back the insert as well.
func (r *PgxWalletRepository) UpdateBalance(ctx context.Context, userID, currency string, fn portsrepo.BalanceMutator) (*domain.WalletBalance, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	ts := now()
	insert := `
		INSERT INTO wallet_balances (user_id, currency, balance, created_at, last_updated_at)
		VALUES ($1, $2, 0, $3, $3)
		ON CONFLICT (user_id, currency) DO NOTHING;
	`
	if _, err := tx.Exec(ctx, insert, userID, currency, ts); err != nil {
		return nil, dbError(fmt.Sprintf("failed to open wallet %s/%s", userID, currency), err)
	}

	lock := `SELECT ` + walletColumns + ` FROM wallet_balances WHERE user_id = $1 AND currency = $2 FOR UPDATE;`
	rows, err := tx.Query(ctx, lock, userID, currency)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to lock wallet %s/%s", userID, currency), err)
	}
	current, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.WalletBalance])
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to read wallet %s/%s", userID, currency), err)
	}

	next, err := fn(current.Balance)
	if err != nil {
		return nil, err
	}
	if next.IsNegative() {
		return nil, fmt.Errorf("%w: balance would become %s", apperrors.ErrInsufficientFunds, next.String())
	}

	update := `UPDATE wallet_balances SET balance = $3, last_updated_at = $4 WHERE user_id = $1 AND currency = $2;`
	if _, err := tx.Exec(ctx, update, userID, currency, next, ts); err != nil {
		return nil, dbError(fmt.Sprintf("failed to update wallet %s/%s", userID, currency), err)
	}
	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	current.Balance = next
	current.LastUpdatedAt = ts
	d := mapping.ToDomainWalletBalance(current)
	return &d, nil
}
