package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/trading_wallet_app/internal/apperrors"
	"github.com/SscSPs/trading_wallet_app/internal/core/domain"
	portsrepo "github.com/SscSPs/trading_wallet_app/internal/core/ports/repositories"
	"github.com/SscSPs/trading_wallet_app/internal/models"
	"github.com/SscSPs/trading_wallet_app/internal/utils/mapping"
	"github.com/SscSPs/trading_wallet_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func (r *PgxTransactionRepository) AppendTransaction(ctx context.Context, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO transactions (transaction_id, user_id, type, currency, amount, fees, related_entity_id, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = r.Pool.Exec(ctx, query,
		m.TransactionID, m.UserID, m.Type, m.Currency, m.Amount, m.Fees, m.RelatedEntityID, m.Metadata, m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction %s", apperrors.ErrDuplicate, m.TransactionID)
		}
		return dbError(fmt.Sprintf("failed to append transaction %s", m.TransactionID), err)
	}
	return nil
}

// ListTransactions reads one row past the limit to learn whether another page exists.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter domain.TransactionFilter) ([]domain.Transaction, *string, error) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT transaction_id, user_id, type, currency, amount, fees, related_entity_id, metadata, created_at
		FROM transactions
		WHERE user_id = $1`)
	args := []any{userID}

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		fmt.Fprintf(&sb, " AND type = $%d", len(args))
	}
	if filter.NextToken != nil && *filter.NextToken != "" {
		cursorAt, cursorID, err := pagination.DecodeToken(*filter.NextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, cursorAt, cursorID)
		fmt.Fprintf(&sb, " AND (created_at, transaction_id) < ($%d, $%d)", len(args)-1, len(args))
	}
	sb.WriteString(" ORDER BY created_at DESC, transaction_id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit+1)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, nil, dbError(fmt.Sprintf("failed to list transactions of %s", userID), err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Transaction])
	if err != nil {
		return nil, nil, dbError(fmt.Sprintf("failed to scan transactions of %s", userID), err)
	}

	var next *string
	if filter.Limit > 0 && len(ms) > filter.Limit {
		ms = ms[:filter.Limit]
		last := ms[len(ms)-1]
		token := pagination.EncodeToken(last.CreatedAt, last.TransactionID)
		next = &token
	}

	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		d, err := mapping.ToDomainTransaction(m)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, d)
	}
	return out, next, nil
}
