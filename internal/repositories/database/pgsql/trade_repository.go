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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTradeRepository struct {
	BaseRepository
}

func newPgxTradeRepository(pool *pgxpool.Pool) portsrepo.TradeRepositoryFacade {
	return &PgxTradeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TradeRepositoryFacade = (*PgxTradeRepository)(nil)

func (r *PgxTradeRepository) SaveTrade(ctx context.Context, trade domain.Trade) error {
	m := mapping.ToModelTrade(trade)
	query := `
		INSERT INTO trades (trade_id, user_id, symbol, trade_type, order_type, quantity, price_per_unit,
		                    currency, total_amount, fees, status, failure_reason, created_at, completed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TradeID, m.UserID, m.Symbol, m.TradeType, m.OrderType, m.Quantity, m.PricePerUnit,
		m.Currency, m.TotalAmount, m.Fees, m.Status, m.FailureReason, m.CreatedAt, m.CompletedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: trade %s", apperrors.ErrDuplicate, m.TradeID)
		}
		return dbError(fmt.Sprintf("failed to save trade %s", m.TradeID), err)
	}
	return nil
}

// FinalizeTrade only touches PENDING rows, so a trade changes status at most once.
func (r *PgxTradeRepository) FinalizeTrade(ctx context.Context, trade domain.Trade) error {
	m := mapping.ToModelTrade(trade)
	query := `
		UPDATE trades
		SET status = $2, failure_reason = $3, completed_at = $4, quantity = $5, total_amount = $6, fees = $7
		WHERE trade_id = $1 AND status = 'PENDING';
	`
	tag, err := r.Pool.Exec(ctx, query, m.TradeID, m.Status, m.FailureReason, m.CompletedAt, m.Quantity, m.TotalAmount, m.Fees)
	if err != nil {
		return dbError(fmt.Sprintf("failed to finalize trade %s", m.TradeID), err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}
	stored, err := r.FindTradeByID(ctx, trade.UserID, trade.TradeID)
	if err != nil {
		return err
	}
	return domain.ErrTradeFinalized{TradeID: stored.TradeID, Status: stored.Status}
}

func (r *PgxTradeRepository) FindTradeByID(ctx context.Context, userID, tradeID string) (*domain.Trade, error) {
	query := `
		SELECT trade_id, user_id, symbol, trade_type, order_type, quantity, price_per_unit,
		       currency, total_amount, fees, status, failure_reason, created_at, completed_at
		FROM trades
		WHERE trade_id = $1 AND user_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, tradeID, userID)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to query trade %s", tradeID), err)
	}
	m, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Trade])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to scan trade %s", tradeID), err)
	}
	d := mapping.ToDomainTrade(m)
	return &d, nil
}
